// Copyright 2025 Tavolo Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package multilang

import (
	"regexp"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector attempts to classify the language of a query string.
// Implementations return the locale tag and true on a confident match, or
// ("", false) to pass the query to the next detector in the chain.
type Detector interface {
	Detect(text string) (tag string, ok bool)
}

// darijaMarkers are tokens common in written Moroccan Arabic (Darija) that
// generic detectors misclassify as Arabic or French. A query containing any
// of them resolves to Darija regardless of statistical detection, so marker
// detection must sit ahead of the statistical detector in the chain.
var darijaMarkers = []string{
	"dyali", "dyal", "kayji", "kayn", "machi", "bach", "ghi",
	"bzaf", "shwiya", "bghit", "fin", "fuq", "taht", "hna",
}

// markerDetector matches fixed dialect marker tokens against the lowercased
// original text (punctuation intact, as markers may abut punctuation).
type markerDetector struct {
	tag     string
	markers []string
}

func (d *markerDetector) Detect(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, marker := range d.markers {
		if strings.Contains(lowered, marker) {
			return d.tag, true
		}
	}
	return "", false
}

// punctuation matches characters that are neither letters, digits, nor
// whitespace. Stripped before statistical detection only; the embedding path
// always sees the original text.
var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

// stripPunctuation removes punctuation for detection purposes.
func stripPunctuation(text string) string {
	return punctuation.ReplaceAllString(text, "")
}

// linguaDetector wraps the lingua statistical language detector, restricted
// to the locales the label table knows about.
type linguaDetector struct {
	detector lingua.LanguageDetector
}

func newLinguaDetector() *linguaDetector {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.French,
			lingua.Arabic,
			lingua.Spanish,
		).
		Build()
	return &linguaDetector{detector: detector}
}

func (d *linguaDetector) Detect(text string) (string, bool) {
	stripped := strings.TrimSpace(stripPunctuation(text))
	if stripped == "" {
		return "", false
	}
	language, ok := d.detector.DetectLanguageOf(stripped)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}

// arabicScriptDetector classifies by Unicode script when statistical
// detection fails. Any character in the Arabic block resolves to Arabic.
type arabicScriptDetector struct{}

func (arabicScriptDetector) Detect(text string) (string, bool) {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return TagArabic, true
		}
	}
	return "", false
}

// defaultDetector always matches, closing the chain with English.
type defaultDetector struct{}

func (defaultDetector) Detect(string) (string, bool) {
	return TagEnglish, true
}

// NewDetectorChain builds the standard detection pipeline: dialect markers
// first, then statistical detection, then script heuristics, then the
// English default. The chain always resolves to a tag.
func NewDetectorChain() []Detector {
	return []Detector{
		&markerDetector{tag: TagDarija, markers: darijaMarkers},
		newLinguaDetector(),
		arabicScriptDetector{},
		defaultDetector{},
	}
}

// DetectLanguage runs the chain and returns the first confident tag.
func DetectLanguage(chain []Detector, text string) string {
	for _, d := range chain {
		if tag, ok := d.Detect(text); ok {
			return tag
		}
	}
	return TagEnglish
}
