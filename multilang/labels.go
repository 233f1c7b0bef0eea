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

// Locale tags recognized by the normalizer.
const (
	TagEnglish = "en"
	TagFrench  = "fr"
	TagArabic  = "ar"
	TagDarija  = "da"
	TagSpanish = "es"
)

// defaultLabel is returned for any tag not present in the label table.
const defaultLabel = "Here are the best dishes that matched your request: "

// labels maps locale tags to localized response prefixes. The label is
// informational metadata for callers and never affects ranking.
var labels = map[string]string{
	TagEnglish: "Here are the best dishes that matched your request: ",
	TagFrench:  "Voici les meilleurs plats qui correspondent à votre demande : ",
	TagArabic:  "إليك أفضل الأطباق التي تطابق طلبك: ",
	TagDarija:  "Hadi ahsan al tabaq li kaywafeq talab dyalek: ",
	TagSpanish: "Aquí están los mejores platos que coinciden con tu solicitud: ",
}

// Label returns the localized response prefix for a locale tag.
// Unknown tags fall back to the English default.
func Label(tag string) string {
	if label, ok := labels[tag]; ok {
		return label
	}
	return defaultLabel
}
