// Package multilang turns free-text queries in English, French, Spanish,
// Arabic, or Moroccan Darija into embedding vectors with a locale tag.
//
// Detection runs as an ordered chain: fixed Darija marker tokens first
// (generic detectors misread Darija as Arabic or French), then statistical
// detection, then an Arabic-script heuristic, then an English default. The
// chain always resolves; detection never fails a search.
package multilang
