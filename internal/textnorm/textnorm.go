// Package textnorm normalizes OCR output and user input: correction of
// common Norwegian misreads, word capitalization, whitespace collapsing and
// the diacritic folding shared by the matcher and classifier.
package textnorm

import (
	"strings"
	"unicode"
)

// misreadRule is one ordered substring replacement. OCR tends to render the
// Norwegian letters as digraphs; later rules see the output of earlier ones.
type misreadRule struct {
	from string
	to   string
}

// misreadRules is applied greedily in order. Uppercase variants come first
// so a run like "AAS" corrects before the lowercase pass can split it.
// This is a lossy heuristic, not a transliteration.
var misreadRules = []misreadRule{
	{"AA", "Å"},
	{"Aa", "Å"},
	{"aa", "å"},
	{"AE", "Æ"},
	{"Ae", "Æ"},
	{"ae", "æ"},
	{"OE", "Ø"},
	{"Oe", "Ø"},
	{"oe", "ø"},
}

// CorrectCommonMisreads applies the ordered misread rules to text.
func CorrectCommonMisreads(text string) string {
	for _, r := range misreadRules {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}

// CapitalizeWords uppercases the first alphabetic rune of each
// whitespace-separated token and rejoins with single spaces. Leading
// punctuation and symbols are left untouched. Idempotent.
func CapitalizeWords(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		runes := []rune(word)
		for j, r := range runes {
			if unicode.IsLetter(r) {
				runes[j] = unicode.ToUpper(r)
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// CollapseWhitespace replaces runs of whitespace with a single space and
// trims both ends.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// foldedRunes maps accented and Nordic letters onto their base form for
// comparison purposes only; display strings are never folded.
var foldedRunes = map[rune]string{
	'å': "a", 'ä': "a", 'á': "a", 'à': "a", 'â': "a",
	'æ': "ae",
	'ø': "o", 'ö': "o", 'ó': "o", 'ò': "o", 'ô': "o",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'ü': "u", 'ú': "u",
	'í': "i", 'ì': "i",
	'ñ': "n",
}

// FoldKey lowercases, strips diacritics and trims text for dictionary
// comparison.
func FoldKey(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if folded, ok := foldedRunes[r]; ok {
			b.WriteString(folded)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
