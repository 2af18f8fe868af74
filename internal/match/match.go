// Package match resolves noisy OCR lines to canonical store names using the
// merchant dictionary: exact comparison first, then Levenshtein similarity,
// then substring containment.
package match

import (
	"strings"

	"github.com/AndreasStokka/Kvittering/internal/stores"
	"github.com/AndreasStokka/Kvittering/internal/textnorm"
)

// Matcher matches candidate lines against the store dictionary.
type Matcher struct {
	dict      *stores.Dictionary
	threshold float64
}

// NewMatcher creates a Matcher. threshold is the minimum similarity score
// for a fuzzy hit, typically 0.7.
func NewMatcher(dict *stores.Dictionary, threshold float64) *Matcher {
	return &Matcher{dict: dict, threshold: threshold}
}

// Match resolves a candidate line to a canonical store name. The full line
// is tried first, then its first word, then its first two words, because
// receipt headers often append a legal-entity suffix or address fragment
// after the store name.
func (m *Matcher) Match(candidateLine string) (string, bool) {
	candidates := []string{candidateLine}
	words := strings.Fields(candidateLine)
	if len(words) > 1 {
		candidates = append(candidates, words[0], strings.Join(words[:2], " "))
	}

	for _, candidate := range candidates {
		if name, ok := m.matchOne(candidate); ok {
			return name, true
		}
	}
	return "", false
}

// matchOne applies the three strategies to a single candidate,
// short-circuiting on the first success.
func (m *Matcher) matchOne(candidate string) (string, bool) {
	corrected := textnorm.CorrectCommonMisreads(candidate)
	normalized := textnorm.FoldKey(corrected)
	trimmed := strings.TrimSpace(corrected)
	if normalized == "" {
		return "", false
	}

	for _, key := range m.dict.Keys() {
		if normalized == textnorm.FoldKey(key) {
			return canonical(key), true
		}
	}

	if key, ok := m.fuzzyMatch(normalized); ok {
		return canonical(key), true
	}

	for _, key := range m.dict.Keys() {
		keyNorm := textnorm.FoldKey(key)
		if !strings.Contains(normalized, keyNorm) && !strings.Contains(keyNorm, normalized) {
			continue
		}
		if extracted, ok := extractStoreName(trimmed, key); ok {
			return canonical(extracted), true
		}
		return canonical(key), true
	}

	return "", false
}

// fuzzyMatch returns the best-scoring dictionary key above the threshold.
func (m *Matcher) fuzzyMatch(normalized string) (string, bool) {
	var bestKey string
	bestScore := m.threshold
	for _, key := range m.dict.Keys() {
		score := Similarity(normalized, textnorm.FoldKey(key))
		if score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	return bestKey, bestKey != ""
}

// extractStoreName pulls the span matching a known store out of the
// original (non-normalized) line. Returns false when the span cannot be
// located, in which case the caller falls back to the dictionary key.
func extractStoreName(line, knownStore string) (string, bool) {
	lineLower := strings.ToLower(line)
	knownLower := strings.ToLower(knownStore)

	if idx := strings.Index(lineLower, knownLower); idx == 0 {
		span := strings.TrimSpace(line[:len(knownStore)])
		return span, span != ""
	}

	// Short lines that merely contain the name are acceptable as-is.
	trimmed := strings.TrimSpace(line)
	if len(trimmed) <= 50 && strings.Contains(strings.ToLower(trimmed), knownLower) {
		return trimmed, true
	}
	return "", false
}

// canonical formats a matched name for display.
func canonical(name string) string {
	return textnorm.CapitalizeWords(textnorm.CorrectCommonMisreads(name))
}

// Similarity scores two strings in [0, 1]: identical strings score 1.0 and
// the score falls linearly with edit distance over the longer length.
func Similarity(s1, s2 string) float64 {
	maxLen := max(len([]rune(s1)), len([]rune(s2)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Levenshtein(s1, s2))/float64(maxLen)
}

// Levenshtein computes the edit distance between two strings with unit
// insert/delete/substitute costs.
func Levenshtein(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m, n := len(r1), len(r2)

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if r1[i-1] == r2[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+1)
			}
		}
		prev, curr = curr, prev
	}
	return prev[n]
}
