// Package receipt composes the extractors, the store-name matcher and the
// category classifier into a single parse over recognized receipt text.
package receipt

import (
	"strings"
	"unicode"

	"github.com/AndreasStokka/Kvittering/internal/classify"
	"github.com/AndreasStokka/Kvittering/internal/config"
	"github.com/AndreasStokka/Kvittering/internal/extract"
	"github.com/AndreasStokka/Kvittering/internal/match"
	"github.com/AndreasStokka/Kvittering/internal/model"
	"github.com/AndreasStokka/Kvittering/internal/stores"
	"github.com/AndreasStokka/Kvittering/internal/textnorm"
)

// storeNameScanLimit caps how deep the header fallback looks for a
// plausible store-name line.
const storeNameScanLimit = 15

// Service parses recognized receipt text. It holds only process-lifetime,
// read-only state and is safe for concurrent use.
type Service struct {
	dict       *stores.Dictionary
	matcher    *match.Matcher
	classifier *classify.Classifier
	dates      *extract.DateDetector
	amounts    *extract.AmountDetector
	items      *extract.ItemDetector
}

// NewService creates a parsing Service from the store dictionary and
// tuning configuration.
func NewService(dict *stores.Dictionary, cfg *config.Config) *Service {
	return &Service{
		dict:       dict,
		matcher:    match.NewMatcher(dict, cfg.Matching.SimilarityThreshold),
		classifier: classify.NewClassifier(dict, cfg.Matching.SimilarityThreshold),
		dates:      extract.NewDateDetector(cfg.Dates),
		amounts:    extract.NewAmountDetector(cfg.Amounts),
		items:      extract.NewItemDetector(),
	}
}

// Parse extracts structured fields from recognized receipt text. Every
// field is best-effort; degenerate input yields an empty receipt rather
// than an error.
func (s *Service) Parse(text string) model.ParsedReceipt {
	result := model.NewParsedReceipt(text)

	lines := splitLines(text)
	if len(lines) == 0 {
		return result
	}

	date, dateIdx, dateOK := s.dates.Detect(lines)
	total, totalIdx, totalOK := s.amounts.Detect(lines)

	var dIdx, tIdx *int
	if dateOK {
		result.PurchaseDate = &date
		dIdx = &dateIdx
	}
	if totalOK {
		result.TotalAmount = &total
		tIdx = &totalIdx
	}

	result.LineItems = s.items.Detect(lines, dIdx, tIdx, result.TotalAmount)

	if candidate, ok := s.storeNameCandidate(lines); ok {
		name := candidate
		if matched, ok := s.matcher.Match(candidate); ok {
			name = matched
		}
		result.StoreName = &name
	}

	return result
}

// SuggestCategory classifies a resolved (or raw) merchant name for the
// edit flow.
func (s *Service) SuggestCategory(merchant string) model.Category {
	return s.classifier.Suggest(merchant)
}

// storeNameCandidate picks the line most likely to carry the merchant
// name: any line containing a known store name, else the first plausible
// header line.
func (s *Service) storeNameCandidate(lines []string) (string, bool) {
	for _, line := range lines {
		folded := textnorm.FoldKey(line)
		for _, key := range s.dict.Keys() {
			if strings.Contains(folded, textnorm.FoldKey(key)) {
				return strings.TrimSpace(line), true
			}
		}
	}

	limit := min(storeNameScanLimit, len(lines))
	for _, line := range lines[:limit] {
		trimmed := strings.TrimSpace(line)
		if plausibleStoreName(trimmed) && !s.looksLikeDate(trimmed) {
			return trimmed, true
		}
	}
	return "", false
}

// plausibleStoreName filters out masked card numbers, digit runs, and
// other header noise that OCR places near the top of a receipt.
func plausibleStoreName(line string) bool {
	if len(line) <= 3 {
		return false
	}

	numericOnly := true
	digits, colons, masks, letters := 0, 0, 0, 0
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ':':
			colons++
		case r == 'X' || r == 'x' || r == '*':
			masks++
		}
		if unicode.IsLetter(r) {
			letters++
		}
		if !(r >= '0' && r <= '9') && r != ' ' && r != '.' && r != '-' && r != '/' && r != ':' {
			numericOnly = false
		}
	}

	if numericOnly {
		return false
	}
	if strings.Contains(line, "XXXX") || strings.Contains(line, "xxxx") || strings.Contains(line, "****") {
		return false
	}
	if masks > 3 {
		return false
	}
	if digits > len(line)/2 || colons > 0 {
		return false
	}
	return letters >= 3
}

func (s *Service) looksLikeDate(line string) bool {
	_, _, ok := s.dates.Detect([]string{line})
	return ok
}

// splitLines breaks raw recognized text into trimmed, non-blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
