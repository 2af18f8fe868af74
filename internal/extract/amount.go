package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AndreasStokka/Kvittering/internal/config"
)

var amountPatterns = []*regexp.Regexp{
	// 2 379,15 or 2 379.15 (space thousands separators)
	regexp.MustCompile(`[0-9]{1,3}(?:[\s][0-9]{3})*[.,][0-9]{2}`),
	// 2379,15 or 2379.15
	regexp.MustCompile(`[0-9]{3,}[.,][0-9]{2}`),
}

// totalKeywords mark lines that announce the receipt total or payment.
var totalKeywords = []string{
	"totalt", "total", "sum", "å betale", "bank", "beløp",
	"artikkel", "betalt", "varekjøp", "nok",
}

// skipKeywords mark discount, VAT-basis and membership lines whose amounts
// must never be mistaken for the total.
var skipKeywords = []string{"rabatt", "mva", "grunnlag", "medlems"}

// amountCandidate ranks one amount found during a scan. Discarded once the
// top candidate has been selected.
type amountCandidate struct {
	value     decimal.Decimal
	priority  int
	lineIndex int
}

// scanState is the explicit state carried between line iterations.
type scanState struct {
	previousLineHadKeyword bool
}

// AmountDetector finds the total amount in receipt lines.
type AmountDetector struct {
	cfg config.AmountsConfig
	min decimal.Decimal
	max decimal.Decimal
}

// NewAmountDetector bounds candidates to the configured [min, max) window.
func NewAmountDetector(cfg config.AmountsConfig) *AmountDetector {
	return &AmountDetector{
		cfg: cfg,
		min: decimal.NewFromInt(int64(cfg.Min)),
		max: decimal.NewFromInt(int64(cfg.Max)),
	}
}

// Detect returns the best total candidate and its line index. Candidates
// are ranked by the configured priorities, ties broken by amount
// descending.
func (d *AmountDetector) Detect(lines []string) (decimal.Decimal, int, bool) {
	var candidates []amountCandidate
	var maxSeen decimal.Decimal
	state := scanState{}
	tailStart := tailStartIndex(len(lines), d.cfg.TailFraction)

	for i, line := range lines {
		lineLower := strings.ToLower(line)
		hasKeyword := containsAny(lineLower, totalKeywords)

		if containsAny(lineLower, skipKeywords) {
			state = scanState{previousLineHadKeyword: false}
			continue
		}

		for _, value := range extractAmounts(line) {
			if value.Cmp(d.min) < 0 || value.Cmp(d.max) >= 0 {
				continue
			}

			priority := d.cfg.Priorities.Base
			switch {
			case state.previousLineHadKeyword:
				priority = d.cfg.Priorities.FollowsKeyword
			case hasKeyword:
				priority = d.cfg.Priorities.HasKeyword
			}
			if i >= tailStart {
				priority = max(priority, d.cfg.Priorities.TailRegion)
			}
			if countLinesContaining(lines, value) >= 2 {
				priority = max(priority, d.cfg.Priorities.Repeated)
			}
			if len(candidates) == 0 || value.Cmp(maxSeen) >= 0 {
				priority = max(priority, d.cfg.Priorities.RunningMax)
			}

			candidates = append(candidates, amountCandidate{value: value, priority: priority, lineIndex: i})
			if value.Cmp(maxSeen) > 0 {
				maxSeen = value
			}
		}

		state = scanState{previousLineHadKeyword: hasKeyword}
	}

	if len(candidates) == 0 {
		return decimal.Decimal{}, 0, false
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].priority != candidates[b].priority {
			return candidates[a].priority > candidates[b].priority
		}
		return candidates[a].value.Cmp(candidates[b].value) > 0
	})

	top := candidates[0]
	return top.value, top.lineIndex, true
}

// extractAmounts returns every parsable amount on a line, in pattern order.
// Malformed matches are dropped at the parse boundary.
func extractAmounts(line string) []decimal.Decimal {
	var values []decimal.Decimal
	for _, pattern := range amountPatterns {
		for _, raw := range pattern.FindAllString(line, -1) {
			value, ok := parseAmount(raw)
			if !ok {
				continue
			}
			values = append(values, value)
		}
	}
	return values
}

// parseAmount normalizes a matched amount string (strip spaces, comma to
// dot) and parses it as a decimal.
func parseAmount(raw string) (decimal.Decimal, bool) {
	normalized := normalizeAmount(raw)
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}

func normalizeAmount(raw string) string {
	normalized := strings.ReplaceAll(raw, " ", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	return strings.ReplaceAll(normalized, ",", ".")
}

// countLinesContaining counts the lines whose normalized text contains the
// amount, used to recognize totals repeated on payment lines.
func countLinesContaining(lines []string, value decimal.Decimal) int {
	needle := value.StringFixed(2)
	count := 0
	for _, line := range lines {
		if strings.Contains(normalizeAmount(line), needle) {
			count++
		}
	}
	return count
}

// tailStartIndex returns the first index of the trailing region where
// totals usually sit.
func tailStartIndex(n int, fraction float64) int {
	if n == 0 {
		return 0
	}
	start := int(float64(n) * (1 - fraction))
	if start < 0 {
		start = 0
	}
	return start
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
