package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/AndreasStokka/Kvittering/internal/model"
	"github.com/AndreasStokka/Kvittering/internal/textnorm"
)

const (
	// headerSkipLines is how many leading lines (store name, address) are
	// ignored when no date line bounds the item region.
	headerSkipLines = 2
	// footerSkipLines is how many trailing lines (payment, VAT footer) are
	// ignored when no total line bounds the item region.
	footerSkipLines = 2
	// minItemLineLen rejects fragments too short to describe a product.
	minItemLineLen = 3
)

var (
	// 3x Epler 15,00 / 2 Brød 19,50 — leading integer, optional x, free
	// text, trailing signed amount.
	qtyItemPattern = regexp.MustCompile(`^(\d{1,3})\s*[xX]?\s+(.+?)\s+(-?\d{1,5}(?:[\s]\d{3})*[.,]\d{2})\s*$`)
	// Melk 1L 25,90 — free text with a trailing signed amount.
	descPricePattern = regexp.MustCompile(`^(.+?)\s+(-?\d{1,5}(?:[\s]\d{3})*[.,]\d{2})\s*$`)
	// 25,90 alone on its line, optionally marked with the currency.
	standalonePricePattern = regexp.MustCompile(`^(?:kr\.?\s*)?(-?\d{1,5}(?:[\s]\d{3})*[.,]\d{2})(?:\s*kr\.?)?$`)
)

// summaryKeywords mark lines that summarize the receipt rather than name a
// product. Discount lines are deliberately absent: they parse as negative
// items.
var summaryKeywords = []string{"totalt", "total", "sum", "mva", "subtotal"}

const discountKeyword = "rabatt"

// ItemRegion is the line sub-range scanned for purchasable items.
type ItemRegion struct {
	Start int // inclusive
	End   int // exclusive
}

// ItemDetector parses purchasable line items out of the region bounded by
// the detected date and total lines.
type ItemDetector struct{}

// NewItemDetector creates an ItemDetector.
func NewItemDetector() *ItemDetector {
	return &ItemDetector{}
}

// Detect parses line items. dateIdx and totalIdx are the matched line
// indices from the date and amount scans (nil when not found); total is the
// detected receipt total used to reject implausible prices.
func (d *ItemDetector) Detect(lines []string, dateIdx, totalIdx *int, total *decimal.Decimal) []model.LineItem {
	region := itemRegion(lines, dateIdx, totalIdx)
	if region.Start >= region.End {
		return nil
	}

	items := make([]model.LineItem, 0)
	consumed := make(map[int]bool)

	for i := region.Start; i < region.End; i++ {
		if consumed[i] {
			continue
		}
		line := strings.TrimSpace(lines[i])
		if skipItemLine(line) {
			continue
		}

		item, usedNext := d.parseItem(lines, region, consumed, i, line, total)
		if item == nil {
			continue
		}
		items = append(items, *item)
		consumed[i] = true
		if usedNext {
			consumed[i+1] = true
		}
	}

	return items
}

// itemRegion picks the scan range using four strategies in priority order:
// between date and total; total only; date only; estimated middle region.
func itemRegion(lines []string, dateIdx, totalIdx *int) ItemRegion {
	n := len(lines)

	switch {
	case dateIdx != nil && totalIdx != nil && *dateIdx < *totalIdx:
		return ItemRegion{Start: *dateIdx + 1, End: *totalIdx}

	case totalIdx != nil:
		start := *totalIdx
		for i := headerSkipLines; i < *totalIdx; i++ {
			if lineHasAmount(lines[i]) {
				start = i
				break
			}
		}
		return ItemRegion{Start: start, End: *totalIdx}

	case dateIdx != nil:
		end := *dateIdx + 1
		for i := n - 1; i > *dateIdx; i-- {
			if lineHasAmount(lines[i]) {
				end = i + 1
				break
			}
		}
		return ItemRegion{Start: *dateIdx + 1, End: end}

	default:
		start := headerSkipLines
		end := n - footerSkipLines
		if end < start {
			end = start
		}
		return ItemRegion{Start: start, End: end}
	}
}

// parseItem tries the parse strategies in order: quantity line, plain
// description-and-price line, then multi-line stitching in both directions.
// Returns the parsed item (nil on rejection) and whether the next line was
// consumed as this item's price.
func (d *ItemDetector) parseItem(lines []string, region ItemRegion, consumed map[int]bool, i int, line string, total *decimal.Decimal) (*model.LineItem, bool) {
	isDiscount := strings.Contains(strings.ToLower(line), discountKeyword)

	if m := qtyItemPattern.FindStringSubmatch(line); m != nil {
		if price, ok := parseSignedAmount(m[3]); ok {
			qty, err := decimal.NewFromString(m[1])
			qtyExplicit := err == nil && qty.IsPositive()
			if !qtyExplicit {
				qty = decimal.NewFromInt(1)
			}
			item := buildItem(m[2], qty, price, qtyExplicit, isDiscount, total)
			return item, false
		}
	}

	if m := descPricePattern.FindStringSubmatch(line); m != nil {
		if price, ok := parseSignedAmount(m[2]); ok {
			item := buildItem(m[1], decimal.NewFromInt(1), price, false, isDiscount, total)
			return item, false
		}
	}

	// Description on one line, price on the next.
	if looksLikeDescription(line) {
		if i+1 < region.End && !consumed[i+1] {
			if price, ok := standalonePrice(lines[i+1]); ok {
				item := buildItem(line, decimal.NewFromInt(1), price, false, isDiscount, total)
				return item, true
			}
		}
		// Price already seen on the previous line and not yet claimed.
		if i-1 >= region.Start && !consumed[i-1] {
			if price, ok := standalonePrice(lines[i-1]); ok {
				consumed[i-1] = true
				item := buildItem(line, decimal.NewFromInt(1), price, false, isDiscount, total)
				return item, false
			}
		}
	}

	return nil, false
}

// buildItem validates and constructs a line item. The signed price keeps
// its sign in the line total; discount lines force a negative total even
// when OCR dropped the minus.
func buildItem(desc string, qty, signedPrice decimal.Decimal, qtyExplicit, isDiscount bool, total *decimal.Decimal) *model.LineItem {
	if isDiscount && signedPrice.IsPositive() {
		signedPrice = signedPrice.Neg()
	}
	if signedPrice.IsZero() || !qty.IsPositive() {
		return nil
	}

	item := model.NewLineItem(textnorm.CapitalizeWords(strings.TrimSpace(desc)), qty, signedPrice, qtyExplicit)
	if !item.Valid() {
		return nil
	}

	// Guard against long numeric codes read as prices.
	if total != nil {
		if item.LineTotal.Abs().Cmp(*total) > 0 || item.UnitPrice.Cmp(*total) > 0 {
			return nil
		}
	}
	return &item
}

// skipItemLine rejects empty, too-short and summary lines, and lines with
// fewer than two letters. Discount lines survive every check but length.
func skipItemLine(line string) bool {
	if len(line) < minItemLineLen {
		return true
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, discountKeyword) {
		return false
	}
	if containsAny(lower, summaryKeywords) {
		return true
	}
	return letterCount(line) < 2
}

// looksLikeDescription reports whether a line could be a product name
// waiting for its price on a neighboring line.
func looksLikeDescription(line string) bool {
	if descPricePattern.MatchString(line) {
		return false
	}
	return letterCount(line) >= 3
}

// standalonePrice parses a line that is (or closely resembles) a price on
// its own.
func standalonePrice(line string) (decimal.Decimal, bool) {
	m := standalonePricePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseSignedAmount(m[1])
}

// parseSignedAmount parses an amount keeping a leading minus.
func parseSignedAmount(raw string) (decimal.Decimal, bool) {
	neg := strings.HasPrefix(raw, "-")
	value, ok := parseAmount(strings.TrimPrefix(raw, "-"))
	if !ok {
		return decimal.Decimal{}, false
	}
	if neg {
		value = value.Neg()
	}
	return value, true
}

// lineHasAmount reports whether any amount pattern matches the line.
func lineHasAmount(line string) bool {
	for _, pattern := range amountPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}

func letterCount(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}
