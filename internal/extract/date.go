// Package extract scans recognized receipt lines for the purchase date, the
// total amount and the purchasable line items. All scanners are pure
// functions over the line slice; a missing value is reported through the
// boolean return, never an error.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/AndreasStokka/Kvittering/internal/config"
)

var (
	// 2025-10-16
	isoDatePattern = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	// 16.10.2025, also with / or - separators
	norDatePattern = regexp.MustCompile(`\b(\d{2})[./-](\d{2})[./-](\d{4})\b`)
	// Dates merged into transaction references, e.g. "ref 2025-1-3-0042".
	embeddedDatePattern = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
)

// DateDetector finds the purchase date in receipt lines.
type DateDetector struct {
	minYear int
	maxYear int
}

// NewDateDetector bounds accepted dates to the configured year window.
func NewDateDetector(cfg config.DatesConfig) *DateDetector {
	return &DateDetector{minYear: cfg.MinYear, maxYear: cfg.MaxYear}
}

// Detect scans lines top to bottom and returns the first plausible date and
// its line index. The ISO pattern is tried before the day-first pattern on
// each line. Dates outside the year window are rejected and scanning
// continues.
func (d *DateDetector) Detect(lines []string) (time.Time, int, bool) {
	for i, line := range lines {
		if m := isoDatePattern.FindString(line); m != "" {
			if t, ok := d.parse("2006-01-02", m); ok {
				return t, i, true
			}
		}
		if m := norDatePattern.FindString(line); m != "" {
			normalized := strings.NewReplacer("-", ".", "/", ".").Replace(m)
			if t, ok := d.parse("02.01.2006", normalized); ok {
				return t, i, true
			}
		}
	}

	// Fallback: a date embedded in a longer numeric run.
	for i, line := range lines {
		if m := embeddedDatePattern.FindString(line); m != "" {
			if t, ok := d.parse("2006-1-2", m); ok {
				return t, i, true
			}
		}
	}

	return time.Time{}, 0, false
}

func (d *DateDetector) parse(layout, value string) (time.Time, bool) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, false
	}
	if t.Year() < d.minYear || t.Year() > d.maxYear {
		return time.Time{}, false
	}
	return t, true
}
