// Package export writes batch parse results as CSV summaries for review in
// a spreadsheet before anything is persisted.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AndreasStokka/Kvittering/internal/model"
)

// Header is the CSV header for a batch summary.
const Header = "source,store,date,total,items,category"

const (
	numFields   = 6
	dateFormat  = "2006-01-02"
	colSource   = 0
	colStore    = 1
	colDate     = 2
	colTotal    = 3
	colItems    = 4
	colCategory = 5
)

// Row is one parsed receipt in a batch summary.
type Row struct {
	Source   string
	Receipt  model.ParsedReceipt
	Category model.Category
}

// WriteRows writes a batch summary (including header).
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRow converts a Row to a CSV record. Absent optional fields become
// empty cells, never placeholder values.
func MarshalRow(row Row) []string {
	rec := make([]string, numFields)
	rec[colSource] = row.Source

	if row.Receipt.StoreName != nil {
		rec[colStore] = *row.Receipt.StoreName
	}
	if row.Receipt.PurchaseDate != nil {
		rec[colDate] = row.Receipt.PurchaseDate.Format(dateFormat)
	}
	if row.Receipt.TotalAmount != nil {
		rec[colTotal] = row.Receipt.TotalAmount.StringFixed(2)
	}

	rec[colItems] = strconv.Itoa(len(row.Receipt.LineItems))
	rec[colCategory] = string(row.Category)

	return rec
}
