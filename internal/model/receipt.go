package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParsedReceipt is the result of one parse over recognized receipt text.
// Every extracted field is optional; nil means the engine could not
// determine a value and the caller should ask the user.
type ParsedReceipt struct {
	ID           uuid.UUID
	StoreName    *string
	PurchaseDate *time.Time
	TotalAmount  *decimal.Decimal
	LineItems    []LineItem
	RawText      string
}

// NewParsedReceipt returns an empty receipt carrying the raw text.
func NewParsedReceipt(rawText string) ParsedReceipt {
	return ParsedReceipt{
		ID:      uuid.New(),
		RawText: rawText,
	}
}

// LineItem is one purchasable row on a receipt. UnitPrice is always the
// absolute value; LineTotal keeps the sign, so discount rows carry a
// negative LineTotal and a positive UnitPrice.
type LineItem struct {
	ID          uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// NewLineItem builds a line item from a signed price. When qty was parsed
// explicitly the line total is qty x signed price, otherwise the signed
// price itself.
func NewLineItem(description string, qty, signedPrice decimal.Decimal, qtyExplicit bool) LineItem {
	total := signedPrice
	if qtyExplicit {
		total = qty.Mul(signedPrice)
	}
	return LineItem{
		ID:          uuid.New(),
		Description: description,
		Quantity:    qty,
		UnitPrice:   signedPrice.Abs(),
		LineTotal:   total,
	}
}

// Valid reports whether the item satisfies the model invariants:
// positive quantity and unit price, and a non-zero line total.
func (li LineItem) Valid() bool {
	return li.Quantity.IsPositive() && li.UnitPrice.IsPositive() && !li.LineTotal.IsZero()
}
