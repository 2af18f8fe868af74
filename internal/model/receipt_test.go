package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNewParsedReceipt(t *testing.T) {
	r := NewParsedReceipt("REMA 1000\nTotalt 123,45")

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "REMA 1000\nTotalt 123,45", r.RawText)
	assert.Nil(t, r.StoreName)
	assert.Nil(t, r.PurchaseDate)
	assert.Nil(t, r.TotalAmount)
	assert.Empty(t, r.LineItems)
}

func TestNewLineItem_ImplicitQuantity(t *testing.T) {
	// Without an explicit quantity the trailing amount is the line total.
	item := NewLineItem("Melk 1L", dec("1"), dec("25.90"), false)

	assert.True(t, dec("25.90").Equal(item.UnitPrice))
	assert.True(t, dec("25.90").Equal(item.LineTotal))
	assert.NotEqual(t, uuid.Nil, item.ID)
}

func TestNewLineItem_ExplicitQuantity(t *testing.T) {
	item := NewLineItem("Epler", dec("3"), dec("15.00"), true)

	assert.True(t, dec("15.00").Equal(item.UnitPrice))
	assert.True(t, dec("45.00").Equal(item.LineTotal), "got %s", item.LineTotal)
}

func TestNewLineItem_NegativePrice(t *testing.T) {
	// Discounts keep the sign in the total but never in the unit price.
	item := NewLineItem("Rabatt", dec("1"), dec("-5.00"), false)

	assert.True(t, dec("5.00").Equal(item.UnitPrice))
	assert.True(t, dec("-5.00").Equal(item.LineTotal))
	assert.True(t, item.Valid())
}

func TestLineItemValid(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want bool
	}{
		{"positive", NewLineItem("Melk", dec("1"), dec("25.90"), false), true},
		{"discount", NewLineItem("Rabatt", dec("1"), dec("-5.00"), false), true},
		{"zero price", NewLineItem("Gratis", dec("1"), dec("0"), false), false},
		{"zero quantity", NewLineItem("Melk", dec("0"), dec("25.90"), true), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Valid())
		})
	}
}
