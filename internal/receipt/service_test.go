package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasStokka/Kvittering/internal/config"
	"github.com/AndreasStokka/Kvittering/internal/model"
	"github.com/AndreasStokka/Kvittering/internal/stores"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(stores.Fallback(), config.Default())
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParse_GroceryReceipt(t *testing.T) {
	svc := newTestService(t)

	text := `REMA 1000
Storgata 1
Dato: 12.04.2024
Melk 1L 25,90
Brød 32,50
Epler 64,90
Totalt 123,30
Bank: ****1234`

	parsed := svc.Parse(text)

	require.NotNil(t, parsed.StoreName)
	assert.Equal(t, "Rema 1000", *parsed.StoreName)

	require.NotNil(t, parsed.PurchaseDate)
	assert.Equal(t, date(2024, time.April, 12), *parsed.PurchaseDate)

	// The date digits "12.04" also look like an amount; the keyword line
	// must win.
	require.NotNil(t, parsed.TotalAmount)
	assert.True(t, dec("123.30").Equal(*parsed.TotalAmount), "got %s", parsed.TotalAmount)

	require.Len(t, parsed.LineItems, 3)
	assert.Equal(t, "Melk 1L", parsed.LineItems[0].Description)
	assert.Equal(t, "Brød", parsed.LineItems[1].Description)
	assert.Equal(t, "Epler", parsed.LineItems[2].Description)

	assert.Equal(t, text, parsed.RawText)
	assert.Equal(t, model.CategoryGroceries, svc.SuggestCategory(*parsed.StoreName))
}

func TestParse_DiscountReceipt(t *testing.T) {
	svc := newTestService(t)

	text := `KIWI 443
12.04.2024
Vare 25,90
Rabatt -5,00
Sum 20,90`

	parsed := svc.Parse(text)

	require.NotNil(t, parsed.StoreName)
	assert.Equal(t, "KIWI", *parsed.StoreName)

	require.NotNil(t, parsed.TotalAmount)
	assert.True(t, dec("20.90").Equal(*parsed.TotalAmount))

	// "Vare 25,90" exceeds the detected total and is dropped; the discount
	// row survives with a negative total and a positive unit price.
	require.Len(t, parsed.LineItems, 1)
	item := parsed.LineItems[0]
	assert.Equal(t, "Rabatt", item.Description)
	assert.True(t, dec("-5.00").Equal(item.LineTotal), "got %s", item.LineTotal)
	assert.True(t, dec("5.00").Equal(item.UnitPrice))
}

func TestParse_PriceOnFollowingLine(t *testing.T) {
	svc := newTestService(t)

	text := `Elkjøp Storo
Dato: 2024-11-02
Playstation 5 konsoll
2 379,15
Totalt 2 379,15
Visa 2 379,15`

	parsed := svc.Parse(text)

	require.NotNil(t, parsed.StoreName)
	assert.Equal(t, "Elkjøp", *parsed.StoreName)

	require.NotNil(t, parsed.PurchaseDate)
	assert.Equal(t, date(2024, time.November, 2), *parsed.PurchaseDate)

	require.NotNil(t, parsed.TotalAmount)
	assert.True(t, dec("2379.15").Equal(*parsed.TotalAmount), "got %s", parsed.TotalAmount)

	// The description and its price line stitch into exactly one item.
	require.Len(t, parsed.LineItems, 1)
	assert.Equal(t, "Playstation 5 Konsoll", parsed.LineItems[0].Description)
	assert.True(t, dec("2379.15").Equal(parsed.LineItems[0].LineTotal))

	assert.Equal(t, model.CategoryElectronics, svc.SuggestCategory(*parsed.StoreName))
}

func TestParse_UnknownStoreKeepsRawCandidate(t *testing.T) {
	svc := newTestService(t)

	text := `Hagesenteret Grønn AS
15.06.2024
Jordsekk 50L 89,00
Totalt 89,00`

	parsed := svc.Parse(text)

	require.NotNil(t, parsed.StoreName)
	assert.Equal(t, "Hagesenteret Grønn AS", *parsed.StoreName)
	assert.Equal(t, model.CategoryConstruction, svc.SuggestCategory(*parsed.StoreName))

	require.Len(t, parsed.LineItems, 1)
	assert.Equal(t, "Jordsekk 50L", parsed.LineItems[0].Description)
}

func TestParse_MaskedCardLineNeverStoreName(t *testing.T) {
	svc := newTestService(t)

	text := `**** **** **** 1234
12:44
Kortbetaling`

	parsed := svc.Parse(text)

	require.NotNil(t, parsed.StoreName)
	assert.Equal(t, "Kortbetaling", *parsed.StoreName)
}

func TestParse_NoPlausibleStoreName(t *testing.T) {
	svc := newTestService(t)

	parsed := svc.Parse("**** 1234\n12:44\n9999")
	assert.Nil(t, parsed.StoreName)
}

func TestParse_EmptyInput(t *testing.T) {
	svc := newTestService(t)

	for _, text := range []string{"", "\n", "   \n\t\n"} {
		parsed := svc.Parse(text)
		assert.Nil(t, parsed.StoreName)
		assert.Nil(t, parsed.PurchaseDate)
		assert.Nil(t, parsed.TotalAmount)
		assert.Empty(t, parsed.LineItems)
		assert.Equal(t, text, parsed.RawText)
	}
}

func TestParse_DateLineSkippedAsStoreName(t *testing.T) {
	svc := newTestService(t)

	text := `12.04.2024
Ukjent Kiosk
Sjokolade 25,00
Totalt 25,00`

	parsed := svc.Parse(text)
	require.NotNil(t, parsed.StoreName)
	assert.Equal(t, "Ukjent Kiosk", *parsed.StoreName)
}
