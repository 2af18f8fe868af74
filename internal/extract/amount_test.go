package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreasStokka/Kvittering/internal/config"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestAmountDetector() *AmountDetector {
	return NewAmountDetector(config.Default().Amounts)
}

func TestAmountDetect_KeywordBeatsLargerItem(t *testing.T) {
	d := newTestAmountDetector()

	lines := []string{
		"REMA 1000",
		"Melk 25,90",
		"Brød 32,50",
		"Epler 199,00",
		"Totalt 123,45",
		"Bank 123,45",
	}
	got, idx, ok := d.Detect(lines)
	require.True(t, ok)
	assert.True(t, dec("123.45").Equal(got), "got %s", got)
	// The amount on the line after the keyword line outranks the keyword
	// line itself.
	assert.Equal(t, 5, idx)
}

func TestAmountDetect_FollowsKeywordLine(t *testing.T) {
	d := newTestAmountDetector()

	got, idx, ok := d.Detect([]string{"Å betale", "123,45"})
	require.True(t, ok)
	assert.True(t, dec("123.45").Equal(got))
	assert.Equal(t, 1, idx)
}

func TestAmountDetect_SkipKeywords(t *testing.T) {
	d := newTestAmountDetector()

	lines := []string{
		"Rabatt -5,00",
		"Mva grunnlag 98,76",
		"Sum 20,90",
	}
	got, idx, ok := d.Detect(lines)
	require.True(t, ok)
	assert.True(t, dec("20.90").Equal(got), "got %s", got)
	assert.Equal(t, 2, idx)

	// A receipt holding only skip lines has no total.
	_, _, ok = d.Detect([]string{"Rabatt 50,00", "Mva 12,34"})
	assert.False(t, ok)
}

func TestAmountDetect_SkipLineResetsKeywordState(t *testing.T) {
	d := newTestAmountDetector()

	// The VAT line sits between the keyword and the amount, so the amount
	// no longer counts as following a keyword but is still found.
	got, _, ok := d.Detect([]string{"Totalt", "Mva 24,69", "98,76"})
	require.True(t, ok)
	assert.True(t, dec("98.76").Equal(got), "got %s", got)
}

func TestAmountDetect_ThousandsSeparator(t *testing.T) {
	d := newTestAmountDetector()

	got, _, ok := d.Detect([]string{"Totalt 2 379,15"})
	require.True(t, ok)
	assert.True(t, dec("2379.15").Equal(got), "got %s", got)
}

func TestAmountDetect_RepeatedAmountBeatsLargerSingle(t *testing.T) {
	d := newTestAmountDetector()

	lines := []string{
		"Dyreste vare 99,00",
		"Betaling kort 45,50",
		"45,50",
		"takk for handelen",
	}
	got, idx, ok := d.Detect(lines)
	require.True(t, ok)
	assert.True(t, dec("45.50").Equal(got), "got %s", got)
	assert.Equal(t, 1, idx)
}

func TestAmountDetect_RunningMaxFallback(t *testing.T) {
	d := newTestAmountDetector()

	lines := []string{
		"Vare 10,00",
		"Vare to 30,00",
		"Vare tre 20,00",
		"velkommen igjen",
		"org 912345678",
	}
	got, idx, ok := d.Detect(lines)
	require.True(t, ok)
	assert.True(t, dec("30.00").Equal(got), "got %s", got)
	assert.Equal(t, 1, idx)
}

func TestAmountDetect_Window(t *testing.T) {
	d := newTestAmountDetector()

	_, _, ok := d.Detect([]string{"Sum 9,99"})
	assert.False(t, ok)

	_, _, ok = d.Detect([]string{"Sum 100000,00"})
	assert.False(t, ok)
}

func TestAmountDetect_NoAmount(t *testing.T) {
	d := newTestAmountDetector()

	_, _, ok := d.Detect(nil)
	assert.False(t, ok)

	_, _, ok = d.Detect([]string{"REMA 1000", "ingen priser her"})
	assert.False(t, ok)
}
