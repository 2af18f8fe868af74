package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectCommonMisreads(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"BRAATEN", "BRÅTEN"},
		{"Soerlandet", "Sørlandet"},
		{"Baerum", "Bærum"},
		{"HAANDVERK", "HÅNDVERK"},
		{"Rema 1000", "Rema 1000"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CorrectCommonMisreads(tt.input), "input %q", tt.input)
	}
}

func TestCorrectCommonMisreads_OrderedRules(t *testing.T) {
	// Uppercase digraphs correct before the lowercase pass can see them.
	assert.Equal(t, "ÅSE", CorrectCommonMisreads("AASE"))
	assert.Equal(t, "Åse", CorrectCommonMisreads("Aase"))
}

func TestCapitalizeWords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"rema 1000", "Rema 1000"},
		{"sport 1 førde", "Sport 1 Førde"},
		{"&co butikk", "&Co Butikk"},
		{"melk 1l", "Melk 1L"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CapitalizeWords(tt.input), "input %q", tt.input)
	}
}

func TestCapitalizeWords_Idempotent(t *testing.T) {
	inputs := []string{"rema 1000", "Sport 1 Førde", "&co", "melk   1l  brød"}
	for _, input := range inputs {
		once := CapitalizeWords(input)
		assert.Equal(t, once, CapitalizeWords(once), "input %q", input)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \t b\n c  "))
	assert.Equal(t, "", CollapseWhitespace("   "))
	assert.Equal(t, "abc", CollapseWhitespace("abc"))
}

func TestFoldKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Elkjøp", "elkjop"},
		{"Elkjöp", "elkjop"},
		{"  KIWI  ", "kiwi"},
		{"Klær", "klaer"},
		{"Montér", "monter"},
		{"h&m", "h&m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldKey(tt.input), "input %q", tt.input)
	}
}
