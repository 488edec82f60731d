package docscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kiwiTwoRateReceipt = `KIWI HATLANE
Salgskvittering
Bananer 24.90
Vaskemiddel 49.90
Grunnlag
15%
25%
Mva
120.00
40.00
GODKJENT
`

func TestFindVATBreakdown_TwoRateColumns(t *testing.T) {
	got, ok := findVATBreakdown(DefaultRegistry(), kiwiTwoRateReceipt)
	require.True(t, ok)
	assert.Equal(t, map[int]float64{15: 120.00, 25: 40.00}, got)
}

func TestFindVATBreakdown_SingleRateFromTotalMarker(t *testing.T) {
	text := "KIWI HATLANE\nSalgskvittering\nNOK\n156.90\nGODKJENT\n"
	got, ok := findVATBreakdown(DefaultRegistry(), text)
	require.True(t, ok)
	assert.Equal(t, map[int]float64{15: 156.90}, got)
}

func TestFindVATBreakdown_KitchnMangledCurrencyLine(t *testing.T) {
	// Text detection regularly reads "NOK" as "NOk"; the line match is
	// case-insensitive.
	text := "KITCH'N MOA\nSalgskvittering\nNOk\n499,00\nGODKJENT\n"
	got, ok := findVATBreakdown(DefaultRegistry(), text)
	require.True(t, ok)
	assert.Equal(t, map[int]float64{25: 499.00}, got)
}

func TestFindVATBreakdown_UnknownVendorIsAbsent(t *testing.T) {
	text := "Ukjent Butikk\nSalgskvittering\nGrunnlag\n15%\nMva\n120.00\n"
	_, ok := findVATBreakdown(DefaultRegistry(), text)
	assert.False(t, ok)
}

func TestFindVATBreakdown_MissingAmountBlockIsAbsent(t *testing.T) {
	text := "KIWI HATLANE\n25%\nGrunnlag\n15%\n25%\n"
	_, ok := findVATBreakdown(DefaultRegistry(), text)
	assert.False(t, ok)
}

func TestRateAmountColumns_CommaDecimals(t *testing.T) {
	d := newDocument("Grunnlag\n15%\n25%\nMva\n120,50\n40,25\n")
	got, ok := rateAmountColumns(d, "Grunnlag", "Mva")
	require.True(t, ok)
	assert.Equal(t, map[int]float64{15: 120.50, 25: 40.25}, got)
}
