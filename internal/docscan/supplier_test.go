package docscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSupplierName_RegistryMatchWinsOverTokenGuess(t *testing.T) {
	// The first token would be a plausible guess, but the signature match
	// must take priority.
	text := "Velkommen til KIWI HATLANE\nSalgskvittering\n"
	got, ok := findSupplierName(DefaultRegistry(), text)
	require.True(t, ok)
	assert.Equal(t, "KIWI HATLANE", got)
}

func TestFindSupplierName_TokenGuessForUnknownVendor(t *testing.T) {
	got, ok := findSupplierName(DefaultRegistry(), "Snadderkiosken\nSalgskvittering\n13.04.2023")
	require.True(t, ok)
	assert.Equal(t, "Snadderkiosken", got)
}

func TestSupplierTokenGuess_TrimsAfterCompanySuffix(t *testing.T) {
	got, ok := supplierTokenGuess("BlomsterhusetASGata12 Salgskvittering")
	require.True(t, ok)
	assert.Equal(t, "BlomsterhusetAS", got)
}

func TestSupplierTokenGuess_StripsGluedReceiptTitle(t *testing.T) {
	got, ok := supplierTokenGuess("SalgskvitteringBlomst 13.04.2023")
	require.True(t, ok)
	assert.Equal(t, "Blomst", got)

	got, ok = supplierTokenGuess("SalaskvitterinsBlomst")
	require.True(t, ok)
	assert.Equal(t, "Blomst", got)
}

func TestSupplierTokenGuess_EmptyInput(t *testing.T) {
	_, ok := supplierTokenGuess("   \n  ")
	assert.False(t, ok)
}

func TestSupplierTokenGuess_NoiseOnlyTokenIsAbsent(t *testing.T) {
	_, ok := supplierTokenGuess("Salgskvittering 13.04.2023")
	assert.False(t, ok)
}
