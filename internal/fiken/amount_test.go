package fiken

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(12300), ToMinorUnits(123.00))
	assert.Equal(t, int64(12345), ToMinorUnits(123.45))
	// float artifacts round cleanly
	assert.Equal(t, int64(11115), ToMinorUnits(111.14999999999999))
	assert.Equal(t, int64(0), ToMinorUnits(0))
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "123.00", FormatMinorUnits(12300))
	assert.Equal(t, "123.45", FormatMinorUnits(12345))
	assert.Equal(t, "0.90", FormatMinorUnits(90))
	assert.Equal(t, "0.05", FormatMinorUnits(5))
	assert.Equal(t, "0.00", FormatMinorUnits(0))
	assert.Equal(t, "-12.50", FormatMinorUnits(-1250))
}

func TestMinorUnitsOf(t *testing.T) {
	n, ok := MinorUnitsOf(float64(12300))
	require.True(t, ok)
	assert.Equal(t, int64(12300), n)

	n, ok = MinorUnitsOf("4500")
	require.True(t, ok)
	assert.Equal(t, int64(4500), n)

	_, ok = MinorUnitsOf("ikke et tall")
	assert.False(t, ok)

	_, ok = MinorUnitsOf(nil)
	assert.False(t, ok)
}

func TestSplitGross(t *testing.T) {
	net, vat := SplitGross(125.00, 0.25)
	assert.InDelta(t, 100.00, net, 0.0001)
	assert.InDelta(t, 25.00, vat, 0.0001)

	net, vat = SplitGross(115.00, 0.15)
	assert.InDelta(t, 100.00, net, 0.0001)
	assert.InDelta(t, 15.00, vat, 0.0001)

	// zero-rated lines pass through
	net, vat = SplitGross(80.00, 0)
	assert.Equal(t, 80.00, net)
	assert.Equal(t, 0.00, vat)
}

func TestPurchaseVAT(t *testing.T) {
	vatType, rate, err := PurchaseVAT(1)
	require.NoError(t, err)
	assert.Equal(t, "HIGH", vatType)
	assert.Equal(t, 0.25, rate)

	vatType, rate, err = PurchaseVAT(13)
	require.NoError(t, err)
	assert.Equal(t, "LOW", vatType)
	assert.Equal(t, 0.12, rate)

	_, _, err = PurchaseVAT(3) // sale code, not valid for purchases
	assert.Error(t, err)
}

func TestSaleVAT(t *testing.T) {
	vatType, rate, err := SaleVAT(3)
	require.NoError(t, err)
	assert.Equal(t, "HIGH", vatType)
	assert.Equal(t, 0.25, rate)

	vatType, rate, err = SaleVAT(52)
	require.NoError(t, err)
	assert.Equal(t, "EXEMPT_IMPORT_EXPORT", vatType)
	assert.Equal(t, 0.0, rate)

	_, _, err = SaleVAT(1) // purchase code, not valid for sales
	assert.Error(t, err)
}
