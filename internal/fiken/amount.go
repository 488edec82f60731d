package fiken

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// The API carries all money amounts in minor units (øre) with no decimal
// separator: 12300 means 123.00 NOK.

// ToMinorUnits converts a NOK amount to øre.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FormatMinorUnits renders an øre amount as a display string with two
// decimals: 12300 becomes "123.00", 90 becomes "0.90", 5 becomes "0.05".
func FormatMinorUnits(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// MinorUnitsOf coerces a JSON-decoded value to øre. Fiken responses
// decode as float64 through encoding/json, but strings and json.Number
// show up when callers re-decode flattened maps.
func MinorUnitsOf(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(math.Round(n)), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
