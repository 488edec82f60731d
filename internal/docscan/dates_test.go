package docscan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFindDate_DayMonthYearOrder(t *testing.T) {
	got, ok := findDate("Dato: 13.04.2023\n")
	require.True(t, ok)
	assert.Equal(t, date(2023, time.April, 13), got)
}

func TestFindDate_SkipsInvalidCalendarDate(t *testing.T) {
	// 31.02 is syntactically a date but not a calendar date; the chain
	// must move on to the next match instead of normalizing it.
	got, ok := findDate("Dato: 31.02.2023\nLevering: 01.03.2023\n")
	require.True(t, ok)
	assert.Equal(t, date(2023, time.March, 1), got)
}

func TestFindDate_SlashFormat(t *testing.T) {
	got, ok := findDate("Date 13/04/2023")
	require.True(t, ok)
	assert.Equal(t, date(2023, time.April, 13), got)
}

func TestFindDate_TwoDigitYearFallback(t *testing.T) {
	got, ok := findDate("Kjøpt 05.06.21 kl 14:02")
	require.True(t, ok)
	assert.Equal(t, date(2021, time.June, 5), got)
}

func TestFindDate_FourDigitYearWinsOverTwoDigit(t *testing.T) {
	// The dd.mm.yy pattern would match a prefix of the same text; the
	// chain ordering keeps the full year.
	got, ok := findDate("13.04.2023")
	require.True(t, ok)
	assert.Equal(t, date(2023, time.April, 13), got)
}

func TestFindDate_NoDate(t *testing.T) {
	_, ok := findDate("no dates here")
	assert.False(t, ok)
}

func TestFindMaturityDate_RestrictedToDueLabel(t *testing.T) {
	text := "Fakturadato: 05.06.2023\nForfall: 19.06.2023\n"
	got, ok := findMaturityDate(text)
	require.True(t, ok)
	assert.Equal(t, date(2023, time.June, 19), got)
}

func TestFindMaturityDate_NoLabelFallsBackToWholeDocument(t *testing.T) {
	// Documented compatibility behavior: without a due label the maturity
	// suggestion can coincide with the issue date.
	text := "Fakturadato: 05.06.2023\n"
	got, ok := findMaturityDate(text)
	require.True(t, ok)
	assert.Equal(t, date(2023, time.June, 5), got)
}

func TestFindMaturityDate_LabelWithoutDateFallsBack(t *testing.T) {
	text := "05.06.2023\nForfall: etter avtale\n"
	got, ok := findMaturityDate(text)
	require.True(t, ok)
	assert.Equal(t, date(2023, time.June, 5), got)
}
