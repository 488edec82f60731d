package docscan

import (
	"regexp"
	"strings"
	"time"
)

// dateRule pairs a syntactic pattern with its parse layout. The chain is
// ordered from most to least specific so that four-digit years win over
// two-digit ones.
type dateRule struct {
	re     *regexp.Regexp
	layout string
}

var dateRules = []dateRule{
	{regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`), "02.01.2006"},
	{regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), "02/01/2006"},
	{regexp.MustCompile(`\d{2}\.\d{2}\.\d{2}`), "02.01.06"},
}

// findDate runs the date fallback chain over text and returns the first
// match that is a real calendar date. time.Parse normalizes overflow (it
// reads 31.02 as the 3rd of March), so a match only counts when formatting
// the parsed value reproduces it; invalid matches are skipped and later
// matches of the same pattern are still considered.
func findDate(text string) (time.Time, bool) {
	for _, rule := range dateRules {
		for _, m := range rule.re.FindAllString(text, -1) {
			t, err := time.Parse(rule.layout, m)
			if err != nil || t.Format(rule.layout) != m {
				continue
			}
			return t, true
		}
	}
	return time.Time{}, false
}

// maturityLabel is the Norwegian due-date label on invoices.
const maturityLabel = "Forfall"

// findMaturityDate restricts the date chain to the text after the due
// label when one is present. Without a label it falls back to the whole
// document, which can duplicate the issue date when the document shows
// only one date; the result is a suggestion the user reviews either way.
func findMaturityDate(text string) (time.Time, bool) {
	if i := strings.Index(text, maturityLabel); i >= 0 {
		if t, ok := findDate(text[i+len(maturityLabel):]); ok {
			return t, true
		}
	}
	return findDate(text)
}
