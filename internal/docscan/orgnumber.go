package docscan

import (
	"regexp"
	"strings"
)

// Norwegian organization numbers print as three space-separated triples.
var orgNumberRe = regexp.MustCompile(`\d{3} \d{3} \d{3}`)

// Labels preceding the organization number on known invoice layouts. The
// label casing varies between vendors.
var orgNumberLabels = []string{"org. nr", "organisasjonsnummer", "Organisasjonsnr"}

// orgNumberWindow bounds how far past a label the digits may sit. A
// grouped nine-digit number plus separators fits well within it.
const orgNumberWindow = 15

// findOrgNumber tries the vendor's offset rule, then the generic label
// rules, then the grouped-triples pattern anywhere in the document. The
// result is always normalized to a plain nine-digit string.
func findOrgNumber(vendors *Registry, text string) (string, bool) {
	if rs := vendors.Match(text); rs != nil && rs.OrgNumber != nil {
		if v, ok := rs.OrgNumber(text); ok {
			return v, true
		}
	}

	for _, label := range orgNumberLabels {
		i := strings.Index(text, label)
		if i < 0 {
			continue
		}
		window := text[i+len(label):]
		if len(window) > orgNumberWindow {
			window = window[:orgNumberWindow]
		}
		if digits := digitsIn(window); len(digits) >= 9 {
			return digits[:9], true
		}
	}

	if m := orgNumberRe.FindString(text); m != "" {
		return digitsIn(m), true
	}
	return "", false
}
