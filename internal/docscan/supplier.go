package docscan

import "strings"

// Receipt-title words that text detection sometimes glues onto the first
// token of the supplier name, including a common misreading.
var receiptTitleNoise = []string{"Salgskvittering", "Salaskvitterins"}

// findSupplierName returns the canonical name of a matched vendor, or falls
// back to a low-confidence guess from the document's first token.
func findSupplierName(vendors *Registry, text string) (string, bool) {
	if rs := vendors.Match(text); rs != nil {
		return rs.Name, true
	}
	return supplierTokenGuess(text)
}

// supplierTokenGuess takes the first whitespace-delimited token, cuts it
// off after an "AS" company suffix, and strips glued-on receipt-title
// noise. Header lines usually start with the issuer's name, but this is a
// guess, not a lookup.
func supplierTokenGuess(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}
	token := fields[0]
	if i := strings.Index(token, "AS"); i >= 0 {
		token = token[:i+len("AS")]
	}
	for _, noise := range receiptTitleNoise {
		token = strings.ReplaceAll(token, noise, "")
	}
	if token == "" {
		return "", false
	}
	return token, true
}
