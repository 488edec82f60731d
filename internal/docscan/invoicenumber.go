package docscan

// Labels that precede the invoice number, tried in order. Some vendors
// abbreviate "Fakturanummer" to just "Faktura".
var invoiceNumberLabels = []string{"Fakturanummer", "Faktura"}

// invoiceNumberWindow bounds the line scan around the label. Numbers
// further away than this belong to some other column.
const invoiceNumberWindow = 10

// findInvoiceNumber tries the vendor's rule, then scans the lines around
// the first label line: forward first, then backward, for the first line
// that is entirely an integer. A document without a label line yields
// absence, never an error.
func findInvoiceNumber(vendors *Registry, text string) (string, bool) {
	if rs := vendors.Match(text); rs != nil && rs.InvoiceNumber != nil {
		if v, ok := rs.InvoiceNumber(text); ok {
			return v, true
		}
	}

	d := newDocument(text)
	li := -1
	for _, label := range invoiceNumberLabels {
		if i := d.lineIndex(label); i >= 0 {
			li = i
			break
		}
	}
	if li < 0 {
		return "", false
	}

	for i := li + 1; i < len(d.lines) && i <= li+invoiceNumberWindow; i++ {
		if n, ok := integerLine(d.lines[i]); ok {
			return n, true
		}
	}
	for i := li - 1; i >= 0 && i >= li-invoiceNumberWindow; i-- {
		if n, ok := integerLine(d.lines[i]); ok {
			return n, true
		}
	}
	return "", false
}

// integerLine reports whether the line consists of digits only, returning
// the digits as written (leading zeros preserved).
func integerLine(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return line, true
}
