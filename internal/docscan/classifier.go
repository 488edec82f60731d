package docscan

import "strings"

// Default marker tokens for Norwegian documents. "faktura" also matches
// compound labels such as "Fakturanummer".
var (
	defaultInvoiceMarkers = []string{"faktura"}
	defaultReceiptMarkers = []string{"salgskvittering", "kvittering"}
)

// Classifier decides whether a raw text blob came from a receipt or an
// invoice. It is a pure function of the text and never fails.
type Classifier struct {
	invoiceMarkers []string
	receiptMarkers []string
}

// NewClassifier creates a classifier with the given marker tokens. Empty
// lists fall back to the built-in Norwegian defaults.
func NewClassifier(invoiceMarkers, receiptMarkers []string) *Classifier {
	if len(invoiceMarkers) == 0 {
		invoiceMarkers = defaultInvoiceMarkers
	}
	if len(receiptMarkers) == 0 {
		receiptMarkers = defaultReceiptMarkers
	}
	return &Classifier{
		invoiceMarkers: invoiceMarkers,
		receiptMarkers: receiptMarkers,
	}
}

// Classify returns KindInvoice only when an invoice marker is present and
// no receipt marker is. Everything else, including the ambiguous
// both-markers case, is treated as a receipt: receipts need fewer mandatory
// fields and are the more common input, so that is the safer default.
func (c *Classifier) Classify(text string) Kind {
	lower := strings.ToLower(text)
	invoice := containsAny(lower, c.invoiceMarkers)
	receipt := containsAny(lower, c.receiptMarkers)

	if invoice && !receipt {
		return KindInvoice
	}
	return KindReceipt
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
