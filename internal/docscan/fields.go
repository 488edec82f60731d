// Package docscan turns raw text-detection output from a photographed
// receipt or invoice into a sparse, structured field suggestion. It never
// guesses: a field it cannot confidently locate is left absent so the
// caller can ask the user to fill the gap.
package docscan

import "time"

// Kind distinguishes point-of-sale receipts from payable-later invoices.
type Kind string

const (
	KindReceipt Kind = "receipt"
	KindInvoice Kind = "invoice"
)

// FieldRecord is the extraction result for one document. Nil pointers and a
// nil VATBreakdown mean "not confidently found", which is distinct from an
// empty value. Every populated field derives from a matched substring of
// the input text.
type FieldRecord struct {
	SupplierName  *string         `json:"supplier_name,omitempty"`
	OrgNumber     *string         `json:"organization_number,omitempty"`
	InvoiceNumber *string         `json:"invoice_number,omitempty"`
	IssueDate     *time.Time      `json:"issue_date,omitempty"`
	MaturityDate  *time.Time      `json:"maturity_date,omitempty"`
	VATBreakdown  map[int]float64 `json:"amounts_by_vat_rate,omitempty"`
}

// IsEmpty reports whether no field at all was extracted.
func (r FieldRecord) IsEmpty() bool {
	return r.SupplierName == nil &&
		r.OrgNumber == nil &&
		r.InvoiceNumber == nil &&
		r.IssueDate == nil &&
		r.MaturityDate == nil &&
		len(r.VATBreakdown) == 0
}
