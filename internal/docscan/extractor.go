package docscan

import (
	"log"
	"time"
)

// Extractor composes the classifier, the vendor registry and the per-field
// strategies. It holds no per-document state; one instance serves
// concurrent calls.
type Extractor struct {
	classifier *Classifier
	vendors    *Registry
}

// NewExtractor creates an extractor. A nil classifier or registry falls
// back to the defaults.
func NewExtractor(classifier *Classifier, vendors *Registry) *Extractor {
	if classifier == nil {
		classifier = NewClassifier(nil, nil)
	}
	if vendors == nil {
		vendors = DefaultRegistry()
	}
	return &Extractor{classifier: classifier, vendors: vendors}
}

// Vendors exposes the registry so callers can register additional vendor
// signatures at runtime.
func (e *Extractor) Vendors() *Registry {
	return e.vendors
}

// Process classifies the text and extracts the field set for that kind.
func (e *Extractor) Process(text string) (Kind, FieldRecord) {
	kind := e.classifier.Classify(text)
	return kind, e.Extract(text, kind)
}

// Extract runs the per-field strategies for the given document kind and
// returns whatever subset of fields could be located. Strategies are
// independent: a failure (or bug) in one yields absence for that field
// only, and Extract itself always returns.
func (e *Extractor) Extract(text string, kind Kind) FieldRecord {
	var rec FieldRecord

	if v, ok := runField("supplier_name", func() (string, bool) {
		return findSupplierName(e.vendors, text)
	}); ok {
		rec.SupplierName = &v
	}

	if v, ok := runField("organization_number", func() (string, bool) {
		return findOrgNumber(e.vendors, text)
	}); ok {
		rec.OrgNumber = &v
	}

	if v, ok := runField("issue_date", func() (time.Time, bool) {
		return findDate(text)
	}); ok {
		rec.IssueDate = &v
	}

	switch kind {
	case KindInvoice:
		if v, ok := runField("invoice_number", func() (string, bool) {
			return findInvoiceNumber(e.vendors, text)
		}); ok {
			rec.InvoiceNumber = &v
		}
		if v, ok := runField("maturity_date", func() (time.Time, bool) {
			return findMaturityDate(text)
		}); ok {
			rec.MaturityDate = &v
		}
	default:
		// Receipts are settled on the spot: the due date mirrors the
		// issue date, and the footer carries the per-rate VAT summary.
		if rec.IssueDate != nil {
			d := *rec.IssueDate
			rec.MaturityDate = &d
		}
		if v, ok := runField("amounts_by_vat_rate", func() (map[int]float64, bool) {
			return findVATBreakdown(e.vendors, text)
		}); ok {
			rec.VATBreakdown = v
		}
	}

	return rec
}

// findVATBreakdown is vendor-specific only: point-of-sale VAT footers vary
// too much to read without a recognized layout, so unknown vendors get
// absence and the user enters the breakdown manually.
func findVATBreakdown(vendors *Registry, text string) (map[int]float64, bool) {
	rs := vendors.Match(text)
	if rs == nil || rs.VATBreakdown == nil {
		return nil, false
	}
	return rs.VATBreakdown(text)
}

// runField isolates one field strategy. A panic inside a rule is logged
// and converted to absence so the remaining fields still extract.
func runField[T any](field string, fn func() (T, bool)) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("docscan.Extractor: %s strategy panicked: %v", field, r)
			var zero T
			v, ok = zero, false
		}
	}()
	return fn()
}
