package docscan

import (
	"strings"
	"sync"
)

// Ruleset bundles the high-confidence extraction rules for one recognized
// vendor layout. Any rule function may be nil; the extractor then falls
// back to the generic strategy for that field. Rule functions report
// found-or-absent and must not be relied on to succeed just because the
// signature matched.
type Ruleset struct {
	// Name is the canonical supplier name returned when the signature
	// matches.
	Name string
	// Signature is a text fragment unique to this vendor's documents,
	// matched as a case-sensitive substring.
	Signature string

	OrgNumber     func(text string) (string, bool)
	InvoiceNumber func(text string) (string, bool)
	VATBreakdown  func(text string) (map[int]float64, bool)
}

// Registry holds the known vendor signatures. Reads take a snapshot of the
// ruleset slice, so extractions running concurrently with a Register call
// see either the old or the new table, never a partial one. Callers must
// serialize Register calls with respect to each other.
type Registry struct {
	mu       sync.RWMutex
	rulesets []*Ruleset
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a vendor ruleset. Later registrations do not displace
// earlier ones; the first matching signature wins.
func (r *Registry) Register(rs *Ruleset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rulesets = append(r.rulesets, rs)
}

// Match returns the first registered ruleset whose signature occurs in the
// text, or nil when the vendor is unknown.
func (r *Registry) Match(text string) *Ruleset {
	for _, rs := range r.snapshot() {
		if strings.Contains(text, rs.Signature) {
			return rs
		}
	}
	return nil
}

// Names lists the canonical names of all registered vendors.
func (r *Registry) Names() []string {
	rulesets := r.snapshot()
	names := make([]string, len(rulesets))
	for i, rs := range rulesets {
		names[i] = rs.Name
	}
	return names
}

func (r *Registry) snapshot() []*Ruleset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rulesets
}

// DefaultRegistry seeds a registry with the vendor layouts the engine was
// trained on. The set is small and deployment-specific; additional vendors
// can be registered at runtime or through configuration.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&Ruleset{
		Name:      "KIWI HATLANE",
		Signature: "KIWI",
		OrgNumber: func(text string) (string, bool) {
			window, ok := textBetween(text, "ORG. NR.", "MVA")
			if !ok {
				return "", false
			}
			digits := digitsIn(window)
			if len(digits) < 9 {
				return "", false
			}
			return digits[:9], true
		},
		VATBreakdown: kiwiVATBreakdown,
	})

	r.Register(&Ruleset{
		Name:      "KITCH'N MOA",
		Signature: "KITCH'N",
		VATBreakdown: func(text string) (map[int]float64, bool) {
			// Kitch'n receipts carry a single 25% rate; the total sits
			// between the currency line and the card-terminal footer.
			amt, ok := amountBetween(newDocument(text), "NOK", "GODKJENT")
			if !ok {
				return nil, false
			}
			return map[int]float64{25: amt}, true
		},
	})

	r.Register(&Ruleset{
		Name:      "Blomster Gården AS",
		Signature: "Blomster Gården",
		VATBreakdown: func(text string) (map[int]float64, bool) {
			amt, ok := amountBetween(newDocument(text), "NOK", "GODKJENT")
			if !ok {
				return nil, false
			}
			return map[int]float64{25: amt}, true
		},
	})

	r.Register(&Ruleset{
		Name:      "Proteinfabrikken",
		Signature: "proteinfabrikken",
		OrgNumber: func(text string) (string, bool) {
			// The VAT-number label is cut short by the text detection, so
			// the signature below matches both "MVA-nummer" and the
			// truncated form.
			window, ok := textBetween(text, "MVA-numme", "Kvittering")
			if !ok {
				return "", false
			}
			digits := digitsIn(window)
			if len(digits) < 9 {
				return "", false
			}
			return digits[:9], true
		},
		InvoiceNumber: func(text string) (string, bool) {
			d := newDocument(text)
			li := d.lineIndex("Fakturanummer")
			if li < 0 {
				return "", false
			}
			for i := li + 1; i < len(d.lines); i++ {
				if d.lines[i] != "" {
					return d.lines[i], true
				}
			}
			return "", false
		},
	})

	r.Register(&Ruleset{
		Name:      "Best Emballasje AS",
		Signature: "Best Emballasje AS",
		InvoiceNumber: func(text string) (string, bool) {
			// Their letterhead block reads EMBALLASJE / <address> /
			// <invoice number> / ... / Faktura.
			block, ok := textBetween(text, "EMBALLASJE\n", "Faktura\n")
			if !ok {
				return "", false
			}
			lines := strings.Split(block, "\n")
			if len(lines) < 2 || strings.TrimSpace(lines[1]) == "" {
				return "", false
			}
			return strings.TrimSpace(lines[1]), true
		},
	})

	r.Register(&Ruleset{
		Name:      "MARISOL KAKEDESIGN BARRETO",
		Signature: "MARISOL KAKEDESIGN",
	})

	return r
}

// kiwiVATBreakdown handles the two Kiwi footer variants: groceries-only
// receipts carry a single 15% food rate with the total after the currency
// line, mixed receipts print a Grunnlag/Mva two-column summary.
func kiwiVATBreakdown(text string) (map[int]float64, bool) {
	d := newDocument(text)

	if !strings.Contains(text, "25%") {
		amt, ok := amountBetween(d, "NOK", "GODKJENT")
		if !ok {
			return nil, false
		}
		return map[int]float64{15: amt}, true
	}

	return rateAmountColumns(d, "Grunnlag", "Mva")
}
