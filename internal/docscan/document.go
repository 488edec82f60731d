package docscan

import (
	"regexp"
	"strconv"
	"strings"
)

// document caches the line split of one raw text blob so the per-field
// strategies don't re-split it.
type document struct {
	text  string
	lines []string
}

func newDocument(text string) *document {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, ln := range raw {
		lines[i] = strings.TrimSpace(strings.TrimSuffix(ln, "\r"))
	}
	return &document{text: text, lines: lines}
}

// lineIndex returns the index of the first line equal to label, ignoring
// case. OCR output regularly mangles letter case ("NOk" for "NOK").
func (d *document) lineIndex(label string) int {
	return d.lineIndexFrom(label, 0)
}

func (d *document) lineIndexFrom(label string, start int) int {
	for i := start; i < len(d.lines); i++ {
		if strings.EqualFold(d.lines[i], label) {
			return i
		}
	}
	return -1
}

var rateRe = regexp.MustCompile(`^(\d{1,2})\s*%$`)

// parseRate parses a VAT-rate label line such as "15%" or "25 %".
func parseRate(line string) (int, bool) {
	m := rateRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return 0, false
	}
	rate, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return rate, true
}

// parseAmount parses a monetary line, accepting both comma and dot decimal
// separators.
func parseAmount(line string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(line, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// textBetween returns the substring strictly between the first occurrence
// of start and the following occurrence of end.
func textBetween(text, start, end string) (string, bool) {
	si := strings.Index(text, start)
	if si < 0 {
		return "", false
	}
	rest := text[si+len(start):]
	ei := strings.Index(rest, end)
	if ei < 0 {
		return "", false
	}
	return rest[:ei], true
}

// amountBetween returns the first line strictly between the startLabel line
// and the endLabel line that parses as an amount. A missing endLabel scans
// to the end of the document.
func amountBetween(d *document, startLabel, endLabel string) (float64, bool) {
	si := d.lineIndex(startLabel)
	if si < 0 {
		return 0, false
	}
	ei := d.lineIndexFrom(endLabel, si+1)
	if ei < 0 {
		ei = len(d.lines)
	}
	for _, ln := range d.lines[si+1 : ei] {
		if v, ok := parseAmount(ln); ok {
			return v, true
		}
	}
	return 0, false
}

// rateAmountColumns pairs a block of VAT-rate labels following basisLabel
// with a parallel block of amounts following amountLabel, by line index.
// The two blocks are how flattened two-column receipt footers come out of
// text detection.
func rateAmountColumns(d *document, basisLabel, amountLabel string) (map[int]float64, bool) {
	bi := d.lineIndex(basisLabel)
	if bi < 0 {
		return nil, false
	}

	var rates []int
	i := bi + 1
	for ; i < len(d.lines); i++ {
		rate, ok := parseRate(d.lines[i])
		if !ok {
			break
		}
		rates = append(rates, rate)
	}
	if len(rates) == 0 {
		return nil, false
	}

	ai := d.lineIndexFrom(amountLabel, i)
	if ai < 0 {
		return nil, false
	}

	out := make(map[int]float64, len(rates))
	j := ai + 1
	for _, rate := range rates {
		found := false
		for ; j < len(d.lines); j++ {
			if v, ok := parseAmount(d.lines[j]); ok {
				out[rate] = v
				j++
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return out, true
}

func digitsIn(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
