package ingest

import (
	"regexp"
	"strings"

	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// Patterns for statement photos run through OCR. Dates appear either as
// "19 października 2025" / "19 октября 2025" style lines or as bare ISO
// dates; amounts as space-grouped figures with an optional sign decoration.
var (
	namedDateLineRe = regexp.MustCompile(`\d{1,2}\s+\p{L}+\s+\d{4}`)
	isoDateLineRe   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	ocrAmountRe     = regexp.MustCompile(`[()\x{2212}+-]*\s*\d{1,3}(?:[\s\x{00a0}]\d{3})*(?:[.,]\d{2})?`)

	// Sign lexemes across the statement languages we ingest. Negative
	// keywords always win over positive ones.
	negLexemeRe      = regexp.MustCompile(`(?i)(\x{2212}|-|\(|obciąż|debet|wypłat|withdraw|charge)`)
	posLexemeRe      = regexp.MustCompile(`(?i)(\+|uznanie|wpływ|przych|credit)`)
	currencyHintRe   = regexp.MustCompile(`(?i)(PLN|EUR|USD|zł|zl)`)
	negDecorationRe  = regexp.MustCompile(`[()\x{2212}-]`)
	plusDecorationRe = regexp.MustCompile(`\+`)
)

const (
	maxCounterpartyLen = 120
	maxDescriptionLen  = 220
)

// ParseBankText heuristically extracts transactions from OCR-extracted
// statement text. A date line updates the date carried forward to the
// following lines; a line containing a monetary amount becomes one
// transaction. Sign priority: explicit negative lexemes beat positive ones,
// then amount decoration (parens/dash negative, plus positive), default
// inflow.
func ParseBankText(text string) []model.Transaction {
	text = strings.ReplaceAll(text, " ", " ")
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	var out []model.Transaction
	curDate := normalize.Today()
	for i, line := range lines {
		if d := dateFromLine(line); d != "" {
			curDate = d
			continue
		}

		raw := ocrAmountRe.FindString(line)
		if raw == "" {
			continue
		}
		n := normalize.AmountValue(raw)
		if n == 0 {
			continue
		}

		amount := applySign(line, raw, n)
		counterparty := counterpartyFor(lines, i, raw)

		out = append(out, model.Transaction{
			ID:           model.NewID("ocr"),
			Date:         curDate,
			AccountID:    model.UnknownAccountID,
			Counterparty: clip(counterparty, maxCounterpartyLen),
			Description:  clip(line, maxDescriptionLen),
			Amount:       amount,
			Currency:     normalize.Currency(line),
		})
	}
	return out
}

func dateFromLine(line string) string {
	if m := namedDateLineRe.FindString(line); m != "" {
		if d := normalize.Date(m); !d.WasDefaulted {
			return d.ISO
		}
	}
	if m := isoDateLineRe.FindString(line); m != "" {
		return m
	}
	return ""
}

// applySign resolves the transaction direction for an OCR line.
func applySign(line, rawAmount string, n float64) float64 {
	abs := absFloat(n)
	switch {
	case negLexemeRe.MatchString(line):
		return -abs
	case posLexemeRe.MatchString(line):
		return abs
	case negDecorationRe.MatchString(rawAmount):
		return -abs
	case plusDecorationRe.MatchString(rawAmount):
		return abs
	default:
		// No minus anywhere: treat as an inflow.
		return abs
	}
}

// counterpartyFor takes the previous non-amount line when it looks like a
// name (no currency hint), otherwise the current line with the amount
// substring removed.
func counterpartyFor(lines []string, i int, rawAmount string) string {
	if i > 0 && !currencyHintRe.MatchString(lines[i-1]) {
		return cleanCounterparty(lines[i-1])
	}
	return cleanCounterparty(strings.Replace(lines[i], rawAmount, "", 1))
}

func cleanCounterparty(s string) string {
	s = strings.NewReplacer("•", "", "·", "").Replace(s)
	return strings.TrimSpace(s)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}
