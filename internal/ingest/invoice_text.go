package ingest

import (
	"regexp"
	"strings"

	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// Labeled-field patterns for OCR-extracted invoice text, Polish first since
// that is what the suppliers send, with English fallbacks.
var (
	invNumberLabeledRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bFaktura(?:\s*VAT)?\s*(?:numer|nr)?[:\s]*([A-Za-z0-9\-/.]+)`),
		regexp.MustCompile(`(?i)\bInvoice\s*(?:No|Number)[:\s]*([A-Za-z0-9\-/.]+)`),
	}
	// Generic invoice-number shape like 147/CS-FR/2025.
	invNumberShapeRe  = regexp.MustCompile(`\d{1,6}/[A-Z0-9][A-Z0-9-]*/\d{4}`)
	invNumberJunkRe   = regexp.MustCompile(`[^\w/\-.]`)
	supplierLabeledRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Sprzedawca[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)Dostawca[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)(?:Issuer|Seller)[:\s]+([^\n]+)`),
	}
	supplierUppercaseRe = regexp.MustCompile(`[A-ZĄĆĘŁŃÓŚŹŻ]{3,}`)
	dueDateLabeledRe    = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Termin\s*(?:płatności|zapłaty)[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)Payment\s*(?:due|date)[:\s]+([^\n]+)`),
	}
	issueDateLabeledRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Data\s*wystawienia[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)Issue\s*date[:\s]+([^\n]+)`),
	}
	totalLabeledRe = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Do\s*zapłaty[:\s]+([^\n]+)`),
		regexp.MustCompile(`(?i)Razem\s*do\s*zapłaty[:\s]+([^\n]+)`),
	}
	grossTotalRe = regexp.MustCompile(`(?i)(?:Wartość|Razem)\s*brutto[^\n]*?(\d{1,3}(?:[\s\x{00a0}]\d{3})*(?:[.,]\d{2}))`)
)

// ParseInvoiceText extracts an invoice from OCR-extracted document text.
// Every field is searched independently and tolerant of absence: a missing
// due date falls back to the issue date and then today, a missing number
// gets a generated id, a missing total becomes zero. Ingestion never fails.
func ParseInvoiceText(text string) model.Invoice {
	norm := strings.ReplaceAll(strings.ReplaceAll(text, " ", " "), "\r", "")

	number := firstGroup(invNumberLabeledRe, norm)
	if number == "" {
		number = invNumberShapeRe.FindString(norm)
	}
	number = invNumberJunkRe.ReplaceAllString(number, "")
	if number == "" {
		number = model.NewID("INV")
	}

	supplier := firstGroup(supplierLabeledRe, norm)
	if supplier == "" {
		for _, line := range strings.Split(norm, "\n") {
			if supplierUppercaseRe.MatchString(line) {
				supplier = strings.TrimSpace(line)
				break
			}
		}
	}

	due := normalize.DateValue(firstGroup(dueDateLabeledRe, norm))
	issue := normalize.DateValue(firstGroup(issueDateLabeledRe, norm))
	dueDate := due
	if dueDate == "" {
		dueDate = issue
	}
	if dueDate == "" {
		dueDate = normalize.Today()
	}

	totalText := firstGroup(totalLabeledRe, norm)
	if totalText == "" {
		if m := grossTotalRe.FindStringSubmatch(norm); m != nil {
			totalText = m[1]
		}
	}
	currencySource := totalText
	if currencySource == "" {
		currencySource = norm
	}

	return model.Invoice{
		Number:    number,
		Supplier:  clip(supplier, maxCounterpartyLen),
		DueDate:   dueDate,
		IssueDate: issue,
		AmountDue: absFloat(normalize.AmountValue(totalText)),
		Currency:  normalize.Currency(currencySource),
		Status:    model.InvoiceStatusUnpaid,
	}
}

func firstGroup(res []*regexp.Regexp, text string) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
