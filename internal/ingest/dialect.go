package ingest

// Canonical header tables for the export dialects we see in the wild:
// Polish bank exports, English re-exports, and OCR-mangled headers (the
// Cyrillic lookalikes below really do occur in scanned statements). Each
// table is resolved once at ingestion time; readers never do fuzzy lookups
// against raw rows afterwards.
var (
	txDateKeys         = []string{"Data księgowania", "date", "Дата"}
	txIDKeys           = []string{"ID transakcji", "ID", "id"}
	txAccountKeys      = []string{"ID konta", "IBAN", "account"}
	txCounterpartyKeys = []string{"Kontrahent", "Counterparty", "Nazwa właściciela rachunku"}
	txDescriptionKeys  = []string{"Tytuł/Opis", "Opis", "Title", "title", "description"}
	txAmountKeys       = []string{"Kwota", "Kwота", "amount", "Kwota_raw"}
	txCurrencyKeys     = []string{"Waluta", "currency"}
	txStatusKeys       = []string{"Status transakcji", "status"}
	txBalanceKeys      = []string{"Saldo po operacji", "Saldo", "saldo"}

	invDueDateKeys   = []string{"Termin płatności", "Termin", "Termin платності", "due_date"}
	invNumberKeys    = []string{"Numer faktury", "Numer фактуры", "Invoice number", "invoice_no"}
	invSupplierKeys  = []string{"Dostawca", "Supplier"}
	invAmountKeys    = []string{"Kwota do zapłaty", "Kwота do заплаты", "Kwota", "amount"}
	invCurrencyKeys  = []string{"Waluta", "currency"}
	invStatusKeys    = []string{"Status faktury", "Status фактуры", "Status"}
	invIssueDateKeys = []string{"Data wystawienia", "IssueDate"}
)
