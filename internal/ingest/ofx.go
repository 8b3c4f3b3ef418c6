package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

var (
	ofxSeverityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	ofxOpenTagRe  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values and SGML-style tags missing their
// closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = ofxSeverityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	return ofxOpenTagRe.ReplaceAllString(content, "$1>")
}

// ParseOFX parses an OFX/QFX statement into canonical transactions. Bank
// and credit-card statements both contribute; a statement that fails to
// convert is logged and skipped rather than failing the whole file.
func ParseOFX(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var out []model.Transaction
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			if stmt.BankTranList == nil {
				continue
			}
			currency := normalize.Currency(stmt.CurDef.String())
			for _, ofxTx := range stmt.BankTranList.Transactions {
				out = append(out, convertOFX(ofxTx, string(stmt.BankAcctFrom.AcctID), currency))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			if stmt.BankTranList == nil {
				continue
			}
			currency := normalize.Currency(stmt.CurDef.String())
			for _, ofxTx := range stmt.BankTranList.Transactions {
				out = append(out, convertOFX(ofxTx, string(stmt.CCAcctFrom.AcctID), currency))
			}
		}
	}

	slog.Info("Parsed OFX statement", "transactions", len(out))
	return out, nil
}

// convertOFX maps one OFX transaction to the canonical model. OFX already
// carries the sign convention we use: debits are negative.
func convertOFX(ofxTx ofxgo.Transaction, accountID, currency string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	id := string(ofxTx.FiTID)
	if id == "" {
		id = model.NewID("ofx")
	}
	if accountID == "" {
		accountID = model.UnknownAccountID
	}

	counterparty := ""
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		counterparty = string(ofxTx.Payee.Name)
	} else {
		counterparty = strings.TrimSpace(string(ofxTx.Name))
	}

	description := strings.TrimSpace(string(ofxTx.Name))
	if memo := strings.TrimSpace(string(ofxTx.Memo)); memo != "" && memo != description {
		if description == "" {
			description = memo
		} else {
			description = description + " " + memo
		}
	}

	return model.Transaction{
		ID:           id,
		Date:         ofxTx.DtPosted.Time.Format("2006-01-02"),
		AccountID:    accountID,
		Counterparty: counterparty,
		Description:  description,
		Amount:       amount,
		Currency:     currency,
	}
}
