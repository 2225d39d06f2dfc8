// Package ofx reads bank and credit card statements and totals their debits,
// so discretionary actuals can be filled from exports rather than typed in.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/nestegg/internal/common"
)

// Debit is one outgoing transaction. Amount is always positive.
type Debit struct {
	Date      time.Time
	ID        string
	AccountID string
	Name      string
	Type      string
	Amount    float64
}

// Parser implements OFX/QFX statement parsing.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new OFX parser. A nil logger means slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An opening tag alone on its line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes formatting problems seen in real bank exports.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(ctx context.Context, reader io.Reader) (*ofxgo.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile returns every debit in the statement's bank and credit card sections.
// Credits such as refunds and interest are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Debit, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	var debits []Debit
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			d, s := collect(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
			debits = append(debits, d...)
			skipped += s
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			d, s := collect(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
			debits = append(debits, d...)
			skipped += s
		}
	}

	if bankStmts+ccStmts == 0 {
		return nil, common.ErrNoStatements
	}

	p.logger.Debug("Parsed OFX file",
		"debits", len(debits),
		"credits_skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return debits, nil
}

func collect(list *ofxgo.TransactionList, accountID string) ([]Debit, int) {
	if list == nil {
		return nil, 0
	}
	var debits []Debit
	skipped := 0
	for _, tx := range list.Transactions {
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			skipped++
			continue
		}
		debits = append(debits, Debit{
			ID:        string(tx.FiTID),
			AccountID: accountID,
			Date:      tx.DtPosted.Time,
			Name:      merchantName(tx),
			Type:      fmt.Sprint(tx.TrnType),
			Amount:    -amount,
		})
	}
	return debits, skipped
}

var purchasePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"EFTPOS ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
}

// merchantName prefers PAYEE, then NAME, then MEMO when NAME says nothing useful.
func merchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	upper := strings.ToUpper(name)
	for _, prefix := range purchasePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	// "DD/MM " date stamps some banks prepend.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// Accounts returns the sorted account IDs present in the statement.
func (p *Parser) Accounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parse(ctx, reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			seen[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			seen[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(seen))
	for acct := range seen {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}
