package printer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/worker"
)

type Printer struct {
}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Transaction(tx *database.Transaction) string {
	var sb strings.Builder

	p.FancyPrintTx(tx, &sb)

	return sb.String()
}

// DryRun renders the outcome of an extraction that was not persisted.
func (p *Printer) DryRun(verdict string, tx *database.Transaction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Verdict: %s\n", verdict))

	if tx == nil {
		sb.WriteString("No transaction extracted.")
		return sb.String()
	}

	sb.WriteString("\n")
	p.FancyPrintTx(tx, &sb)

	return sb.String()
}

func (p *Printer) Summary(results []*worker.Result) string {
	counts := map[worker.Outcome]int{}
	for _, res := range results {
		counts[res.Outcome] += 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total messages: %v", len(results)))
	sb.WriteString(fmt.Sprintf("\nStored: %v 🔥", counts[worker.OutcomeStored]))
	sb.WriteString(fmt.Sprintf("\nFiltered: %v 🚯", counts[worker.OutcomeFiltered]))
	sb.WriteString(fmt.Sprintf("\nDuplicates: %v ✨", counts[worker.OutcomeDuplicate]))
	sb.WriteString(fmt.Sprintf("\nErrors: %v 🚒", counts[worker.OutcomeFailed]))

	for _, res := range results {
		if res.Error != nil {
			sb.WriteString(fmt.Sprintf("\nERROR: %s", res.Error))
		}
	}

	if len(results) > 0 && counts[worker.OutcomeFailed] == 0 {
		sb.WriteString("\n\nAll messages handled! 🎉")
	}

	return sb.String()
}

func (p *Printer) FancyPrintTx(tx *database.Transaction, sb *strings.Builder) {
	if tx.Status == database.StatusTagged {
		sb.WriteString(fmt.Sprintf("Tagged: %s 🏷\n", tx.Category))
	}

	sb.WriteString(fmt.Sprintf("%s: %s", title(string(tx.Direction)), tx.Amount.StringFixed(2)))

	if tx.TransactionDate != nil {
		sb.WriteString(fmt.Sprintf("\nDate: %s", tx.TransactionDate.Format("2006-01-02")))
	} else if !tx.ReceivedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("\nReceived: %s", tx.ReceivedAt.Format("2006-01-02 15:04")))
	}

	if tx.MerchantName != "" {
		sb.WriteString(fmt.Sprintf("\nMerchant: %s", title(tx.MerchantName)))
	}

	if tx.BankHint != "" {
		sb.WriteString(fmt.Sprintf("\nBank: %s", tx.BankHint))
	}

	if tx.AccountTail != "" {
		sb.WriteString(fmt.Sprintf("\nAccount: XX%s", tx.AccountTail))
	}

	if tx.AccountID != "" {
		sb.WriteString(fmt.Sprintf("\nAccount ID: %s", tx.AccountID))
	} else {
		sb.WriteString("\nAccount ID: unmatched")
	}

	if tx.BalanceAfter.Valid {
		sb.WriteString(fmt.Sprintf("\nBalance: %s", tx.BalanceAfter.Decimal.StringFixed(2)))
	}

	if tx.Reference != "" {
		sb.WriteString(fmt.Sprintf("\nReference: %s", tx.Reference))
	}

	sb.WriteString(fmt.Sprintf("\nDescription: %s", tx.Description))
	sb.WriteString(fmt.Sprintf("\nExtracted by: %s", tx.ExtractedBy))

	sb.WriteString("\n====================\n")
}

// A Caser is stateful and must not be shared between goroutines.
func title(s string) string {
	return cases.Title(language.Und).String(s)
}
