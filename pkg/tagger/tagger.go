package tagger

import (
	"github.com/shopspring/decimal"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

const LowValueCategory = "Small Expense"

var DefaultThreshold = decimal.NewFromInt(100)

// Tagger files pending transactions below the threshold under LowValueCategory.
type Tagger struct {
	threshold decimal.Decimal
}

func NewTagger(threshold decimal.Decimal) *Tagger {
	if !threshold.IsPositive() {
		threshold = DefaultThreshold
	}

	return &Tagger{
		threshold: threshold,
	}
}

func (t *Tagger) Threshold() decimal.Decimal {
	return t.threshold
}

// Apply mutates tx in place and reports whether it was tagged. Non-pending transactions are left alone.
func (t *Tagger) Apply(tx *database.Transaction) bool {
	if tx == nil || tx.Status != database.StatusPending {
		return false
	}

	if !tx.Amount.LessThan(t.threshold) {
		return false
	}

	tx.Status = database.StatusTagged
	tx.Category = LowValueCategory

	return true
}
