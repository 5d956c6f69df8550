package database

import (
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionDebit  = Direction("DEBIT")
	DirectionCredit = Direction("CREDIT")
)

const (
	ExtractorCloud   = "cloud"
	ExtractorPattern = "pattern"
)

// Candidate is an unreconciled extractor result. A nil *Candidate means extraction failed.
type Candidate struct {
	Amount          decimal.Decimal     `json:"amount"`
	Direction       Direction           `json:"direction"`
	MerchantName    string              `json:"merchantName,omitempty"`
	BankHint        string              `json:"bankHint,omitempty"`
	AccountTail     string              `json:"accountTail,omitempty"`
	BalanceAfter    decimal.NullDecimal `json:"balanceAfter"`
	Reference       string              `json:"transactionReference,omitempty"`
	TransactionDate *time.Time          `json:"transactionDate,omitempty"`
	Description     string              `json:"description"`
}

func (c *Candidate) Valid() bool {
	if c == nil {
		return false
	}

	if !c.Amount.IsPositive() {
		return false
	}

	return c.Direction == DirectionDebit || c.Direction == DirectionCredit
}
