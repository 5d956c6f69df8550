package database

import (
	"time"
)

type TransactionStatus string

const (
	StatusPending = TransactionStatus("PENDING")
	StatusTagged  = TransactionStatus("TAGGED")
	StatusIgnored = TransactionStatus("IGNORED")
	StatusDeleted = TransactionStatus("DELETED")
)

// Transaction is the reconciled extraction outcome handed to persistence.
type Transaction struct {
	ID string `json:"id"`
	Candidate

	AccountID        string            `json:"accountId,omitempty"`
	OriginalMessage  string            `json:"originalMessage"`
	SenderAddress    string            `json:"senderAddress"`
	DeduplicationKey string            `json:"deduplicationKey,omitempty"`
	Status           TransactionStatus `json:"status"`
	Category         string            `json:"category,omitempty"`
	ExtractedBy      string            `json:"extractedBy"`

	ReceivedAt  time.Time `json:"receivedAt"`
	ExtractedAt time.Time `json:"extractedAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
