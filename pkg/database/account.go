package database

import (
	"time"
)

// Account is owned by the account registry. Registries return accounts in registration order.
type Account struct {
	ID                string    `json:"id"`
	DisplayName       string    `json:"displayName"`
	InstitutionName   string    `json:"institutionName"`
	AccountNumberTail string    `json:"accountNumberTail,omitempty"`
	IsActive          bool      `json:"isActive"`
	MatchKeywords     []string  `json:"matchKeywords,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}
