package worker

import (
	"github.com/skynet2/bank-sms-importer/pkg/database"
)

type Outcome string

const (
	OutcomeStored    = Outcome("stored")
	OutcomeFiltered  = Outcome("filtered")
	OutcomeDuplicate = Outcome("duplicate")
	OutcomeFailed    = Outcome("failed")
)

type Config struct {
	Processor        Processor
	Tagger           Tagger
	Repo             Repo
	DuplicateCleaner DuplicateCleaner
	// NotificationSvc is optional. Nothing is sent when it is nil or ChatID is zero.
	NotificationSvc NotificationSvc
	Printer         Printer
	ChatID          int64
	Concurrency     int
}

type Result struct {
	Message     database.RawMessage   `json:"-"`
	Outcome     Outcome               `json:"outcome"`
	Transaction *database.Transaction `json:"transaction,omitempty"`
	Error       error                 `json:"-"`
}
