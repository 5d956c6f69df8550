package worker

import (
	"context"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package worker_test -source=interfaces.go

type Processor interface {
	Process(ctx context.Context, msg database.RawMessage) (*database.Transaction, error)
}

type Tagger interface {
	Apply(tx *database.Transaction) bool
}

type Repo interface {
	AddTransaction(ctx context.Context, tx *database.Transaction) error
}

type DuplicateCleaner interface {
	Key(msg database.RawMessage) string
	IsDuplicate(ctx context.Context, key string) (bool, error)
}

type NotificationSvc interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Printer interface {
	Transaction(tx *database.Transaction) string
}
