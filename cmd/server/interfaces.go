package main

import (
	"context"

	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/processor"
	"github.com/skynet2/bank-sms-importer/pkg/worker"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package main -source=interfaces.go

type MessageWorker interface {
	Handle(ctx context.Context, msg database.RawMessage) (*worker.Result, error)
	ProcessBatch(ctx context.Context, messages []database.RawMessage) []*worker.Result
}

type StatusProvider interface {
	Status() processor.ProcessingStatus
}

type TransactionLister interface {
	ListTransactions(ctx context.Context, limit int) ([]*database.Transaction, error)
}

type AccountLister interface {
	ListActiveAccounts(ctx context.Context) ([]*database.Account, error)
}

type Reactor interface {
	React(ctx context.Context, chatID int64, messageID int64, reaction string) error
}

type Summarizer interface {
	Summary(results []*worker.Result) string
}
