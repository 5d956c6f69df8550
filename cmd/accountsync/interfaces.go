package main

import (
	"context"

	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/firefly"
)

type AccountSource interface {
	ListAccounts(ctx context.Context, accountType string) ([]*firefly.Account, error)
}

type AccountStore interface {
	AddAccount(ctx context.Context, acc *database.Account) error
	DeactivateMissing(ctx context.Context, keepIDs []string) error
}
