package matcher

import (
	"context"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package matcher_test -source=interfaces.go

// Registry is the read side of the account store. Results keep registration order.
type Registry interface {
	ListActiveAccounts(ctx context.Context) ([]*database.Account, error)
	FindByTailDigits(ctx context.Context, tail string) ([]*database.Account, error)
	FindByInstitutionName(ctx context.Context, name string) ([]*database.Account, error)
}
