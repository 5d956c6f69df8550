package matcher

import (
	"context"

	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

// AccountList is an in-memory Registry. Slice order is registration order.
type AccountList []*database.Account

func (a AccountList) ListActiveAccounts(_ context.Context) ([]*database.Account, error) {
	return lo.Filter(a, func(acc *database.Account, _ int) bool {
		return acc.IsActive
	}), nil
}

func (a AccountList) FindByTailDigits(_ context.Context, tail string) ([]*database.Account, error) {
	return lo.Filter(a, func(acc *database.Account, _ int) bool {
		return acc.IsActive && TailMatches(acc, tail)
	}), nil
}

func (a AccountList) FindByInstitutionName(_ context.Context, name string) ([]*database.Account, error) {
	return lo.Filter(a, func(acc *database.Account, _ int) bool {
		return acc.IsActive && InstitutionContains(acc, name)
	}), nil
}
