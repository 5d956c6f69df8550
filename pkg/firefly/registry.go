package firefly

import (
	"context"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/matcher"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// Registry exposes Firefly asset accounts to the account matcher. Accounts are fetched on every call.
type Registry struct {
	ff *Firefly
}

func NewRegistry(ff *Firefly) *Registry {
	return &Registry{
		ff: ff,
	}
}

func (r *Registry) ListActiveAccounts(ctx context.Context) ([]*database.Account, error) {
	list, err := r.accounts(ctx)
	if err != nil {
		return nil, err
	}

	return list.ListActiveAccounts(ctx)
}

func (r *Registry) FindByTailDigits(ctx context.Context, tail string) ([]*database.Account, error) {
	list, err := r.accounts(ctx)
	if err != nil {
		return nil, err
	}

	return list.FindByTailDigits(ctx, tail)
}

func (r *Registry) FindByInstitutionName(ctx context.Context, name string) ([]*database.Account, error) {
	list, err := r.accounts(ctx)
	if err != nil {
		return nil, err
	}

	return list.FindByInstitutionName(ctx, name)
}

func (r *Registry) accounts(ctx context.Context) (matcher.AccountList, error) {
	accounts, err := r.ff.ListAccounts(ctx, AccountTypeAsset)
	if err != nil {
		return nil, err
	}

	return lo.Map(accounts, func(acc *Account, _ int) *database.Account {
		return ToAccount(acc)
	}), nil
}

// ToAccount takes the institution from the first line of the account notes, falling back to the account name.
func ToAccount(acc *Account) *database.Account {
	institution := strings.TrimSpace(strings.SplitN(acc.Attributes.Notes, "\n", 2)[0])
	if institution == "" {
		institution = acc.Attributes.Name
	}

	return &database.Account{
		ID:                acc.Id,
		DisplayName:       acc.Attributes.Name,
		InstitutionName:   institution,
		AccountNumberTail: accountTail(acc.Attributes.AccountNumber, acc.Attributes.Iban),
		IsActive:          acc.Attributes.Active,
	}
}

func accountTail(candidates ...string) string {
	for _, c := range candidates {
		digits := nonDigitRegex.ReplaceAllString(c, "")
		if len(digits) >= 4 {
			return digits[len(digits)-4:]
		}
	}

	return ""
}
