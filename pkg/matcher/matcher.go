package matcher

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

// BankAliases groups the names one bank goes by in messages and in registries.
// Names are lower case.
var BankAliases = [][]string{
	{"sbi", "state bank of india", "state bank"},
	{"pnb", "punjab national bank"},
	{"baroda", "bob", "bank of baroda"},
	{"union bank", "union bank of india", "ubi"},
	{"idfc", "idfc first"},
	{"indusind", "indusind bank"},
	{"federal", "federal bank"},
}

type Matcher struct {
	registry Registry
}

func NewMatcher(registry Registry) *Matcher {
	return &Matcher{
		registry: registry,
	}
}

// Match resolves loose hints to a known account. Ambiguity is settled by registration order, never reported.
// A nil account with a nil error means no match.
func (m *Matcher) Match(ctx context.Context, tail string, bankHint string) (*database.Account, error) {
	tail = strings.TrimSpace(tail)
	bankHint = strings.TrimSpace(bankHint)

	if tail != "" {
		byTail, err := m.registry.FindByTailDigits(ctx, tail)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find accounts by tail digits")
		}

		byTail = activeOnly(byTail)

		switch {
		case len(byTail) == 1:
			return byTail[0], nil
		case len(byTail) > 1 && bankHint != "":
			names := HintNames(bankHint)
			narrowed := lo.Filter(byTail, func(acc *database.Account, _ int) bool {
				return lo.SomeBy(names, func(name string) bool {
					return InstitutionContains(acc, name)
				})
			})

			if len(narrowed) > 0 {
				return narrowed[0], nil
			}

			return byTail[0], nil
		case len(byTail) > 1:
			return byTail[0], nil
		}
	}

	if bankHint == "" {
		return nil, nil
	}

	for _, name := range HintNames(bankHint) {
		byBank, err := m.registry.FindByInstitutionName(ctx, name)
		if err != nil {
			return nil, errors.Wrap(err, "failed to find accounts by institution")
		}

		byBank = activeOnly(byBank)
		if len(byBank) > 0 {
			return byBank[0], nil
		}
	}

	return nil, nil
}

// HintNames returns the hint itself followed by the other names of its bank, if it names a known one.
func HintNames(hint string) []string {
	names := []string{hint}
	lower := strings.ToLower(hint)

	for _, group := range BankAliases {
		if !lo.Contains(group, lower) {
			continue
		}

		for _, alias := range group {
			if alias != lower {
				names = append(names, alias)
			}
		}

		break
	}

	return names
}

func InstitutionContains(acc *database.Account, hint string) bool {
	return strings.Contains(strings.ToLower(acc.InstitutionName), strings.ToLower(hint))
}

func TailMatches(acc *database.Account, tail string) bool {
	return acc.AccountNumberTail != "" && strings.HasSuffix(acc.AccountNumberTail, tail)
}

func activeOnly(accounts []*database.Account) []*database.Account {
	return lo.Filter(accounts, func(acc *database.Account, _ int) bool {
		return acc != nil && acc.IsActive
	})
}
