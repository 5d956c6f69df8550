package duplicatecleaner

import (
	"context"
)

//go:generate mockgen -destination interfaces_mocks_test.go -package duplicatecleaner_test -source=interfaces.go

type Repo interface {
	GetDuplicates(ctx context.Context, keys []string) ([]string, error)
}
