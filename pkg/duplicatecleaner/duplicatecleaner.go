package duplicatecleaner

import (
	"context"
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

// DuplicateCleaner derives deduplication keys from message bodies and asks the store which ones it already holds.
type DuplicateCleaner struct {
	repo Repo
}

func NewDuplicateCleaner(
	repo Repo,
) *DuplicateCleaner {
	return &DuplicateCleaner{
		repo: repo,
	}
}

// Key ignores the sender so the same SMS forwarded through different channels collapses to one key.
func (d *DuplicateCleaner) Key(msg database.RawMessage) string {
	body := strings.Join(strings.Fields(msg.Body), " ")
	if body == "" {
		return ""
	}

	return d.HashKey(body)
}

func (d *DuplicateCleaner) IsDuplicate(
	ctx context.Context,
	key string,
) (bool, error) {
	duplicates, err := d.GetDuplicates(ctx, []string{key})
	if err != nil {
		return false, err
	}

	_, ok := duplicates[key]

	return ok, nil
}

// GetDuplicates returns the subset of keys already stored. Empty keys are never duplicates.
func (d *DuplicateCleaner) GetDuplicates(
	ctx context.Context,
	keys []string,
) (map[string]struct{}, error) {
	keys = lo.Uniq(lo.Compact(keys))

	final := map[string]struct{}{}

	if len(keys) == 0 {
		return final, nil
	}

	exists, err := d.repo.GetDuplicates(ctx, keys)
	if err != nil {
		return nil, err
	}

	for _, key := range exists {
		final[key] = struct{}{}
	}

	return final, nil
}

func (d *DuplicateCleaner) HashKey(bv string) string {
	shaImpl := sha512.New()
	shaImpl.Write([]byte(bv))

	return fmt.Sprintf("%x", shaImpl.Sum(nil))
}
