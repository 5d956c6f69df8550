package repo

import (
	"strings"

	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

// dedupKey falls back to the transaction id so rows without a message hash never collide.
func dedupKey(tx *database.Transaction) string {
	if tx.DeduplicationKey != "" {
		return tx.DeduplicationKey
	}

	return tx.ID
}

func splitKeywords(raw string) []string {
	return lo.Compact(lo.Map(strings.Split(raw, ","), func(k string, _ int) string {
		return strings.TrimSpace(k)
	}))
}
