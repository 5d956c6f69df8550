package main

import (
	"context"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/firefly"
	"github.com/skynet2/bank-sms-importer/pkg/logger"
	"github.com/skynet2/bank-sms-importer/pkg/repo"
)

// accountsync mirrors Firefly asset accounts into the storage-backed account registry.
func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}

	lg := logger.New(cfg.LogLevel, false)
	ctx := lg.WithContext(context.Background())

	lg.Info().Str("driver", cfg.Storage.Driver).Msg("[Db] open storage and run migrations")

	storage, err := repo.Open(cfg.Storage)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to open storage")
	}

	ff := firefly.NewFirefly(cfg.FireflyApiKey, cfg.FireflyURL, req.DefaultClient())

	synced, err := syncAccounts(ctx, ff, storage)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to sync accounts")
	}

	lg.Info().Int("accounts", synced).Msg("accounts synced")
}

func syncAccounts(ctx context.Context, source AccountSource, store AccountStore) (int, error) {
	ffAccounts, err := source.ListAccounts(ctx, firefly.AccountTypeAsset)
	if err != nil {
		return 0, errors.Wrap(err, "failed to fetch firefly accounts")
	}

	for _, ffAccount := range ffAccounts {
		acc := firefly.ToAccount(ffAccount)

		if err = store.AddAccount(ctx, acc); err != nil {
			return 0, errors.Wrapf(err, "failed to save account %s", acc.ID)
		}

		zerolog.Ctx(ctx).Debug().
			Str("id", acc.ID).
			Str("institution", acc.InstitutionName).
			Bool("active", acc.IsActive).
			Msg("account saved")
	}

	// drop accounts which do not exist in Firefly anymore
	keep := lo.Map(ffAccounts, func(acc *firefly.Account, _ int) string {
		return acc.Id
	})

	if err = store.DeactivateMissing(ctx, keep); err != nil {
		return 0, err
	}

	return len(ffAccounts), nil
}
