package repo

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/cockroachdb/errors"

	"github.com/skynet2/bank-sms-importer/pkg/database"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverCosmo    = "cosmos"
)

// Storage is what every backend implements: transaction persistence, dedup lookups and the account registry.
type Storage interface {
	AddTransaction(ctx context.Context, tx *database.Transaction) error
	GetDuplicates(ctx context.Context, keys []string) ([]string, error)
	ListTransactions(ctx context.Context, limit int) ([]*database.Transaction, error)

	AddAccount(ctx context.Context, acc *database.Account) error
	DeactivateMissing(ctx context.Context, keepIDs []string) error
	ListActiveAccounts(ctx context.Context) ([]*database.Account, error)
	FindByTailDigits(ctx context.Context, tail string) ([]*database.Account, error)
	FindByInstitutionName(ctx context.Context, name string) ([]*database.Account, error)
}

type StorageConfig struct {
	Driver                   string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath               string `env:"SQLITE_PATH" envDefault:"transactions.db"`
	PostgresConnectionString string `env:"POSTGRES_CONNECTION_STRING"`
	CosmoConnectionString    string `env:"COSMO_DB_CONNECTION_STRING"`
	CosmoDbName              string `env:"COSMO_DB_NAME" envDefault:"bank_sms"`
}

// Open runs schema setup for the selected driver, including Postgres migrations.
func Open(cfg StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return OpenSQLite(cfg.SQLitePath)
	case DriverPostgres:
		db, err := OpenPostgres(cfg.PostgresConnectionString)
		if err != nil {
			return nil, err
		}

		if err = Migrate(db); err != nil {
			return nil, err
		}

		return NewPostgres(db), nil
	case DriverCosmo:
		client, err := azcosmos.NewClientFromConnectionString(cfg.CosmoConnectionString, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create cosmos client")
		}

		return NewCosmo(client, cfg.CosmoDbName)
	default:
		return nil, errors.Newf("unsupported storage driver: %s", cfg.Driver)
	}
}
