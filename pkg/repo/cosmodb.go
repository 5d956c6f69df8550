package repo

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/cockroachdb/errors"
	"github.com/gammazero/workerpool"
	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/common"
	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/matcher"
)

const (
	transactionsContainer = "transactions"
	accountsContainer     = "accounts"
	partitionKeyPath      = "/kind"
	kindTransaction       = "transaction"
	kindAccount           = "account"
	defaultPoolSize       = 50
)

// cosmoTransaction uses the dedup key as document id, so a second insert of the same message conflicts.
type cosmoTransaction struct {
	ID   string                `json:"id"`
	Kind string                `json:"kind"`
	Data *database.Transaction `json:"data"`
}

type cosmoAccount struct {
	ID   string            `json:"id"`
	Kind string            `json:"kind"`
	Data *database.Account `json:"data"`
}

type Cosmo struct {
	cl          *azcosmos.DatabaseClient
	setupCalled bool
	mut         sync.Mutex
}

func NewCosmo(
	cl *azcosmos.Client,
	dbName string,
) (*Cosmo, error) {
	_, err := cl.CreateDatabase(context.Background(), azcosmos.DatabaseProperties{
		ID: dbName,
	}, &azcosmos.CreateDatabaseOptions{})

	c := &Cosmo{}

	if realErr := c.ignoreDuplicateErr(err); realErr != nil {
		return nil, realErr
	}

	db, err := cl.NewDatabase(dbName)
	if err != nil {
		return nil, err
	}
	c.cl = db

	if err = c.setupContainers(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Cosmo) setupContainers() error {
	c.mut.Lock()
	defer c.mut.Unlock()

	if c.setupCalled {
		return nil
	}

	for _, id := range []string{transactionsContainer, accountsContainer} {
		_, err := c.cl.CreateContainer(context.Background(), azcosmos.ContainerProperties{
			ID: id,
			PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
				Paths: []string{partitionKeyPath},
			},
		}, &azcosmos.CreateContainerOptions{})
		if err = c.ignoreDuplicateErr(err); err != nil {
			return errors.Wrapf(err, "failed to create container %s", id)
		}
	}

	c.setupCalled = true

	return nil
}

func (c *Cosmo) ignoreDuplicateErr(err error) error {
	if isStatus(err, http.StatusConflict) {
		return nil
	}

	return err
}

func isStatus(err error, status int) bool {
	var azureErr *azcore.ResponseError

	return errors.As(err, &azureErr) && azureErr.StatusCode == status
}

func (c *Cosmo) container(id string) (*azcosmos.ContainerClient, error) {
	if err := c.setupContainers(); err != nil {
		return nil, err
	}

	return c.cl.NewContainer(id)
}

func (c *Cosmo) AddTransaction(ctx context.Context, tx *database.Transaction) error {
	container, err := c.container(transactionsContainer)
	if err != nil {
		return err
	}

	b, err := json.Marshal(cosmoTransaction{
		ID:   dedupKey(tx),
		Kind: kindTransaction,
		Data: tx,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = container.CreateItem(ctx, azcosmos.NewPartitionKeyString(kindTransaction), b, nil)
	if isStatus(err, http.StatusConflict) {
		return errors.Wrapf(common.ErrDuplicate, "transaction %s", tx.ID)
	}

	return errors.Wrap(err, "failed to create transaction item")
}

// GetDuplicates issues one point read per key on a worker pool.
func (c *Cosmo) GetDuplicates(ctx context.Context, keys []string) ([]string, error) {
	container, err := c.container(transactionsContainer)
	if err != nil {
		return nil, err
	}

	partitionKey := azcosmos.NewPartitionKeyString(kindTransaction)
	pool := workerpool.New(defaultPoolSize)

	var mut sync.Mutex
	var final []string
	var finalErr error

	for _, key := range keys {
		pool.Submit(func() {
			_, readErr := container.ReadItem(ctx, partitionKey, key, nil)

			mut.Lock()
			defer mut.Unlock()

			switch {
			case readErr == nil:
				final = append(final, key)
			case isStatus(readErr, http.StatusNotFound):
			default:
				finalErr = errors.CombineErrors(finalErr, readErr)
			}
		})
	}

	pool.StopWait()

	if finalErr != nil {
		return nil, errors.Wrap(finalErr, "failed to read duplicate keys")
	}

	return final, nil
}

func (c *Cosmo) ListTransactions(ctx context.Context, limit int) ([]*database.Transaction, error) {
	container, err := c.container(transactionsContainer)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM c ORDER BY c.data.receivedAt DESC OFFSET 0 LIMIT @limit"
	pager := container.NewQueryItemsPager(query, azcosmos.NewPartitionKeyString(kindTransaction), &azcosmos.QueryOptions{
		QueryParameters: []azcosmos.QueryParameter{
			{
				Name:  "@limit",
				Value: limit,
			},
		},
	})

	var items []*database.Transaction

	for pager.More() {
		response, pageErr := pager.NextPage(ctx)
		if pageErr != nil {
			return nil, errors.WithStack(pageErr)
		}

		for _, bytes := range response.Items {
			var item cosmoTransaction
			if err = json.Unmarshal(bytes, &item); err != nil {
				return nil, errors.WithStack(err)
			}

			items = append(items, item.Data)
		}
	}

	return items, nil
}

func (c *Cosmo) AddAccount(ctx context.Context, acc *database.Account) error {
	container, err := c.container(accountsContainer)
	if err != nil {
		return err
	}

	return c.upsertAccount(ctx, container, acc)
}

func (c *Cosmo) upsertAccount(ctx context.Context, container *azcosmos.ContainerClient, acc *database.Account) error {
	b, err := json.Marshal(cosmoAccount{
		ID:   acc.ID,
		Kind: kindAccount,
		Data: acc,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	_, err = container.UpsertItem(ctx, azcosmos.NewPartitionKeyString(kindAccount), b, nil)

	return errors.Wrapf(err, "failed to upsert account %s", acc.ID)
}

// DeactivateMissing marks every account not in keepIDs as inactive.
func (c *Cosmo) DeactivateMissing(ctx context.Context, keepIDs []string) error {
	container, err := c.container(accountsContainer)
	if err != nil {
		return err
	}

	accounts, err := c.allAccounts(ctx)
	if err != nil {
		return err
	}

	toUpdate := lo.Filter(accounts, func(acc *database.Account, _ int) bool {
		return acc.IsActive && !lo.Contains(keepIDs, acc.ID)
	})

	pool := workerpool.New(defaultPoolSize)

	var mut sync.Mutex
	var finalErr error

	for _, acc := range toUpdate {
		pool.Submit(func() {
			acc.IsActive = false

			if upsertErr := c.upsertAccount(ctx, container, acc); upsertErr != nil {
				mut.Lock()
				finalErr = errors.CombineErrors(finalErr, upsertErr)
				mut.Unlock()
			}
		})
	}

	pool.StopWait()

	return finalErr
}

func (c *Cosmo) allAccounts(ctx context.Context) (matcher.AccountList, error) {
	container, err := c.container(accountsContainer)
	if err != nil {
		return nil, err
	}

	pager := container.NewQueryItemsPager("SELECT * FROM c ORDER BY c.data.createdAt",
		azcosmos.NewPartitionKeyString(kindAccount), nil)

	var items matcher.AccountList

	for pager.More() {
		response, pageErr := pager.NextPage(ctx)
		if pageErr != nil {
			return nil, errors.WithStack(pageErr)
		}

		for _, bytes := range response.Items {
			var item cosmoAccount
			if err = json.Unmarshal(bytes, &item); err != nil {
				return nil, errors.WithStack(err)
			}

			items = append(items, item.Data)
		}
	}

	return items, nil
}

func (c *Cosmo) ListActiveAccounts(ctx context.Context) ([]*database.Account, error) {
	accounts, err := c.allAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return accounts.ListActiveAccounts(ctx)
}

func (c *Cosmo) FindByTailDigits(ctx context.Context, tail string) ([]*database.Account, error) {
	accounts, err := c.allAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return accounts.FindByTailDigits(ctx, tail)
}

func (c *Cosmo) FindByInstitutionName(ctx context.Context, name string) ([]*database.Account, error) {
	accounts, err := c.allAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return accounts.FindByInstitutionName(ctx, name)
}
