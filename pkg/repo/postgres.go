package repo

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skynet2/bank-sms-importer/pkg/common"
	"github.com/skynet2/bank-sms-importer/pkg/database"
)

type transactionRow struct {
	ID              string `gorm:"primaryKey"`
	Amount          decimal.Decimal
	Direction       string
	MerchantName    string
	BankHint        string
	AccountTail     string
	BalanceAfter    decimal.NullDecimal
	Reference       string
	TransactionDate *time.Time
	Description     string
	AccountID       string
	OriginalMessage string
	SenderAddress   string
	DedupKey        string
	Status          string
	Category        string
	ExtractedBy     string
	ReceivedAt      time.Time
	ExtractedAt     time.Time
	UpdatedAt       time.Time
}

func (transactionRow) TableName() string {
	return "transactions"
}

type accountRow struct {
	ID                string `gorm:"primaryKey"`
	DisplayName       string
	InstitutionName   string
	AccountNumberTail string
	IsActive          bool
	MatchKeywords     string
	CreatedAt         time.Time
}

func (accountRow) TableName() string {
	return "accounts"
}

type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{
		db: db,
	}
}

// OpenPostgres enables error translation so unique violations surface as gorm.ErrDuplicatedKey.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres")
	}

	return db, nil
}

func (p *Postgres) AddTransaction(ctx context.Context, tx *database.Transaction) error {
	row := &transactionRow{
		ID:              tx.ID,
		Amount:          tx.Amount,
		Direction:       string(tx.Direction),
		MerchantName:    tx.MerchantName,
		BankHint:        tx.BankHint,
		AccountTail:     tx.AccountTail,
		BalanceAfter:    tx.BalanceAfter,
		Reference:       tx.Reference,
		TransactionDate: tx.TransactionDate,
		Description:     tx.Description,
		AccountID:       tx.AccountID,
		OriginalMessage: tx.OriginalMessage,
		SenderAddress:   tx.SenderAddress,
		DedupKey:        dedupKey(tx),
		Status:          string(tx.Status),
		Category:        tx.Category,
		ExtractedBy:     tx.ExtractedBy,
		ReceivedAt:      tx.ReceivedAt,
		ExtractedAt:     tx.ExtractedAt,
		UpdatedAt:       tx.UpdatedAt,
	}

	err := p.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrapf(common.ErrDuplicate, "transaction %s", tx.ID)
	}

	return errors.Wrap(err, "failed to insert transaction")
}

func (p *Postgres) GetDuplicates(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	var final []string

	if err := p.db.WithContext(ctx).Model(&transactionRow{}).
		Where("dedup_key in ?", keys).
		Pluck("dedup_key", &final).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query duplicates")
	}

	return final, nil
}

func (p *Postgres) ListTransactions(ctx context.Context, limit int) ([]*database.Transaction, error) {
	var rows []*transactionRow

	if err := p.db.WithContext(ctx).
		Order("received_at desc").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return lo.Map(rows, func(row *transactionRow, _ int) *database.Transaction {
		return &database.Transaction{
			ID: row.ID,
			Candidate: database.Candidate{
				Amount:          row.Amount,
				Direction:       database.Direction(row.Direction),
				MerchantName:    row.MerchantName,
				BankHint:        row.BankHint,
				AccountTail:     row.AccountTail,
				BalanceAfter:    row.BalanceAfter,
				Reference:       row.Reference,
				TransactionDate: row.TransactionDate,
				Description:     row.Description,
			},
			AccountID:        row.AccountID,
			OriginalMessage:  row.OriginalMessage,
			SenderAddress:    row.SenderAddress,
			DeduplicationKey: row.DedupKey,
			Status:           database.TransactionStatus(row.Status),
			Category:         row.Category,
			ExtractedBy:      row.ExtractedBy,
			ReceivedAt:       row.ReceivedAt,
			ExtractedAt:      row.ExtractedAt,
			UpdatedAt:        row.UpdatedAt,
		}
	}), nil
}

func (p *Postgres) AddAccount(ctx context.Context, acc *database.Account) error {
	createdAt := acc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	row := &accountRow{
		ID:                acc.ID,
		DisplayName:       acc.DisplayName,
		InstitutionName:   acc.InstitutionName,
		AccountNumberTail: acc.AccountNumberTail,
		IsActive:          acc.IsActive,
		MatchKeywords:     strings.Join(acc.MatchKeywords, ","),
		CreatedAt:         createdAt,
	}

	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"display_name", "institution_name", "account_number_tail", "is_active", "match_keywords",
		}),
	}).Create(row).Error

	return errors.Wrap(err, "failed to upsert account")
}

// DeactivateMissing marks every account not in keepIDs as inactive.
func (p *Postgres) DeactivateMissing(ctx context.Context, keepIDs []string) error {
	q := p.db.WithContext(ctx).Model(&accountRow{})
	if len(keepIDs) > 0 {
		q = q.Where("id not in ?", keepIDs)
	} else {
		q = q.Where("1 = 1")
	}

	return errors.Wrap(q.Update("is_active", false).Error, "failed to deactivate accounts")
}

func (p *Postgres) ListActiveAccounts(ctx context.Context) ([]*database.Account, error) {
	return p.queryAccounts(ctx, "is_active = ?", true)
}

func (p *Postgres) FindByTailDigits(ctx context.Context, tail string) ([]*database.Account, error) {
	if tail == "" {
		return nil, nil
	}

	return p.queryAccounts(ctx,
		"is_active = ? and account_number_tail <> '' and right(account_number_tail, length(?)) = ?",
		true, tail, tail,
	)
}

func (p *Postgres) FindByInstitutionName(ctx context.Context, name string) ([]*database.Account, error) {
	if name == "" {
		return nil, nil
	}

	return p.queryAccounts(ctx,
		"is_active = ? and strpos(lower(institution_name), lower(?)) > 0",
		true, name,
	)
}

func (p *Postgres) queryAccounts(ctx context.Context, query string, args ...interface{}) ([]*database.Account, error) {
	var rows []*accountRow

	if err := p.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at, id").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query accounts")
	}

	return lo.Map(rows, func(row *accountRow, _ int) *database.Account {
		return &database.Account{
			ID:                row.ID,
			DisplayName:       row.DisplayName,
			InstitutionName:   row.InstitutionName,
			AccountNumberTail: row.AccountNumberTail,
			IsActive:          row.IsActive,
			MatchKeywords:     splitKeywords(row.MatchKeywords),
			CreatedAt:         row.CreatedAt,
		}
	}), nil
}
