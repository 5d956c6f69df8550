package repo

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/skynet2/bank-sms-importer/pkg/common"
	"github.com/skynet2/bank-sms-importer/pkg/database"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS accounts (
    id                  TEXT PRIMARY KEY,
    display_name        TEXT NOT NULL,
    institution_name    TEXT NOT NULL,
    account_number_tail TEXT NOT NULL DEFAULT '',
    is_active           INTEGER NOT NULL DEFAULT 1,
    match_keywords      TEXT NOT NULL DEFAULT '',
    created_at          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id               TEXT PRIMARY KEY,
    amount           TEXT NOT NULL,
    direction        TEXT NOT NULL,
    merchant_name    TEXT NOT NULL DEFAULT '',
    bank_hint        TEXT NOT NULL DEFAULT '',
    account_tail     TEXT NOT NULL DEFAULT '',
    balance_after    TEXT,
    reference        TEXT NOT NULL DEFAULT '',
    transaction_date INTEGER,
    description      TEXT NOT NULL DEFAULT '',
    account_id       TEXT NOT NULL DEFAULT '',
    original_message TEXT NOT NULL,
    sender_address   TEXT NOT NULL DEFAULT '',
    dedup_key        TEXT NOT NULL,
    status           TEXT NOT NULL,
    category         TEXT NOT NULL DEFAULT '',
    extracted_by     TEXT NOT NULL,
    received_at      INTEGER NOT NULL,
    extracted_at     INTEGER NOT NULL,
    updated_at       INTEGER NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_dedup_key ON transactions(dedup_key);
CREATE INDEX IF NOT EXISTS idx_transactions_received_at ON transactions(received_at);
`

const transactionColumns = `id, amount, direction, merchant_name, bank_hint, account_tail, balance_after, reference,
    transaction_date, description, account_id, original_message, sender_address, dedup_key, status, category,
    extracted_by, received_at, extracted_at, updated_at`

const accountColumns = `id, display_name, institution_name, account_number_tail, is_active, match_keywords, created_at`

type SQLite struct {
	db *sql.DB
}

// NewSQLite applies the schema on open. Use ":memory:" only together with db.SetMaxOpenConns(1).
func NewSQLite(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, errors.Wrap(err, "failed to apply sqlite schema")
	}

	return &SQLite{
		db: db,
	}, nil
}

func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite")
	}

	db.SetMaxOpenConns(1)

	return NewSQLite(db)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) AddTransaction(ctx context.Context, tx *database.Transaction) error {
	var txDate sql.NullInt64
	if tx.TransactionDate != nil {
		txDate = sql.NullInt64{Int64: tx.TransactionDate.UnixMilli(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO transactions (`+transactionColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID,
		tx.Amount.String(),
		string(tx.Direction),
		tx.MerchantName,
		tx.BankHint,
		tx.AccountTail,
		tx.BalanceAfter,
		tx.Reference,
		txDate,
		tx.Description,
		tx.AccountID,
		tx.OriginalMessage,
		tx.SenderAddress,
		dedupKey(tx),
		string(tx.Status),
		tx.Category,
		tx.ExtractedBy,
		tx.ReceivedAt.UnixMilli(),
		tx.ExtractedAt.UnixMilli(),
		tx.UpdatedAt.UnixMilli(),
	)
	if isSQLiteConstraint(err) {
		return errors.Wrapf(common.ErrDuplicate, "transaction %s", tx.ID)
	}

	return errors.Wrap(err, "failed to insert transaction")
}

func (s *SQLite) GetDuplicates(ctx context.Context, keys []string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		args = append(args, k)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT dedup_key FROM transactions WHERE dedup_key IN (`+placeholders(len(keys))+`)`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query duplicates")
	}
	defer rows.Close()

	var final []string
	for rows.Next() {
		var key string
		if err = rows.Scan(&key); err != nil {
			return nil, errors.WithStack(err)
		}

		final = append(final, key)
	}

	return final, errors.WithStack(rows.Err())
}

func (s *SQLite) ListTransactions(ctx context.Context, limit int) ([]*database.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions ORDER BY received_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}
	defer rows.Close()

	var final []*database.Transaction
	for rows.Next() {
		tx, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		final = append(final, tx)
	}

	return final, errors.WithStack(rows.Err())
}

func (s *SQLite) AddAccount(ctx context.Context, acc *database.Account) error {
	createdAt := acc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name, institution_name = excluded.institution_name,
    account_number_tail = excluded.account_number_tail, is_active = excluded.is_active,
    match_keywords = excluded.match_keywords`,
		acc.ID,
		acc.DisplayName,
		acc.InstitutionName,
		acc.AccountNumberTail,
		acc.IsActive,
		strings.Join(acc.MatchKeywords, ","),
		createdAt.UnixMilli(),
	)

	return errors.Wrap(err, "failed to upsert account")
}

// DeactivateMissing marks every account not in keepIDs as inactive.
func (s *SQLite) DeactivateMissing(ctx context.Context, keepIDs []string) error {
	query := `UPDATE accounts SET is_active = 0`
	args := make([]interface{}, 0, len(keepIDs))

	if len(keepIDs) > 0 {
		query += ` WHERE id NOT IN (` + placeholders(len(keepIDs)) + `)`

		for _, id := range keepIDs {
			args = append(args, id)
		}
	}

	_, err := s.db.ExecContext(ctx, query, args...)

	return errors.Wrap(err, "failed to deactivate accounts")
}

func (s *SQLite) ListActiveAccounts(ctx context.Context) ([]*database.Account, error) {
	return s.queryAccounts(ctx, `is_active = 1`)
}

func (s *SQLite) FindByTailDigits(ctx context.Context, tail string) ([]*database.Account, error) {
	if tail == "" {
		return nil, nil
	}

	return s.queryAccounts(ctx, `is_active = 1 AND account_number_tail != '' AND substr(account_number_tail, -length(?)) = ?`,
		tail, tail)
}

func (s *SQLite) FindByInstitutionName(ctx context.Context, name string) ([]*database.Account, error) {
	if name == "" {
		return nil, nil
	}

	return s.queryAccounts(ctx, `is_active = 1 AND instr(lower(institution_name), lower(?)) > 0`, name)
}

func (s *SQLite) queryAccounts(ctx context.Context, where string, args ...interface{}) ([]*database.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE `+where+` ORDER BY created_at, rowid`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query accounts")
	}
	defer rows.Close()

	var final []*database.Account
	for rows.Next() {
		var acc database.Account
		var keywords string
		var createdAt int64

		if err = rows.Scan(
			&acc.ID,
			&acc.DisplayName,
			&acc.InstitutionName,
			&acc.AccountNumberTail,
			&acc.IsActive,
			&keywords,
			&createdAt,
		); err != nil {
			return nil, errors.WithStack(err)
		}

		acc.MatchKeywords = splitKeywords(keywords)
		acc.CreatedAt = time.UnixMilli(createdAt).UTC()

		final = append(final, &acc)
	}

	return final, errors.WithStack(rows.Err())
}

func scanTransaction(rows *sql.Rows) (*database.Transaction, error) {
	var tx database.Transaction
	var amount, direction, status string
	var txDate sql.NullInt64
	var receivedAt, extractedAt, updatedAt int64

	if err := rows.Scan(
		&tx.ID,
		&amount,
		&direction,
		&tx.MerchantName,
		&tx.BankHint,
		&tx.AccountTail,
		&tx.BalanceAfter,
		&tx.Reference,
		&txDate,
		&tx.Description,
		&tx.AccountID,
		&tx.OriginalMessage,
		&tx.SenderAddress,
		&tx.DeduplicationKey,
		&status,
		&tx.Category,
		&tx.ExtractedBy,
		&receivedAt,
		&extractedAt,
		&updatedAt,
	); err != nil {
		return nil, errors.WithStack(err)
	}

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount for transaction %s", tx.ID)
	}

	tx.Amount = parsed
	tx.Direction = database.Direction(direction)
	tx.Status = database.TransactionStatus(status)
	tx.ReceivedAt = time.UnixMilli(receivedAt).UTC()
	tx.ExtractedAt = time.UnixMilli(extractedAt).UTC()
	tx.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	if txDate.Valid {
		date := time.UnixMilli(txDate.Int64).UTC()
		tx.TransactionDate = &date
	}

	return &tx, nil
}

func isSQLiteConstraint(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	default:
		return false
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
