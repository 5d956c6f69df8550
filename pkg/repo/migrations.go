package repo

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, &gormigrate.Options{
		TableName:                 "gorm_migrations",
		IDColumnName:              "id",
		IDColumnSize:              255,
		UseTransaction:            false,
		ValidateUnknownMigrations: false,
	}, getMigrations())

	return errors.Wrap(m.Migrate(), "failed to migrate")
}

func getMigrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "2024_10_01_Accounts",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists accounts
(
    id                  text not null
        constraint accounts_pk
            primary key,
    display_name        text not null,
    institution_name    text not null,
    account_number_tail text not null default '',
    is_active           boolean not null default true,
    match_keywords      text not null default '',
    created_at          timestamp not null
);
`).Error
			},
		},
		{
			ID: "2024_10_01_Transactions",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create table if not exists transactions
(
    id               text not null
        constraint transactions_pk
            primary key,
    amount           decimal not null,
    direction        text not null,
    merchant_name    text not null default '',
    bank_hint        text not null default '',
    account_tail     text not null default '',
    balance_after    decimal,
    reference        text not null default '',
    transaction_date timestamp,
    description      text not null default '',
    account_id       text not null default '',
    original_message text not null,
    sender_address   text not null default '',
    dedup_key        text not null,
    status           text not null,
    category         text not null default '',
    extracted_by     text not null,
    received_at      timestamp not null,
    extracted_at     timestamp not null,
    updated_at       timestamp not null
);
`).Error
			},
		},
		{
			ID: "2024_10_02_TransactionsDedupKey",
			Migrate: func(db *gorm.DB) error {
				return db.Exec(`create unique index if not exists transactions_dedup_key_uindex
    on transactions (dedup_key);
create index if not exists transactions_received_at_index
    on transactions (received_at);
`).Error
			},
		},
	}
}
