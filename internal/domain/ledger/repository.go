package ledger

import (
	"context"

	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateLedger(ctx context.Context, entity *Ledger) error
	GetLedgerById(ctx context.Context, ledgerID, userID ulid.ULID) (*Ledger, error)
	GetLedgersByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Ledger, int64, error)

	CreateAccount(ctx context.Context, account *Account) error
	UpsertAccount(ctx context.Context, account *Account) error
	GetAccountById(ctx context.Context, accountID, userID ulid.ULID) (*Account, error)
	GetAccountByName(ctx context.Context, ledgerID, userID ulid.ULID, name string) (*Account, error)
	GetAccountsByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Account, int64, error)
	AdjustBalance(ctx context.Context, accountID ulid.ULID, delta int64) error

	CreateTransaction(ctx context.Context, transaction *Transaction) error
	GetTransactionById(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error)
	GetTransactionsByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
}
