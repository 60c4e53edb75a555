package installment

import (
	"context"

	"Parcelo/internal/domain/ledger"

	"github.com/oklog/ulid/v2"
)

// LedgerService is what the installment domain needs from the posting
// collaborator. *ledger.Service satisfies it.
type LedgerService interface {
	GetLedgerById(ctx context.Context, ledgerID, userID ulid.ULID) (*ledger.Ledger, error)
	GetAccountById(ctx context.Context, accountID, userID ulid.ULID) (*ledger.Account, error)
	GetTransactionById(ctx context.Context, transactionID, userID ulid.ULID) (*ledger.Transaction, error)
	FindOrCreateCategoryAccount(ctx context.Context, ledgerID, userID ulid.ULID, name string) (*ledger.Account, error)
	PostTransaction(ctx context.Context, req *ledger.PostTransactionRequest) (*ledger.Transaction, error)
}
