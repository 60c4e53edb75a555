package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Parcelo/internal/domain/ledger"
	"Parcelo/internal/domain/user"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type fakeLedgerRepository struct {
	createLedgerFn      func(ctx context.Context, entity *ledger.Ledger) error
	getLedgerByIDFn     func(ctx context.Context, ledgerID, userID ulid.ULID) (*ledger.Ledger, error)
	getLedgersByUserFn  func(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Ledger, int64, error)
	createAccountFn     func(ctx context.Context, account *ledger.Account) error
	upsertAccountFn     func(ctx context.Context, account *ledger.Account) error
	getAccountByIDFn    func(ctx context.Context, accountID, userID ulid.ULID) (*ledger.Account, error)
	getAccountByNameFn  func(ctx context.Context, ledgerID, userID ulid.ULID, name string) (*ledger.Account, error)
	getAccountsFn       func(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Account, int64, error)
	adjustBalanceFn     func(ctx context.Context, accountID ulid.ULID, delta int64) error
	createTransactionFn func(ctx context.Context, transaction *ledger.Transaction) error
	getTransactionFn    func(ctx context.Context, transactionID, userID ulid.ULID) (*ledger.Transaction, error)
	getTransactionsFn   func(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error)
}

func (f *fakeLedgerRepository) CreateLedger(ctx context.Context, entity *ledger.Ledger) error {
	if f.createLedgerFn != nil {
		return f.createLedgerFn(ctx, entity)
	}
	return nil
}

func (f *fakeLedgerRepository) GetLedgerById(ctx context.Context, ledgerID, userID ulid.ULID) (*ledger.Ledger, error) {
	if f.getLedgerByIDFn != nil {
		return f.getLedgerByIDFn(ctx, ledgerID, userID)
	}
	return &ledger.Ledger{Id: ledgerID, UserId: userID}, nil
}

func (f *fakeLedgerRepository) GetLedgersByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Ledger, int64, error) {
	if f.getLedgersByUserFn != nil {
		return f.getLedgersByUserFn(ctx, userID, pagination)
	}
	return nil, 0, nil
}

func (f *fakeLedgerRepository) CreateAccount(ctx context.Context, account *ledger.Account) error {
	if f.createAccountFn != nil {
		return f.createAccountFn(ctx, account)
	}
	return nil
}

func (f *fakeLedgerRepository) UpsertAccount(ctx context.Context, account *ledger.Account) error {
	if f.upsertAccountFn != nil {
		return f.upsertAccountFn(ctx, account)
	}
	return nil
}

func (f *fakeLedgerRepository) GetAccountById(ctx context.Context, accountID, userID ulid.ULID) (*ledger.Account, error) {
	if f.getAccountByIDFn != nil {
		return f.getAccountByIDFn(ctx, accountID, userID)
	}
	return nil, appErrors.ErrAccountNotFound
}

func (f *fakeLedgerRepository) GetAccountByName(ctx context.Context, ledgerID, userID ulid.ULID, name string) (*ledger.Account, error) {
	if f.getAccountByNameFn != nil {
		return f.getAccountByNameFn(ctx, ledgerID, userID, name)
	}
	return nil, appErrors.ErrAccountNotFound
}

func (f *fakeLedgerRepository) GetAccountsByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Account, int64, error) {
	if f.getAccountsFn != nil {
		return f.getAccountsFn(ctx, ledgerID, userID, pagination)
	}
	return nil, 0, nil
}

func (f *fakeLedgerRepository) AdjustBalance(ctx context.Context, accountID ulid.ULID, delta int64) error {
	if f.adjustBalanceFn != nil {
		return f.adjustBalanceFn(ctx, accountID, delta)
	}
	return nil
}

func (f *fakeLedgerRepository) CreateTransaction(ctx context.Context, transaction *ledger.Transaction) error {
	if f.createTransactionFn != nil {
		return f.createTransactionFn(ctx, transaction)
	}
	return nil
}

func (f *fakeLedgerRepository) GetTransactionById(ctx context.Context, transactionID, userID ulid.ULID) (*ledger.Transaction, error) {
	if f.getTransactionFn != nil {
		return f.getTransactionFn(ctx, transactionID, userID)
	}
	return nil, appErrors.ErrNotFound
}

func (f *fakeLedgerRepository) GetTransactionsByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error) {
	if f.getTransactionsFn != nil {
		return f.getTransactionsFn(ctx, ledgerID, userID, pagination)
	}
	return nil, 0, nil
}

type fakeUserRepo struct {
	getByIDFn func(ctx context.Context, id ulid.ULID) (*user.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, _ *user.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, _ *user.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, _ ulid.ULID) error  { return nil }
func (f *fakeUserRepo) GetByEmail(ctx context.Context, _ string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &user.User{Id: id}, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeLedgerRepository) *ledger.Service {
	return &ledger.Service{
		Repository:  repo,
		UserService: &user.Service{Repository: &fakeUserRepo{}},
		Tx:          &fakeTxManager{},
	}
}

func TestServiceCreateLedger(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()

	t.Run("defaults currency to BRL", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&fakeLedgerRepository{})

		entity, err := svc.CreateLedger(context.Background(), &ledger.CreateLedgerRequest{
			UserId: userID,
			Name:   "Pessoal",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entity.Currency != "BRL" {
			t.Errorf("expected BRL, got %s", entity.Currency)
		}
	})

	t.Run("rejects bad currency", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&fakeLedgerRepository{})

		_, err := svc.CreateLedger(context.Background(), &ledger.CreateLedgerRequest{
			UserId:   userID,
			Name:     "Pessoal",
			Currency: "REAL",
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %s", appErr.Code)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&fakeLedgerRepository{})

		_, err := svc.CreateLedger(context.Background(), &ledger.CreateLedgerRequest{
			UserId: userID,
			Name:   "  ",
		})
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestServiceCreateAccount(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ledgerID := ulid.Make()

	t.Run("rejects invalid kind", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&fakeLedgerRepository{})

		_, err := svc.CreateAccount(context.Background(), &ledger.CreateAccountRequest{
			UserId:   userID,
			LedgerId: ledgerID,
			Name:     "Carteira",
			Kind:     ledger.AccountKind("WALLET"),
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %s", appErr.Code)
		}
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		t.Parallel()

		repo := &fakeLedgerRepository{
			createAccountFn: func(ctx context.Context, account *ledger.Account) error {
				return errors.New(`ERROR: duplicate key value violates unique constraint "idx_accounts_ledger_name" (SQLSTATE 23505)`)
			},
		}
		svc := newTestService(repo)

		_, err := svc.CreateAccount(context.Background(), &ledger.CreateAccountRequest{
			UserId:   userID,
			LedgerId: ledgerID,
			Name:     "Nubank",
			Kind:     ledger.KindLiability,
		})
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != "CONFLICT" {
			t.Fatalf("expected conflict, got %s", appErr.Code)
		}
	})
}

func TestServiceGetAccountById(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	accountID := ulid.Make()

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&fakeLedgerRepository{})

		_, err := svc.GetAccountById(context.Background(), accountID, userID)
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != appErrors.ErrAccountNotFound.Code {
			t.Fatalf("expected account not found, got %s", appErr.Code)
		}
	})

	t.Run("owned by someone else", func(t *testing.T) {
		t.Parallel()

		repo := &fakeLedgerRepository{
			getAccountByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*ledger.Account, error) {
				return &ledger.Account{Id: id, UserId: ulid.Make()}, nil
			},
		}
		svc := newTestService(repo)

		_, err := svc.GetAccountById(context.Background(), accountID, userID)
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != appErrors.ErrResourceNotOwned.Code {
			t.Fatalf("expected resource not owned, got %s", appErr.Code)
		}
	})
}

func TestServicePostTransaction(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ledgerID := ulid.Make()
	debitID := ulid.Make()
	creditID := ulid.Make()

	newRepo := func() *fakeLedgerRepository {
		return &fakeLedgerRepository{
			getAccountByIDFn: func(ctx context.Context, id, uid ulid.ULID) (*ledger.Account, error) {
				switch id {
				case debitID:
					return &ledger.Account{Id: debitID, LedgerId: ledgerID, UserId: uid, Kind: ledger.KindCategory}, nil
				case creditID:
					return &ledger.Account{Id: creditID, LedgerId: ledgerID, UserId: uid, Kind: ledger.KindCategory}, nil
				}
				return nil, appErrors.ErrAccountNotFound
			},
		}
	}

	baseReq := func() *ledger.PostTransactionRequest {
		return &ledger.PostTransactionRequest{
			UserId:          userID,
			LedgerId:        ledgerID,
			Date:            time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC),
			Description:     "Pagamento",
			DebitAccountId:  debitID,
			CreditAccountId: creditID,
			Amount:          5000,
		}
	}

	t.Run("adjusts both balances", func(t *testing.T) {
		t.Parallel()

		deltas := map[ulid.ULID]int64{}
		created := false
		repo := newRepo()
		repo.createTransactionFn = func(ctx context.Context, transaction *ledger.Transaction) error {
			created = true
			return nil
		}
		repo.adjustBalanceFn = func(ctx context.Context, accountID ulid.ULID, delta int64) error {
			deltas[accountID] += delta
			return nil
		}

		svc := newTestService(repo)

		transaction, err := svc.PostTransaction(context.Background(), baseReq())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created {
			t.Fatalf("expected transaction row to be created")
		}
		if deltas[debitID] != 5000 {
			t.Errorf("expected debit account +5000, got %d", deltas[debitID])
		}
		if deltas[creditID] != -5000 {
			t.Errorf("expected credit account -5000, got %d", deltas[creditID])
		}
		if transaction.Amount != 5000 {
			t.Errorf("expected amount 5000, got %d", transaction.Amount)
		}
	})

	t.Run("rejects same debit and credit", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(newRepo())

		req := baseReq()
		req.CreditAccountId = debitID

		_, err := svc.PostTransaction(context.Background(), req)
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %s", appErr.Code)
		}
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(newRepo())

		req := baseReq()
		req.Amount = 0

		_, err := svc.PostTransaction(context.Background(), req)
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("rejects account from another ledger", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		otherLedger := ulid.Make()
		repo.getAccountByIDFn = func(ctx context.Context, id, uid ulid.ULID) (*ledger.Account, error) {
			if id == debitID {
				return &ledger.Account{Id: debitID, LedgerId: otherLedger, UserId: uid, Kind: ledger.KindCategory}, nil
			}
			return &ledger.Account{Id: creditID, LedgerId: ledgerID, UserId: uid, Kind: ledger.KindCategory}, nil
		}

		svc := newTestService(repo)

		_, err := svc.PostTransaction(context.Background(), baseReq())
		if err == nil {
			t.Fatalf("expected error")
		}
		appErr, _ := appErrors.AsAppError(err)
		if appErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %s", appErr.Code)
		}
	})
}

func TestServiceFindOrCreateCategoryAccount(t *testing.T) {
	t.Parallel()

	userID := ulid.Make()
	ledgerID := ulid.Make()

	t.Run("returns existing account", func(t *testing.T) {
		t.Parallel()

		existing := &ledger.Account{Id: ulid.Make(), LedgerId: ledgerID, UserId: userID, Name: "CC Payment: Nubank", Kind: ledger.KindCategory}
		upsertCalled := false
		repo := &fakeLedgerRepository{
			getAccountByNameFn: func(ctx context.Context, lid, uid ulid.ULID, name string) (*ledger.Account, error) {
				return existing, nil
			},
			upsertAccountFn: func(ctx context.Context, account *ledger.Account) error {
				upsertCalled = true
				return nil
			},
		}
		svc := newTestService(repo)

		got, err := svc.FindOrCreateCategoryAccount(context.Background(), ledgerID, userID, "CC Payment: Nubank")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Id != existing.Id {
			t.Errorf("expected existing account")
		}
		if upsertCalled {
			t.Errorf("expected no upsert for existing account")
		}
	})

	t.Run("creates category when absent", func(t *testing.T) {
		t.Parallel()

		var upserted *ledger.Account
		lookups := 0
		repo := &fakeLedgerRepository{
			getAccountByNameFn: func(ctx context.Context, lid, uid ulid.ULID, name string) (*ledger.Account, error) {
				lookups++
				if lookups == 1 {
					return nil, appErrors.ErrAccountNotFound
				}
				return upserted, nil
			},
			upsertAccountFn: func(ctx context.Context, account *ledger.Account) error {
				upserted = account
				return nil
			},
		}
		svc := newTestService(repo)

		got, err := svc.FindOrCreateCategoryAccount(context.Background(), ledgerID, userID, "Mercado")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Kind != ledger.KindCategory {
			t.Fatalf("expected a CATEGORY account, got %+v", got)
		}
		if got.Name != "Mercado" {
			t.Errorf("expected name Mercado, got %s", got.Name)
		}
	})
}
