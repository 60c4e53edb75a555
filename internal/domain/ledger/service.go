package ledger

import (
	"context"
	"strings"
	"time"

	"Parcelo/internal/domain/shared"
	"Parcelo/internal/domain/user"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository  Repository
	UserService *user.Service
	Tx          shared.TxManager
}

func NewService(repo Repository, userSvc *user.Service, tx shared.TxManager) *Service {
	return &Service{
		Repository:  repo,
		UserService: userSvc,
		Tx:          tx,
	}
}

func (s *Service) CreateLedger(ctx context.Context, req *CreateLedgerRequest) (*Ledger, error) {
	if err := s.UserService.Exists(ctx, req.UserId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "e obrigatorio")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "BRL"
	}
	if len(currency) != 3 {
		return nil, appErrors.NewValidationError("currency", "deve ter 3 letras (ISO 4217)")
	}

	now := pkg.SetTimestamps()
	entity := &Ledger{
		Id:        pkg.GenerateULIDObject(),
		UserId:    req.UserId,
		Name:      name,
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.CreateLedger(ctx, entity); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return entity, nil
}

func (s *Service) GetLedgerById(ctx context.Context, ledgerID, userID ulid.ULID) (*Ledger, error) {
	entity, err := s.Repository.GetLedgerById(ctx, ledgerID, userID)
	if err != nil {
		return nil, appErrors.ErrLedgerNotFound.WithError(err)
	}

	if entity.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return entity, nil
}

func (s *Service) ListLedgers(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Ledger, int64, error) {
	if err := s.UserService.Exists(ctx, userID); err != nil {
		return nil, 0, err
	}

	return s.Repository.GetLedgersByUserId(ctx, userID, pagination)
}

func (s *Service) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	if _, err := s.GetLedgerById(ctx, req.LedgerId, req.UserId); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "e obrigatorio")
	}

	if !req.Kind.IsValid() {
		return nil, appErrors.NewValidationError("kind", "tipo de conta invalido")
	}

	now := pkg.SetTimestamps()
	account := &Account{
		Id:        pkg.GenerateULIDObject(),
		LedgerId:  req.LedgerId,
		UserId:    req.UserId,
		Name:      name,
		Kind:      req.Kind,
		Balance:   req.InitialBalance,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.CreateAccount(ctx, account); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return nil, appErrors.NewConflictError("ja existe conta com este nome no livro")
		}
		return nil, appErrors.NewDatabaseError(err)
	}

	return account, nil
}

// GetAccountById is the account resolver: it fails with ACCOUNT_NOT_FOUND
// when the id does not resolve inside the caller's tenant scope.
func (s *Service) GetAccountById(ctx context.Context, accountID, userID ulid.ULID) (*Account, error) {
	account, err := s.Repository.GetAccountById(ctx, accountID, userID)
	if err != nil {
		return nil, appErrors.ErrAccountNotFound.WithError(err)
	}

	if account.UserId != userID {
		return nil, appErrors.ErrResourceNotOwned
	}

	return account, nil
}

func (s *Service) ListAccounts(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Account, int64, error) {
	if _, err := s.GetLedgerById(ctx, ledgerID, userID); err != nil {
		return nil, 0, err
	}

	return s.Repository.GetAccountsByLedgerId(ctx, ledgerID, userID, pagination)
}

// FindOrCreateCategoryAccount resolves a budget category by name, creating
// it when absent. The insert is an upsert against the unique (ledger, name)
// index, so two concurrent callers converge on the same row.
func (s *Service) FindOrCreateCategoryAccount(ctx context.Context, ledgerID, userID ulid.ULID, name string) (*Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidationError("name", "e obrigatorio")
	}

	existing, err := s.Repository.GetAccountByName(ctx, ledgerID, userID, name)
	if err == nil && existing != nil {
		return existing, nil
	}

	now := pkg.SetTimestamps()
	account := &Account{
		Id:        pkg.GenerateULIDObject(),
		LedgerId:  ledgerID,
		UserId:    userID,
		Name:      name,
		Kind:      KindCategory,
		Balance:   0,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repository.UpsertAccount(ctx, account); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	created, err := s.Repository.GetAccountByName(ctx, ledgerID, userID, name)
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return created, nil
}

// PostTransaction atomically records a double-entry movement: the row is
// inserted and both account balances are adjusted, or nothing happens.
func (s *Service) PostTransaction(ctx context.Context, req *PostTransactionRequest) (*Transaction, error) {
	if req.Amount <= 0 {
		return nil, appErrors.NewValidationError("amount", "deve ser maior que zero")
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, appErrors.NewValidationError("description", "e obrigatoria")
	}

	if req.DebitAccountId == req.CreditAccountId {
		return nil, appErrors.NewValidationError("credit_account_id", "contas de debito e credito devem ser diferentes")
	}

	debit, err := s.GetAccountById(ctx, req.DebitAccountId, req.UserId)
	if err != nil {
		return nil, err
	}

	credit, err := s.GetAccountById(ctx, req.CreditAccountId, req.UserId)
	if err != nil {
		return nil, err
	}

	if debit.LedgerId != req.LedgerId || credit.LedgerId != req.LedgerId {
		return nil, appErrors.NewValidationError("ledger_id", "contas nao pertencem ao livro informado")
	}

	transaction := &Transaction{
		Id:              pkg.GenerateULIDObject(),
		LedgerId:        req.LedgerId,
		UserId:          req.UserId,
		Date:            req.Date.Truncate(24 * time.Hour),
		Description:     description,
		DebitAccountId:  req.DebitAccountId,
		CreditAccountId: req.CreditAccountId,
		Amount:          req.Amount,
		CreatedAt:       pkg.SetTimestamps(),
	}

	err = s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repository.CreateTransaction(txCtx, transaction); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := s.Repository.AdjustBalance(txCtx, req.DebitAccountId, req.Amount); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if err := s.Repository.AdjustBalance(txCtx, req.CreditAccountId, -req.Amount); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

func (s *Service) GetTransactionById(ctx context.Context, transactionID, userID ulid.ULID) (*Transaction, error) {
	return s.Repository.GetTransactionById(ctx, transactionID, userID)
}

func (s *Service) ListTransactions(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	if _, err := s.GetLedgerById(ctx, ledgerID, userID); err != nil {
		return nil, 0, err
	}

	return s.Repository.GetTransactionsByLedgerId(ctx, ledgerID, userID, pagination)
}

type CreateLedgerRequest struct {
	UserId   ulid.ULID
	Name     string
	Currency string
}

type CreateAccountRequest struct {
	UserId         ulid.ULID
	LedgerId       ulid.ULID
	Name           string
	Kind           AccountKind
	InitialBalance int64
}

type PostTransactionRequest struct {
	UserId          ulid.ULID
	LedgerId        ulid.ULID
	Date            time.Time
	Description     string
	DebitAccountId  ulid.ULID
	CreditAccountId ulid.ULID
	Amount          int64
}
