package infrastructure

import (
	"context"
	"time"

	"Parcelo/internal/domain/ledger"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct {
	DB *gorm.DB
}

type ledgerDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	UserId    string    `gorm:"type:varchar(26);index;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'BRL'"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ledgerDB) TableName() string {
	return "ledgers"
}

type accountDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey"`
	LedgerId  string    `gorm:"type:varchar(26);uniqueIndex:idx_accounts_ledger_name;not null"`
	UserId    string    `gorm:"type:varchar(26);index;not null"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex:idx_accounts_ledger_name;not null"`
	Kind      string    `gorm:"type:varchar(20);not null"`
	Balance   int64     `gorm:"type:bigint;not null;default:0"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (accountDB) TableName() string {
	return "accounts"
}

type transactionDB struct {
	Id              string    `gorm:"type:varchar(26);primaryKey"`
	LedgerId        string    `gorm:"type:varchar(26);index;not null"`
	UserId          string    `gorm:"type:varchar(26);index;not null"`
	Date            time.Time `gorm:"type:date;not null"`
	Description     string    `gorm:"type:varchar(255);not null"`
	DebitAccountId  string    `gorm:"type:varchar(26);index;not null"`
	CreditAccountId string    `gorm:"type:varchar(26);index;not null"`
	Amount          int64     `gorm:"type:bigint;not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (transactionDB) TableName() string {
	return "transactions"
}

func toDomainLedger(ldb *ledgerDB) (*ledger.Ledger, error) {
	id, err := pkg.ParseULID(ldb.Id)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(ldb.UserId)
	if err != nil {
		return nil, err
	}

	return &ledger.Ledger{
		Id:        id,
		UserId:    userID,
		Name:      ldb.Name,
		Currency:  ldb.Currency,
		CreatedAt: ldb.CreatedAt,
		UpdatedAt: ldb.UpdatedAt,
	}, nil
}

func toDBLedger(l *ledger.Ledger) *ledgerDB {
	return &ledgerDB{
		Id:        l.Id.String(),
		UserId:    l.UserId.String(),
		Name:      l.Name,
		Currency:  l.Currency,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toDomainAccount(adb *accountDB) (*ledger.Account, error) {
	id, err := pkg.ParseULID(adb.Id)
	if err != nil {
		return nil, err
	}

	ledgerID, err := pkg.ParseULID(adb.LedgerId)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(adb.UserId)
	if err != nil {
		return nil, err
	}

	return &ledger.Account{
		Id:        id,
		LedgerId:  ledgerID,
		UserId:    userID,
		Name:      adb.Name,
		Kind:      ledger.AccountKind(adb.Kind),
		Balance:   adb.Balance,
		IsActive:  adb.IsActive,
		CreatedAt: adb.CreatedAt,
		UpdatedAt: adb.UpdatedAt,
	}, nil
}

func toDBAccount(a *ledger.Account) *accountDB {
	return &accountDB{
		Id:        a.Id.String(),
		LedgerId:  a.LedgerId.String(),
		UserId:    a.UserId.String(),
		Name:      a.Name,
		Kind:      string(a.Kind),
		Balance:   a.Balance,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toDomainTransaction(tdb *transactionDB) (*ledger.Transaction, error) {
	id, err := pkg.ParseULID(tdb.Id)
	if err != nil {
		return nil, err
	}

	ledgerID, err := pkg.ParseULID(tdb.LedgerId)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(tdb.UserId)
	if err != nil {
		return nil, err
	}

	debitID, err := pkg.ParseULID(tdb.DebitAccountId)
	if err != nil {
		return nil, err
	}

	creditID, err := pkg.ParseULID(tdb.CreditAccountId)
	if err != nil {
		return nil, err
	}

	return &ledger.Transaction{
		Id:              id,
		LedgerId:        ledgerID,
		UserId:          userID,
		Date:            tdb.Date,
		Description:     tdb.Description,
		DebitAccountId:  debitID,
		CreditAccountId: creditID,
		Amount:          tdb.Amount,
		CreatedAt:       tdb.CreatedAt,
	}, nil
}

func toDBTransaction(t *ledger.Transaction) *transactionDB {
	return &transactionDB{
		Id:              t.Id.String(),
		LedgerId:        t.LedgerId.String(),
		UserId:          t.UserId.String(),
		Date:            t.Date,
		Description:     t.Description,
		DebitAccountId:  t.DebitAccountId.String(),
		CreditAccountId: t.CreditAccountId.String(),
		Amount:          t.Amount,
		CreatedAt:       t.CreatedAt,
	}
}

func (r *LedgerRepository) CreateLedger(ctx context.Context, entity *ledger.Ledger) error {
	ldb := toDBLedger(entity)
	return dbFrom(ctx, r.DB).WithContext(ctx).Table("ledgers").Create(ldb).Error
}

func (r *LedgerRepository) GetLedgerById(ctx context.Context, ledgerID, userID ulid.ULID) (*ledger.Ledger, error) {
	var ldb ledgerDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ? AND user_id = ?", ledgerID.String(), userID.String()).First(&ldb).Error
	if err != nil {
		return nil, err
	}
	return toDomainLedger(&ldb)
}

func (r *LedgerRepository) GetLedgersByUserId(ctx context.Context, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Ledger, int64, error) {
	baseQuery := dbFrom(ctx, r.DB).WithContext(ctx).Table("ledgers").Where("user_id = ?", userID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainLedger)
}

func (r *LedgerRepository) CreateAccount(ctx context.Context, account *ledger.Account) error {
	adb := toDBAccount(account)
	return dbFrom(ctx, r.DB).WithContext(ctx).Table("accounts").Create(adb).Error
}

// UpsertAccount inserts the account and silently keeps the existing row when
// the (ledger, name) pair is already taken.
func (r *LedgerRepository) UpsertAccount(ctx context.Context, account *ledger.Account) error {
	adb := toDBAccount(account)
	return dbFrom(ctx, r.DB).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ledger_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Table("accounts").Create(adb).Error
}

func (r *LedgerRepository) GetAccountById(ctx context.Context, accountID, userID ulid.ULID) (*ledger.Account, error) {
	var adb accountDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ? AND user_id = ?", accountID.String(), userID.String()).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *LedgerRepository) GetAccountByName(ctx context.Context, ledgerID, userID ulid.ULID, name string) (*ledger.Account, error) {
	var adb accountDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("ledger_id = ? AND user_id = ? AND name = ?", ledgerID.String(), userID.String(), name).First(&adb).Error
	if err != nil {
		return nil, err
	}
	return toDomainAccount(&adb)
}

func (r *LedgerRepository) GetAccountsByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Account, int64, error) {
	baseQuery := dbFrom(ctx, r.DB).WithContext(ctx).Table("accounts").Where("ledger_id = ? AND user_id = ?", ledgerID.String(), userID.String())
	return pkg.Paginate(baseQuery, pagination, "name ASC", toDomainAccount)
}

func (r *LedgerRepository) AdjustBalance(ctx context.Context, accountID ulid.ULID, delta int64) error {
	return dbFrom(ctx, r.DB).WithContext(ctx).Model(&accountDB{}).Where("id = ?", accountID.String()).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta)).
		UpdateColumn("updated_at", time.Now()).Error
}

func (r *LedgerRepository) CreateTransaction(ctx context.Context, transaction *ledger.Transaction) error {
	tdb := toDBTransaction(transaction)
	return dbFrom(ctx, r.DB).WithContext(ctx).Table("transactions").Create(tdb).Error
}

func (r *LedgerRepository) GetTransactionById(ctx context.Context, transactionID, userID ulid.ULID) (*ledger.Transaction, error) {
	var tdb transactionDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ? AND user_id = ?", transactionID.String(), userID.String()).First(&tdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(&tdb)
}

func (r *LedgerRepository) GetTransactionsByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*ledger.Transaction, int64, error) {
	baseQuery := dbFrom(ctx, r.DB).WithContext(ctx).Table("transactions").Where("ledger_id = ? AND user_id = ?", ledgerID.String(), userID.String())
	return pkg.Paginate(baseQuery, pagination, "date DESC, created_at DESC", toDomainTransaction)
}
