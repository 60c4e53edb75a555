package ledger

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Account is one side of the double-entry book. Balance is kept in integer
// minor currency units (centavos); it is signed and adjusted only by posted
// transactions.
type Account struct {
	Id        ulid.ULID   `gorm:"type:varchar(26);primaryKey" json:"id"`
	LedgerId  ulid.ULID   `gorm:"type:varchar(26);uniqueIndex:idx_accounts_ledger_name;not null" json:"ledgerId"`
	UserId    ulid.ULID   `gorm:"type:varchar(26);index:idx_accounts_user_id;not null" json:"userId"`
	Name      string      `gorm:"type:varchar(100);uniqueIndex:idx_accounts_ledger_name;not null" json:"name"`
	Kind      AccountKind `gorm:"type:varchar(20);not null;index:idx_accounts_kind" json:"kind"`
	Balance   int64       `gorm:"type:bigint;not null;default:0" json:"balance"`
	IsActive  bool        `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time   `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Account) TableName() string {
	return "accounts"
}

type AccountKind string

const (
	KindAsset     AccountKind = "ASSET"
	KindLiability AccountKind = "LIABILITY"
	KindCategory  AccountKind = "CATEGORY"
	KindIncome    AccountKind = "INCOME"
	KindEquity    AccountKind = "EQUITY"
)

func (k AccountKind) IsValid() bool {
	switch k {
	case KindAsset, KindLiability, KindCategory, KindIncome, KindEquity:
		return true
	}
	return false
}
