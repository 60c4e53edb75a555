package ledger

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Transaction moves Amount minor units between two accounts of the same
// ledger: the debit account balance goes up, the credit account balance goes
// down.
type Transaction struct {
	Id              ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	LedgerId        ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_ledger_id;not null" json:"ledgerId"`
	UserId          ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_user_id;not null" json:"userId"`
	Date            time.Time `gorm:"type:date;not null;index:idx_transactions_date" json:"date"`
	Description     string    `gorm:"type:varchar(255);not null" json:"description"`
	DebitAccountId  ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_debit;not null" json:"debitAccountId"`
	CreditAccountId ulid.ULID `gorm:"type:varchar(26);index:idx_transactions_credit;not null" json:"creditAccountId"`
	Amount          int64     `gorm:"type:bigint;not null" json:"amount"`
	CreatedAt       time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
