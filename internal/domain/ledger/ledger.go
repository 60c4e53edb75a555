package ledger

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Ledger struct {
	Id        ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId    ulid.ULID `gorm:"type:varchar(26);index:idx_ledgers_user_id;not null" json:"userId"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Currency  string    `gorm:"type:varchar(3);not null;default:'BRL'" json:"currency"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Ledger) TableName() string {
	return "ledgers"
}
