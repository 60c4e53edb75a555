package installment

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Plan spreads one credit-card purchase over N dated payments. All money
// fields are integer minor currency units (centavos).
type Plan struct {
	Id                    ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId                ulid.ULID  `gorm:"type:varchar(26);index:idx_plans_user_id;not null" json:"userId"`
	LedgerId              ulid.ULID  `gorm:"type:varchar(26);index:idx_plans_ledger_id;not null" json:"ledgerId"`
	OriginalTransactionId *ulid.ULID `gorm:"type:varchar(26)" json:"originalTransactionId,omitempty"`
	PurchaseAmount        int64      `gorm:"type:bigint;not null" json:"purchaseAmount"`
	PurchaseDate          time.Time  `gorm:"type:date;not null" json:"purchaseDate"`
	Description           string     `gorm:"type:varchar(255);not null" json:"description"`
	CreditCardAccountId   ulid.ULID  `gorm:"type:varchar(26);index:idx_plans_card_account;not null" json:"creditCardAccountId"`
	NumberOfInstallments  int        `gorm:"not null;check:number_of_installments >= 2" json:"numberOfInstallments"`
	InstallmentAmount     int64      `gorm:"type:bigint;not null" json:"installmentAmount"`
	Frequency             Frequency  `gorm:"type:varchar(20);not null" json:"frequency"`
	StartDate             time.Time  `gorm:"type:date;not null" json:"startDate"`
	CategoryAccountId     *ulid.ULID `gorm:"type:varchar(26)" json:"categoryAccountId,omitempty"`
	Status                PlanStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_plans_status" json:"status"`
	CompletedInstallments int        `gorm:"not null;default:0" json:"completedInstallments"`
	Notes                 string     `gorm:"type:text" json:"notes"`
	CreatedAt             time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Plan) TableName() string {
	return "installment_plans"
}

type PlanStatus string

const (
	PlanActive    PlanStatus = "ACTIVE"
	PlanCompleted PlanStatus = "COMPLETED"
	// PlanCancelled is part of the status vocabulary but no transition
	// produces it today; cancelling a plan is a hard delete while no
	// installment was processed.
	PlanCancelled PlanStatus = "CANCELLED"
)

func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanCancelled:
		return true
	}
	return false
}

type Frequency string

const (
	FrequencyWeekly   Frequency = "WEEKLY"
	FrequencyBiweekly Frequency = "BIWEEKLY"
	FrequencyMonthly  Frequency = "MONTHLY"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}
