package installment

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// ScheduleRow is one of the N dated payment obligations of a Plan. Rows are
// all materialized at plan creation and each one is processed at most once.
type ScheduleRow struct {
	Id                ulid.ULID      `gorm:"type:varchar(26);primaryKey" json:"id"`
	PlanId            ulid.ULID      `gorm:"type:varchar(26);uniqueIndex:idx_schedules_plan_number;not null" json:"planId"`
	UserId            ulid.ULID      `gorm:"type:varchar(26);index:idx_schedules_user_id;not null" json:"userId"`
	InstallmentNumber int            `gorm:"uniqueIndex:idx_schedules_plan_number;not null;check:installment_number >= 1" json:"installmentNumber"`
	DueDate           time.Time      `gorm:"type:date;not null;index:idx_schedules_due_date" json:"dueDate"`
	Amount            int64          `gorm:"type:bigint;not null" json:"amount"`
	Status            ScheduleStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index:idx_schedules_status" json:"status"`
	ProcessedDate     *time.Time     `gorm:"type:date" json:"processedDate,omitempty"`
	ActualAmount      *int64         `gorm:"type:bigint" json:"actualAmount,omitempty"`
	TransactionId     *ulid.ULID     `gorm:"type:varchar(26)" json:"transactionId,omitempty"`
	Notes             string         `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (ScheduleRow) TableName() string {
	return "installment_schedules"
}

type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "SCHEDULED"
	ScheduleProcessed ScheduleStatus = "PROCESSED"
	ScheduleSkipped   ScheduleStatus = "SKIPPED"
)

func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleScheduled, ScheduleProcessed, ScheduleSkipped:
		return true
	}
	return false
}
