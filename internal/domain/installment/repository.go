package installment

import (
	"context"
	"time"

	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type ScheduleFilter struct {
	LedgerId      ulid.ULID
	PlanId        *ulid.ULID
	Status        *ScheduleStatus
	DueWithinDays *int
}

type Repository interface {
	CreatePlanWithSchedule(ctx context.Context, plan *Plan, rows []*ScheduleRow) error
	GetPlanById(ctx context.Context, planID, userID ulid.ULID) (*Plan, error)
	// GetPlanForUpdate takes a row-level lock; only meaningful inside a
	// transaction.
	GetPlanForUpdate(ctx context.Context, planID, userID ulid.ULID) (*Plan, error)
	GetPlansByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Plan, int64, error)
	UpdatePlan(ctx context.Context, plan *Plan) error
	DeletePlan(ctx context.Context, planID, userID ulid.ULID) error
	CountProcessed(ctx context.Context, planID ulid.ULID) (int64, error)

	GetScheduleById(ctx context.Context, scheduleID, userID ulid.ULID) (*ScheduleRow, error)
	GetScheduleByPlanId(ctx context.Context, planID, userID ulid.ULID) ([]*ScheduleRow, error)
	ListSchedules(ctx context.Context, userID ulid.ULID, filter *ScheduleFilter, pagination *pkg.PaginationParams) ([]*ScheduleRow, int64, error)
	// MarkProcessed flips a SCHEDULED row to PROCESSED. Returns false when
	// the row was no longer SCHEDULED, which closes the double-processing
	// race.
	MarkProcessed(ctx context.Context, scheduleID ulid.ULID, processedDate time.Time, actualAmount int64, transactionID ulid.ULID, notes string, updatedAt time.Time) (bool, error)
}
