package infrastructure

import (
	"context"
	"time"

	"Parcelo/internal/domain/installment"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InstallmentRepository struct {
	DB *gorm.DB
}

type planDB struct {
	Id                    string    `gorm:"type:varchar(26);primaryKey"`
	UserId                string    `gorm:"type:varchar(26);index;not null"`
	LedgerId              string    `gorm:"type:varchar(26);index;not null"`
	OriginalTransactionId *string   `gorm:"type:varchar(26)"`
	PurchaseAmount        int64     `gorm:"type:bigint;not null"`
	PurchaseDate          time.Time `gorm:"type:date;not null"`
	Description           string    `gorm:"type:varchar(255);not null"`
	CreditCardAccountId   string    `gorm:"type:varchar(26);index;not null"`
	NumberOfInstallments  int       `gorm:"not null"`
	InstallmentAmount     int64     `gorm:"type:bigint;not null"`
	Frequency             string    `gorm:"type:varchar(20);not null"`
	StartDate             time.Time `gorm:"type:date;not null"`
	CategoryAccountId     *string   `gorm:"type:varchar(26)"`
	Status                string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	CompletedInstallments int       `gorm:"not null;default:0"`
	Notes                 string    `gorm:"type:text"`
	CreatedAt             time.Time `gorm:"not null"`
	UpdatedAt             time.Time `gorm:"not null"`
}

func (planDB) TableName() string {
	return "installment_plans"
}

type scheduleDB struct {
	Id                string     `gorm:"type:varchar(26);primaryKey"`
	PlanId            string     `gorm:"type:varchar(26);uniqueIndex:idx_schedules_plan_number;not null"`
	UserId            string     `gorm:"type:varchar(26);index;not null"`
	InstallmentNumber int        `gorm:"uniqueIndex:idx_schedules_plan_number;not null"`
	DueDate           time.Time  `gorm:"type:date;not null;index"`
	Amount            int64      `gorm:"type:bigint;not null"`
	Status            string     `gorm:"type:varchar(20);not null;default:'SCHEDULED';index"`
	ProcessedDate     *time.Time `gorm:"type:date"`
	ActualAmount      *int64     `gorm:"type:bigint"`
	TransactionId     *string    `gorm:"type:varchar(26)"`
	Notes             string     `gorm:"type:text"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

func (scheduleDB) TableName() string {
	return "installment_schedules"
}

func toDomainPlan(pdb *planDB) (*installment.Plan, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(pdb.UserId)
	if err != nil {
		return nil, err
	}

	ledgerID, err := pkg.ParseULID(pdb.LedgerId)
	if err != nil {
		return nil, err
	}

	cardID, err := pkg.ParseULID(pdb.CreditCardAccountId)
	if err != nil {
		return nil, err
	}

	originalTxID, err := pkg.ParseULIDPtr(pdb.OriginalTransactionId)
	if err != nil {
		return nil, err
	}

	categoryID, err := pkg.ParseULIDPtr(pdb.CategoryAccountId)
	if err != nil {
		return nil, err
	}

	return &installment.Plan{
		Id:                    id,
		UserId:                userID,
		LedgerId:              ledgerID,
		OriginalTransactionId: originalTxID,
		PurchaseAmount:        pdb.PurchaseAmount,
		PurchaseDate:          pdb.PurchaseDate,
		Description:           pdb.Description,
		CreditCardAccountId:   cardID,
		NumberOfInstallments:  pdb.NumberOfInstallments,
		InstallmentAmount:     pdb.InstallmentAmount,
		Frequency:             installment.Frequency(pdb.Frequency),
		StartDate:             pdb.StartDate,
		CategoryAccountId:     categoryID,
		Status:                installment.PlanStatus(pdb.Status),
		CompletedInstallments: pdb.CompletedInstallments,
		Notes:                 pdb.Notes,
		CreatedAt:             pdb.CreatedAt,
		UpdatedAt:             pdb.UpdatedAt,
	}, nil
}

func toDBPlan(p *installment.Plan) *planDB {
	var originalTxID *string
	if p.OriginalTransactionId != nil {
		s := p.OriginalTransactionId.String()
		originalTxID = &s
	}

	var categoryID *string
	if p.CategoryAccountId != nil {
		s := p.CategoryAccountId.String()
		categoryID = &s
	}

	return &planDB{
		Id:                    p.Id.String(),
		UserId:                p.UserId.String(),
		LedgerId:              p.LedgerId.String(),
		OriginalTransactionId: originalTxID,
		PurchaseAmount:        p.PurchaseAmount,
		PurchaseDate:          p.PurchaseDate,
		Description:           p.Description,
		CreditCardAccountId:   p.CreditCardAccountId.String(),
		NumberOfInstallments:  p.NumberOfInstallments,
		InstallmentAmount:     p.InstallmentAmount,
		Frequency:             string(p.Frequency),
		StartDate:             p.StartDate,
		CategoryAccountId:     categoryID,
		Status:                string(p.Status),
		CompletedInstallments: p.CompletedInstallments,
		Notes:                 p.Notes,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toDomainSchedule(sdb *scheduleDB) (*installment.ScheduleRow, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, err
	}

	planID, err := pkg.ParseULID(sdb.PlanId)
	if err != nil {
		return nil, err
	}

	userID, err := pkg.ParseULID(sdb.UserId)
	if err != nil {
		return nil, err
	}

	transactionID, err := pkg.ParseULIDPtr(sdb.TransactionId)
	if err != nil {
		return nil, err
	}

	return &installment.ScheduleRow{
		Id:                id,
		PlanId:            planID,
		UserId:            userID,
		InstallmentNumber: sdb.InstallmentNumber,
		DueDate:           sdb.DueDate,
		Amount:            sdb.Amount,
		Status:            installment.ScheduleStatus(sdb.Status),
		ProcessedDate:     sdb.ProcessedDate,
		ActualAmount:      sdb.ActualAmount,
		TransactionId:     transactionID,
		Notes:             sdb.Notes,
		CreatedAt:         sdb.CreatedAt,
		UpdatedAt:         sdb.UpdatedAt,
	}, nil
}

func toDBSchedule(s *installment.ScheduleRow) *scheduleDB {
	var transactionID *string
	if s.TransactionId != nil {
		str := s.TransactionId.String()
		transactionID = &str
	}

	return &scheduleDB{
		Id:                s.Id.String(),
		PlanId:            s.PlanId.String(),
		UserId:            s.UserId.String(),
		InstallmentNumber: s.InstallmentNumber,
		DueDate:           s.DueDate,
		Amount:            s.Amount,
		Status:            string(s.Status),
		ProcessedDate:     s.ProcessedDate,
		ActualAmount:      s.ActualAmount,
		TransactionId:     transactionID,
		Notes:             s.Notes,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (r *InstallmentRepository) CreatePlanWithSchedule(ctx context.Context, plan *installment.Plan, rows []*installment.ScheduleRow) error {
	db := dbFrom(ctx, r.DB).WithContext(ctx)

	if err := db.Table("installment_plans").Create(toDBPlan(plan)).Error; err != nil {
		return err
	}

	batch := make([]*scheduleDB, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, toDBSchedule(row))
	}
	return db.Table("installment_schedules").Create(batch).Error
}

func (r *InstallmentRepository) GetPlanById(ctx context.Context, planID, userID ulid.ULID) (*installment.Plan, error) {
	var pdb planDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ? AND user_id = ?", planID.String(), userID.String()).First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPlan(&pdb)
}

func (r *InstallmentRepository) GetPlanForUpdate(ctx context.Context, planID, userID ulid.ULID) (*installment.Plan, error) {
	var pdb planDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", planID.String(), userID.String()).
		First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPlan(&pdb)
}

func (r *InstallmentRepository) GetPlansByLedgerId(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*installment.Plan, int64, error) {
	baseQuery := dbFrom(ctx, r.DB).WithContext(ctx).Table("installment_plans").Where("ledger_id = ? AND user_id = ?", ledgerID.String(), userID.String())
	return pkg.Paginate(baseQuery, pagination, "created_at DESC", toDomainPlan)
}

func (r *InstallmentRepository) UpdatePlan(ctx context.Context, plan *installment.Plan) error {
	pdb := toDBPlan(plan)
	return dbFrom(ctx, r.DB).WithContext(ctx).Model(&planDB{}).
		Where("id = ? AND user_id = ?", pdb.Id, pdb.UserId).
		Select("OriginalTransactionId", "CategoryAccountId", "Status", "CompletedInstallments", "Notes", "UpdatedAt").
		Updates(pdb).Error
}

func (r *InstallmentRepository) DeletePlan(ctx context.Context, planID, userID ulid.ULID) error {
	db := dbFrom(ctx, r.DB).WithContext(ctx)

	if err := db.Where("plan_id = ? AND user_id = ?", planID.String(), userID.String()).Delete(&scheduleDB{}).Error; err != nil {
		return err
	}
	return db.Where("id = ? AND user_id = ?", planID.String(), userID.String()).Delete(&planDB{}).Error
}

func (r *InstallmentRepository) CountProcessed(ctx context.Context, planID ulid.ULID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.DB).WithContext(ctx).Model(&scheduleDB{}).
		Where("plan_id = ? AND status = ?", planID.String(), string(installment.ScheduleProcessed)).
		Count(&count).Error
	return count, err
}

func (r *InstallmentRepository) GetScheduleById(ctx context.Context, scheduleID, userID ulid.ULID) (*installment.ScheduleRow, error) {
	var sdb scheduleDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).Where("id = ? AND user_id = ?", scheduleID.String(), userID.String()).First(&sdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainSchedule(&sdb)
}

func (r *InstallmentRepository) GetScheduleByPlanId(ctx context.Context, planID, userID ulid.ULID) ([]*installment.ScheduleRow, error) {
	var rows []scheduleDB
	err := dbFrom(ctx, r.DB).WithContext(ctx).
		Where("plan_id = ? AND user_id = ?", planID.String(), userID.String()).
		Order("installment_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*installment.ScheduleRow, 0, len(rows))
	for i := range rows {
		row, err := toDomainSchedule(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *InstallmentRepository) ListSchedules(ctx context.Context, userID ulid.ULID, filter *installment.ScheduleFilter, pagination *pkg.PaginationParams) ([]*installment.ScheduleRow, int64, error) {
	baseQuery := dbFrom(ctx, r.DB).WithContext(ctx).Table("installment_schedules").
		Where("user_id = ?", userID.String()).
		Where("plan_id IN (?)", dbFrom(ctx, r.DB).Table("installment_plans").Select("id").Where("ledger_id = ?", filter.LedgerId.String()))

	if filter.PlanId != nil {
		baseQuery = baseQuery.Where("plan_id = ?", filter.PlanId.String())
	}
	if filter.Status != nil {
		baseQuery = baseQuery.Where("status = ?", string(*filter.Status))
	}
	if filter.DueWithinDays != nil {
		limit := time.Now().UTC().AddDate(0, 0, *filter.DueWithinDays)
		baseQuery = baseQuery.Where("due_date <= ?", limit)
	}

	return pkg.Paginate(baseQuery, pagination, "due_date ASC, installment_number ASC", toDomainSchedule)
}

// MarkProcessed only flips rows still SCHEDULED; a zero row count means
// someone else processed the installment first.
func (r *InstallmentRepository) MarkProcessed(ctx context.Context, scheduleID ulid.ULID, processedDate time.Time, actualAmount int64, transactionID ulid.ULID, notes string, updatedAt time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":         string(installment.ScheduleProcessed),
		"processed_date": processedDate,
		"actual_amount":  actualAmount,
		"transaction_id": transactionID.String(),
		"updated_at":     updatedAt,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	result := dbFrom(ctx, r.DB).WithContext(ctx).Model(&scheduleDB{}).
		Where("id = ? AND status = ?", scheduleID.String(), string(installment.ScheduleScheduled)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
