package installment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Parcelo/internal/domain/ledger"
	"Parcelo/internal/domain/shared"
	"Parcelo/internal/domain/user"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository  Repository
	Ledger      LedgerService
	UserService *user.Service
	Tx          shared.TxManager
}

func NewService(repo Repository, ledgerSvc LedgerService, userSvc *user.Service, tx shared.TxManager) *Service {
	return &Service{
		Repository:  repo,
		Ledger:      ledgerSvc,
		UserService: userSvc,
		Tx:          tx,
	}
}

func (s *Service) CreatePlan(ctx context.Context, req *CreatePlanRequest) (*Plan, []*ScheduleRow, error) {
	if err := s.UserService.Exists(ctx, req.UserId); err != nil {
		return nil, nil, err
	}

	if _, err := s.Ledger.GetLedgerById(ctx, req.LedgerId, req.UserId); err != nil {
		return nil, nil, err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, nil, appErrors.NewValidationError("description", "e obrigatoria")
	}

	if req.PurchaseDate.IsZero() {
		return nil, nil, appErrors.NewValidationError("purchase_date", "e obrigatoria")
	}

	card, err := s.Ledger.GetAccountById(ctx, req.CreditCardAccountId, req.UserId)
	if err != nil {
		return nil, nil, err
	}
	if card.Kind != ledger.KindLiability {
		return nil, nil, appErrors.NewValidationError("credit_card_account_id", "conta do cartao deve ser do tipo LIABILITY")
	}
	if card.LedgerId != req.LedgerId {
		return nil, nil, appErrors.NewValidationError("credit_card_account_id", "conta nao pertence ao livro informado")
	}

	if req.CategoryAccountId != nil {
		category, err := s.Ledger.GetAccountById(ctx, *req.CategoryAccountId, req.UserId)
		if err != nil {
			return nil, nil, err
		}
		if category.Kind != ledger.KindCategory {
			return nil, nil, appErrors.NewValidationError("category_account_id", "conta deve ser do tipo CATEGORY")
		}
		if category.LedgerId != req.LedgerId {
			return nil, nil, appErrors.NewValidationError("category_account_id", "categoria nao pertence ao livro informado")
		}
	}

	if req.OriginalTransactionId != nil {
		if _, err := s.Ledger.GetTransactionById(ctx, *req.OriginalTransactionId, req.UserId); err != nil {
			return nil, nil, err
		}
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = FrequencyMonthly
	}

	entries, err := ComputeSchedule(req.PurchaseAmount, req.NumberOfInstallments, frequency, req.StartDate)
	if err != nil {
		return nil, nil, err
	}

	now := pkg.SetTimestamps()
	plan := &Plan{
		Id:                    pkg.GenerateULIDObject(),
		UserId:                req.UserId,
		LedgerId:              req.LedgerId,
		OriginalTransactionId: req.OriginalTransactionId,
		PurchaseAmount:        req.PurchaseAmount,
		PurchaseDate:          DateOnly(req.PurchaseDate),
		Description:           description,
		CreditCardAccountId:   req.CreditCardAccountId,
		NumberOfInstallments:  req.NumberOfInstallments,
		InstallmentAmount:     entries[0].Amount,
		Frequency:             frequency,
		StartDate:             DateOnly(req.StartDate),
		CategoryAccountId:     req.CategoryAccountId,
		Status:                PlanActive,
		CompletedInstallments: 0,
		Notes:                 strings.TrimSpace(req.Notes),
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	rows := make([]*ScheduleRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, &ScheduleRow{
			Id:                pkg.GenerateULIDObject(),
			PlanId:            plan.Id,
			UserId:            req.UserId,
			InstallmentNumber: entry.Number,
			DueDate:           entry.DueDate,
			Amount:            entry.Amount,
			Status:            ScheduleScheduled,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	err = s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.Repository.CreatePlanWithSchedule(txCtx, plan, rows); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return plan, rows, nil
}

func (s *Service) GetPlanById(ctx context.Context, planID, userID ulid.ULID) (*Plan, []*ScheduleRow, error) {
	plan, err := s.Repository.GetPlanById(ctx, planID, userID)
	if err != nil {
		return nil, nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	if plan.UserId != userID {
		return nil, nil, appErrors.ErrResourceNotOwned
	}

	rows, err := s.Repository.GetScheduleByPlanId(ctx, planID, userID)
	if err != nil {
		return nil, nil, appErrors.NewDatabaseError(err)
	}

	return plan, rows, nil
}

func (s *Service) ListPlans(ctx context.Context, ledgerID, userID ulid.ULID, pagination *pkg.PaginationParams) ([]*Plan, int64, error) {
	if _, err := s.Ledger.GetLedgerById(ctx, ledgerID, userID); err != nil {
		return nil, 0, err
	}

	return s.Repository.GetPlansByLedgerId(ctx, ledgerID, userID, pagination)
}

// UpdatePlan edits the mutable fields (notes and category); everything else
// is fixed at creation. Allowed in any status.
func (s *Service) UpdatePlan(ctx context.Context, planID, userID ulid.ULID, req *UpdatePlanRequest) (*Plan, error) {
	plan, _, err := s.GetPlanById(ctx, planID, userID)
	if err != nil {
		return nil, err
	}

	if req.Notes != nil {
		plan.Notes = strings.TrimSpace(*req.Notes)
	}

	if req.CategoryAccountId != nil {
		category, err := s.Ledger.GetAccountById(ctx, *req.CategoryAccountId, userID)
		if err != nil {
			return nil, err
		}
		if category.Kind != ledger.KindCategory {
			return nil, appErrors.NewValidationError("category_account_id", "conta deve ser do tipo CATEGORY")
		}
		if category.LedgerId != plan.LedgerId {
			return nil, appErrors.NewValidationError("category_account_id", "categoria nao pertence ao livro do parcelamento")
		}
		plan.CategoryAccountId = req.CategoryAccountId
	}

	plan.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.UpdatePlan(ctx, plan); err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	return plan, nil
}

func (s *Service) DeletePlan(ctx context.Context, planID, userID ulid.ULID) error {
	plan, _, err := s.GetPlanById(ctx, planID, userID)
	if err != nil {
		return err
	}

	// the processed-count guard runs under the plan's row lock; processing
	// takes the same lock, so the two serialize
	return s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.Repository.GetPlanForUpdate(txCtx, plan.Id, userID)
		if err != nil {
			return appErrors.ErrPlanNotFound.WithError(err)
		}

		processed, err := s.Repository.CountProcessed(txCtx, locked.Id)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if processed > 0 {
			return appErrors.NewConflictError("nao e possivel excluir parcelamento com parcelas processadas")
		}

		if err := s.Repository.DeletePlan(txCtx, locked.Id, userID); err != nil {
			return appErrors.NewDatabaseError(err)
		}
		return nil
	})
}

// ProcessInstallment posts one installment's category reallocation and
// advances the plan. The whole write path runs in a single transaction:
// payment category upsert, ledger posting, row flip and plan counters either
// all land or none do.
func (s *Service) ProcessInstallment(ctx context.Context, scheduleID, userID ulid.ULID, req *ProcessInstallmentRequest) (*ProcessInstallmentResult, error) {
	row, err := s.Repository.GetScheduleById(ctx, scheduleID, userID)
	if err != nil {
		return nil, appErrors.ErrScheduleNotFound.WithError(err)
	}

	if row.Status != ScheduleScheduled {
		return nil, appErrors.NewConflictError("parcela ja processada ou ignorada")
	}

	plan, err := s.Repository.GetPlanById(ctx, row.PlanId, userID)
	if err != nil {
		return nil, appErrors.ErrPlanNotFound.WithError(err)
	}

	if plan.Status != PlanActive {
		return nil, appErrors.NewConflictError("parcelamento nao esta ativo")
	}

	if plan.CategoryAccountId == nil {
		return nil, appErrors.NewValidationError("category_account_id", "parcelamento nao possui categoria definida")
	}

	amount := row.Amount
	if req.ActualAmount != nil {
		amount = *req.ActualAmount
	}
	if amount <= 0 {
		return nil, appErrors.NewValidationError("actual_amount", "deve ser maior que zero")
	}

	processedDate := DateOnly(time.Now())
	if req.ProcessedDate != nil {
		processedDate = DateOnly(*req.ProcessedDate)
	}

	card, err := s.Ledger.GetAccountById(ctx, plan.CreditCardAccountId, userID)
	if err != nil {
		return nil, err
	}

	result := &ProcessInstallmentResult{}

	err = s.Tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		locked, err := s.Repository.GetPlanForUpdate(txCtx, plan.Id, userID)
		if err != nil {
			return appErrors.ErrPlanNotFound.WithError(err)
		}
		if locked.Status != PlanActive {
			return appErrors.NewConflictError("parcelamento nao esta ativo")
		}

		paymentCategory, err := s.Ledger.FindOrCreateCategoryAccount(txCtx, locked.LedgerId, userID, "CC Payment: "+card.Name)
		if err != nil {
			return err
		}

		posted, err := s.Ledger.PostTransaction(txCtx, &ledger.PostTransactionRequest{
			UserId:          userID,
			LedgerId:        locked.LedgerId,
			Date:            processedDate,
			Description:     fmt.Sprintf("Installment %d/%d: %s", row.InstallmentNumber, locked.NumberOfInstallments, locked.Description),
			DebitAccountId:  paymentCategory.Id,
			CreditAccountId: *locked.CategoryAccountId,
			Amount:          amount,
		})
		if err != nil {
			return err
		}

		now := pkg.SetTimestamps()

			marked, err := s.Repository.MarkProcessed(txCtx, row.Id, processedDate, amount, posted.Id, strings.TrimSpace(req.Notes), now)
		if err != nil {
			return appErrors.NewDatabaseError(err)
		}
		if !marked {
			return appErrors.NewConflictError("parcela ja processada ou ignorada")
		}

		locked.CompletedInstallments++
		if locked.CompletedInstallments >= locked.NumberOfInstallments {
			locked.Status = PlanCompleted
		}
		locked.UpdatedAt = now

		if err := s.Repository.UpdatePlan(txCtx, locked); err != nil {
			return appErrors.NewDatabaseError(err)
		}

		row.Status = ScheduleProcessed
		row.ProcessedDate = &processedDate
		row.ActualAmount = &amount
		row.TransactionId = &posted.Id
		if notes := strings.TrimSpace(req.Notes); notes != "" {
			row.Notes = notes
		}
		row.UpdatedAt = locked.UpdatedAt

		result.Plan = locked
		result.Schedule = row
		result.Transaction = posted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) ListSchedules(ctx context.Context, userID ulid.ULID, filter *ScheduleFilter, pagination *pkg.PaginationParams) ([]*ScheduleRow, int64, error) {
	if filter == nil || pkg.IsEmptyULID(filter.LedgerId) {
		return nil, 0, appErrors.NewValidationError("ledger_id", "e obrigatorio")
	}

	if _, err := s.Ledger.GetLedgerById(ctx, filter.LedgerId, userID); err != nil {
		return nil, 0, err
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, 0, appErrors.NewValidationError("status", "status invalido")
	}

	if filter.DueWithinDays != nil && *filter.DueWithinDays < 0 {
		return nil, 0, appErrors.NewValidationError("due_within_days", "deve ser maior ou igual a zero")
	}

	return s.Repository.ListSchedules(ctx, userID, filter, pagination)
}

type CreatePlanRequest struct {
	UserId                ulid.ULID
	LedgerId              ulid.ULID
	CreditCardAccountId   ulid.ULID
	PurchaseAmount        int64
	PurchaseDate          time.Time
	Description           string
	NumberOfInstallments  int
	StartDate             time.Time
	Frequency             Frequency
	CategoryAccountId     *ulid.ULID
	OriginalTransactionId *ulid.ULID
	Notes                 string
}

type UpdatePlanRequest struct {
	Notes             *string
	CategoryAccountId *ulid.ULID
}

type ProcessInstallmentRequest struct {
	ActualAmount  *int64
	ProcessedDate *time.Time
	Notes         string
}

type ProcessInstallmentResult struct {
	Plan        *Plan               `json:"plan"`
	Schedule    *ScheduleRow        `json:"schedule"`
	Transaction *ledger.Transaction `json:"transaction"`
}
