package routes

import (
	"net/http"
	"time"

	"Parcelo/internal/contracts"
	"Parcelo/internal/domain/installment"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateInstallmentPlan(c *gin.Context) {
	var body contracts.InstallmentPlanCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ledgerID, err := pkg.ParseULID(body.LedgerId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("ledger_id", "formato inválido"))
		return
	}

	cardID, err := pkg.ParseULID(body.CreditCardAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("credit_card_account_id", "formato inválido"))
		return
	}

	categoryID, err := pkg.ParseULIDPtr(body.CategoryAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_account_id", "formato inválido"))
		return
	}

	originalTxID, err := pkg.ParseULIDPtr(body.OriginalTransactionId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("original_transaction_id", "formato inválido"))
		return
	}

	purchaseDate, err := time.Parse("2006-01-02", body.PurchaseDate)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("purchase_date", "formato inválido"))
		return
	}

	startDate, err := time.Parse("2006-01-02", body.StartDate)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("start_date", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	plan, schedule, err := h.InstallmentService.CreatePlan(ctx, &installment.CreatePlanRequest{
		UserId:                userID,
		LedgerId:              ledgerID,
		CreditCardAccountId:   cardID,
		PurchaseAmount:        body.PurchaseAmount,
		PurchaseDate:          purchaseDate,
		Description:           body.Description,
		NumberOfInstallments:  body.NumberOfInstallments,
		StartDate:             startDate,
		Frequency:             installment.Frequency(body.Frequency),
		CategoryAccountId:     categoryID,
		OriginalTransactionId: originalTxID,
		Notes:                 body.Notes,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.InstallmentPlanCreateResponse{
		Message:  "Parcelamento criado com sucesso",
		Plan:     plan,
		Schedule: schedule,
	})
}

func (h *Handler) GetInstallmentPlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	plan, schedule, err := h.InstallmentService.GetPlanById(ctx, planID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentPlanSingleResponse{
		Plan:     plan,
		Schedule: schedule,
	})
}

func (h *Handler) ListInstallmentPlans(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ledgerID, err := pkg.ParseULID(c.Query("ledger_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("ledger_id", "formato inválido"))
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	plans, total, err := h.InstallmentService.ListPlans(ctx, ledgerID, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(plans, pagination.Page, pagination.Limit, total))
}

func (h *Handler) UpdateInstallmentPlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var body contracts.InstallmentPlanUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	categoryID, err := pkg.ParseULIDPtr(body.CategoryAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("category_account_id", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	plan, err := h.InstallmentService.UpdatePlan(ctx, planID, userID, &installment.UpdatePlanRequest{
		Notes:             body.Notes,
		CategoryAccountId: categoryID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.InstallmentPlanSingleResponse{Plan: plan})
}

func (h *Handler) DeleteInstallmentPlan(c *gin.Context) {
	planID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.InstallmentService.DeletePlan(ctx, planID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Parcelamento excluído com sucesso"})
}

func (h *Handler) ProcessInstallment(c *gin.Context) {
	scheduleID, err := pkg.ParseULID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// body is optional, processing with the scheduled amount and today's date
	var body contracts.ProcessInstallmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.respondError(c, appErrors.ParseValidationErrors(err))
			return
		}
	}

	req := &installment.ProcessInstallmentRequest{
		ActualAmount: body.ActualAmount,
		Notes:        body.Notes,
	}

	if body.ProcessedDate != nil {
		processedDate, err := time.Parse("2006-01-02", *body.ProcessedDate)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("processed_date", "formato inválido"))
			return
		}
		req.ProcessedDate = &processedDate
	}

	ctx := c.Request.Context()
	result, err := h.InstallmentService.ProcessInstallment(ctx, scheduleID, userID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ProcessInstallmentResponse{
		Message: "Parcela processada com sucesso",
		Result:  result,
	})
}

func (h *Handler) ListInstallmentSchedules(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ledgerID, err := pkg.ParseULID(c.Query("ledger_id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("ledger_id", "formato inválido"))
		return
	}

	filter := &installment.ScheduleFilter{LedgerId: ledgerID}

	if planIDStr := c.Query("plan_id"); planIDStr != "" {
		planID, err := pkg.ParseULID(planIDStr)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("plan_id", "formato inválido"))
			return
		}
		filter.PlanId = &planID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := installment.ScheduleStatus(statusStr)
		filter.Status = &status
	}

	if daysStr := c.Query("due_within_days"); daysStr != "" {
		days, err := pkg.ParseInt(daysStr)
		if err != nil {
			h.respondError(c, appErrors.NewValidationError("due_within_days", "formato inválido"))
			return
		}
		filter.DueWithinDays = &days
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	schedules, total, err := h.InstallmentService.ListSchedules(ctx, userID, filter, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(schedules, pagination.Page, pagination.Limit, total))
}
