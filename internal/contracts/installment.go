package contracts

import "Parcelo/internal/domain/installment"

type InstallmentPlanCreateRequest struct {
	LedgerId              string  `json:"ledger_id" binding:"required"`
	CreditCardAccountId   string  `json:"credit_card_account_id" binding:"required"`
	PurchaseAmount        int64   `json:"purchase_amount" binding:"required,gt=0"`
	PurchaseDate          string  `json:"purchase_date" binding:"required,datetime=2006-01-02"`
	Description           string  `json:"description" binding:"required,max=255"`
	NumberOfInstallments  int     `json:"number_of_installments" binding:"required,gte=2,lte=36"`
	StartDate             string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	Frequency             string  `json:"frequency" binding:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY"`
	CategoryAccountId     *string `json:"category_account_id" binding:"omitempty"`
	OriginalTransactionId *string `json:"original_transaction_id" binding:"omitempty"`
	Notes                 string  `json:"notes" binding:"omitempty"`
}

type InstallmentPlanUpdateRequest struct {
	Notes             *string `json:"notes" binding:"omitempty"`
	CategoryAccountId *string `json:"category_account_id" binding:"omitempty"`
}

type InstallmentPlanCreateResponse struct {
	Message  string                     `json:"message"`
	Plan     *installment.Plan          `json:"plan"`
	Schedule []*installment.ScheduleRow `json:"schedule"`
}

type InstallmentPlanSingleResponse struct {
	Plan     *installment.Plan          `json:"plan"`
	Schedule []*installment.ScheduleRow `json:"schedule"`
}

type ProcessInstallmentRequest struct {
	ActualAmount  *int64  `json:"actual_amount" binding:"omitempty,gt=0"`
	ProcessedDate *string `json:"processed_date" binding:"omitempty,datetime=2006-01-02"`
	Notes         string  `json:"notes" binding:"omitempty"`
}

type ProcessInstallmentResponse struct {
	Message string                                `json:"message"`
	Result  *installment.ProcessInstallmentResult `json:"result"`
}
