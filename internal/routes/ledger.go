package routes

import (
	"net/http"
	"time"

	"Parcelo/internal/contracts"
	"Parcelo/internal/domain/ledger"
	appErrors "Parcelo/internal/errors"
	"Parcelo/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateLedger(c *gin.Context) {
	var body contracts.LedgerCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	entity, err := h.LedgerService.CreateLedger(ctx, &ledger.CreateLedgerRequest{
		UserId:   userID,
		Name:     body.Name,
		Currency: body.Currency,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.LedgerCreateResponse{
		Message: "Livro criado com sucesso",
		Ledger:  entity,
	})
}

func (h *Handler) ListLedgers(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	ledgers, total, err := h.LedgerService.ListLedgers(ctx, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(ledgers, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetLedger(c *gin.Context) {
	ledgerID, err := pkg.ParseULID(c.Param("id"))
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
	entity, err := h.LedgerService.GetLedgerById(ctx, ledgerID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.LedgerSingleResponse{Ledger: entity})
}

func (h *Handler) CreateAccount(c *gin.Context) {
	var body contracts.AccountCreateRequest
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

	ctx := c.Request.Context()
	account, err := h.LedgerService.CreateAccount(ctx, &ledger.CreateAccountRequest{
		UserId:         userID,
		LedgerId:       ledgerID,
		Name:           body.Name,
		Kind:           ledger.AccountKind(body.Kind),
		InitialBalance: body.InitialBalance,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.AccountCreateResponse{
		Message: "Conta criada com sucesso",
		Account: account,
	})
}

func (h *Handler) ListAccounts(c *gin.Context) {
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
	accounts, total, err := h.LedgerService.ListAccounts(ctx, ledgerID, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(accounts, pagination.Page, pagination.Limit, total))
}

func (h *Handler) GetAccount(c *gin.Context) {
	accountID, err := pkg.ParseULID(c.Param("id"))
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
	account, err := h.LedgerService.GetAccountById(ctx, accountID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.AccountSingleResponse{Account: account})
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
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

	debitID, err := pkg.ParseULID(body.DebitAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("debit_account_id", "formato inválido"))
		return
	}

	creditID, err := pkg.ParseULID(body.CreditAccountId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("credit_account_id", "formato inválido"))
		return
	}

	transactionDate, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("date", "formato inválido"))
		return
	}

	ctx := c.Request.Context()
	transaction, err := h.LedgerService.PostTransaction(ctx, &ledger.PostTransactionRequest{
		UserId:          userID,
		LedgerId:        ledgerID,
		Date:            transactionDate,
		Description:     body.Description,
		DebitAccountId:  debitID,
		CreditAccountId: creditID,
		Amount:          body.Amount,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação registrada com sucesso",
		Transaction: transaction,
	})
}

func (h *Handler) ListTransactions(c *gin.Context) {
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
	transactions, total, err := h.LedgerService.ListTransactions(ctx, ledgerID, userID, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(transactions, pagination.Page, pagination.Limit, total))
}
