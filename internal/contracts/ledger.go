package contracts

import "Parcelo/internal/domain/ledger"

type LedgerCreateRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
}

type LedgerCreateResponse struct {
	Message string         `json:"message"`
	Ledger  *ledger.Ledger `json:"ledger"`
}

type LedgerSingleResponse struct {
	Ledger *ledger.Ledger `json:"ledger"`
}

type AccountCreateRequest struct {
	LedgerId       string `json:"ledger_id" binding:"required"`
	Name           string `json:"name" binding:"required,max=100"`
	Kind           string `json:"kind" binding:"required,oneof=ASSET LIABILITY CATEGORY INCOME EQUITY"`
	InitialBalance int64  `json:"initial_balance" binding:"omitempty"`
}

type AccountCreateResponse struct {
	Message string          `json:"message"`
	Account *ledger.Account `json:"account"`
}

type AccountSingleResponse struct {
	Account *ledger.Account `json:"account"`
}

type TransactionCreateRequest struct {
	LedgerId        string `json:"ledger_id" binding:"required"`
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Description     string `json:"description" binding:"required,max=255"`
	DebitAccountId  string `json:"debit_account_id" binding:"required"`
	CreditAccountId string `json:"credit_account_id" binding:"required"`
	Amount          int64  `json:"amount" binding:"required,gt=0"`
}

type TransactionCreateResponse struct {
	Message     string              `json:"message"`
	Transaction *ledger.Transaction `json:"transaction"`
}
