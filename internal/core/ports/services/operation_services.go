package services

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/dto"
)

// ChargeSaleWriterSvc submits charge sales.
type ChargeSaleWriterSvc interface {
	// SubmitChargeSale debits the seller account and credits the target by the
	// same amount, appending one ledger entry, all atomically. A transaction id
	// is applied at most once; resubmitting it returns a duplicate error.
	SubmitChargeSale(ctx context.Context, caller domain.Caller, req dto.SubmitChargeSaleRequest) (*domain.ChargeSale, error)
}

// ChargeSaleReaderSvc reads charge sales.
type ChargeSaleReaderSvc interface {
	GetChargeSale(ctx context.Context, caller domain.Caller, transactionID string) (*domain.ChargeSale, error)
	ListChargeSales(ctx context.Context, caller domain.Caller, params domain.ListParams) ([]domain.ChargeSale, *string, error)
}

// ChargeSaleSvcFacade combines all charge-sale service interfaces
type ChargeSaleSvcFacade interface {
	ChargeSaleWriterSvc
	ChargeSaleReaderSvc
}

// CreditRequestWriterSvc submits and resolves credit requests.
type CreditRequestWriterSvc interface {
	// SubmitCreditRequest records a pending request. It has no balance effect.
	SubmitCreditRequest(ctx context.Context, caller domain.Caller, req dto.SubmitCreditRequestRequest) (*domain.CreditRequest, error)

	// ProcessCreditRequest approves or rejects a pending request. Approval
	// credits the account and appends one ledger entry; rejection only
	// changes the request status.
	ProcessCreditRequest(ctx context.Context, caller domain.Caller, requestID string, decision domain.Decision) (*domain.CreditRequest, error)
}

// CreditRequestReaderSvc reads credit requests.
type CreditRequestReaderSvc interface {
	GetCreditRequest(ctx context.Context, caller domain.Caller, requestID string) (*domain.CreditRequest, error)
	ListCreditRequests(ctx context.Context, caller domain.Caller, params domain.ListParams) ([]domain.CreditRequest, *string, error)
}

// CreditRequestSvcFacade combines all credit-request service interfaces
type CreditRequestSvcFacade interface {
	CreditRequestWriterSvc
	CreditRequestReaderSvc
}
