package repositories

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// CreditRequestReader defines read operations for credit requests
type CreditRequestReader interface {
	FindCreditRequestByID(ctx context.Context, requestID string) (*domain.CreditRequest, error)

	// ListCreditRequests returns requests newest first and a token for the next page, if any.
	ListCreditRequests(ctx context.Context, params domain.ListParams) ([]domain.CreditRequest, *string, error)
}

// ChargeSaleReader defines read operations for charge sales
type ChargeSaleReader interface {
	FindChargeSaleByTransactionID(ctx context.Context, transactionID string) (*domain.ChargeSale, error)

	// ListChargeSales returns sales newest first and a token for the next page, if any.
	ListChargeSales(ctx context.Context, params domain.ListParams) ([]domain.ChargeSale, *string, error)
}
