package dto

import (
	"time"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// ListLedgerEntriesParams are the query parameters of the ledger listing.
type ListLedgerEntriesParams struct {
	Kind      string `form:"kind" binding:"omitempty,oneof=credit_increase charge_sale"`
	Status    string `form:"status" binding:"omitempty,oneof=successful failed"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// LedgerSumParams are the query parameters of the ledger sum.
type LedgerSumParams struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=credit_increase charge_sale"`
	Status string `form:"status" binding:"omitempty,oneof=successful failed"`
}

// ReplayLedgerParams are the query parameters of the ledger replay.
type ReplayLedgerParams struct {
	After int64 `form:"after" binding:"omitempty,min=0"`
	Limit int   `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// ReplayLedgerResponse is a page of entries in creation order.
type ReplayLedgerResponse struct {
	Entries      []LedgerEntryResponse `json:"entries"`
	LastSequence int64                 `json:"lastSequence"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	Sequence       int64      `json:"sequence"`
	IdempotencyKey string     `json:"idempotencyKey"`
	AccountID      string     `json:"accountID"`
	Amount         int64      `json:"amount"`
	Kind           string     `json:"kind"`
	BalanceBefore  int64      `json:"balanceBefore"`
	BalanceAfter   int64      `json:"balanceAfter"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	OperationKind  string     `json:"operationKind"`
	OperationID    string     `json:"operationID"`
	RequestID      string     `json:"requestID,omitempty"`
	TransactionID  string     `json:"transactionID,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}

// ListLedgerEntriesResponse wraps a page of ledger entries.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// LedgerSumResponse is the result of summing an account's entries.
type LedgerSumResponse struct {
	AccountID string `json:"accountID"`
	Kind      string `json:"kind,omitempty"`
	Status    string `json:"status,omitempty"`
	Sum       int64  `json:"sum"`
}

// ReconciliationResponse reports whether the ledger replays to the stored balance.
type ReconciliationResponse struct {
	AccountID       string `json:"accountID"`
	StoredBalance   int64  `json:"storedBalance"`
	ReplayedBalance int64  `json:"replayedBalance"`
	Entries         int    `json:"entries"`
	LastSequence    int64  `json:"lastSequence"`
	Consistent      bool   `json:"consistent"`
	Problem         string `json:"problem,omitempty"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	resp := LedgerEntryResponse{
		Sequence:       e.Sequence,
		IdempotencyKey: e.IdempotencyKey,
		AccountID:      e.AccountID,
		Amount:         e.Amount,
		Kind:           string(e.Kind),
		BalanceBefore:  e.BalanceBefore,
		BalanceAfter:   e.BalanceAfter,
		Description:    e.Description,
		Status:         string(e.Status),
		OperationKind:  string(e.Ref.Kind),
		OperationID:    e.Ref.ID,
		CreatedAt:      e.CreatedAt,
		CompletedAt:    e.CompletedAt,
	}
	e.Ref.Match(
		func(requestID string) { resp.RequestID = requestID },
		func(transactionID string) { resp.TransactionID = transactionID },
	)
	return resp
}

// ToListLedgerEntriesResponse converts a page of ledger entries.
func ToListLedgerEntriesResponse(entries []domain.LedgerEntry, nextToken *string) ListLedgerEntriesResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return ListLedgerEntriesResponse{Entries: out, NextToken: nextToken}
}

// ToReconciliationResponse converts a domain.Reconciliation.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:       r.AccountID,
		StoredBalance:   r.StoredBalance,
		ReplayedBalance: r.ReplayedBalance,
		Entries:         r.Entries,
		LastSequence:    r.LastSequence,
		Consistent:      r.Consistent,
		Problem:         r.Problem,
	}
}

// ToReplayLedgerResponse converts replayed entries. LastSequence is the cursor
// for the next call, or after itself when nothing was returned.
func ToReplayLedgerResponse(entries []domain.LedgerEntry, after int64) ReplayLedgerResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	last := after
	if n := len(entries); n > 0 {
		last = entries[n-1].Sequence
	}
	return ReplayLedgerResponse{Entries: out, LastSequence: last}
}
