package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/utils/pagination"
)

func (s *Store) SumByAccount(_ context.Context, accountID string, filter domain.LedgerFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[accountID]; !ok {
		return 0, apperrors.ErrNotFound
	}
	var sum int64
	for _, idx := range s.ledgerByAccount[accountID] {
		if e := s.ledger[idx]; filter.Matches(e) {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (s *Store) ReplayLedger(_ context.Context, accountID string, afterSequence int64, limit int) ([]domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[accountID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	entries := make([]domain.LedgerEntry, 0)
	for _, idx := range s.ledgerByAccount[accountID] {
		e := s.ledger[idx]
		if e.Sequence <= afterSequence {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (s *Store) SnapshotAccountLedger(_ context.Context, accountID string) (*domain.Account, []domain.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, nil, apperrors.ErrNotFound
	}
	indexes := s.ledgerByAccount[accountID]
	entries := make([]domain.LedgerEntry, len(indexes))
	for i, idx := range indexes {
		entries[i] = s.ledger[idx]
	}
	return &account, entries, nil
}

func (s *Store) ListLedgerEntries(_ context.Context, params domain.ListLedgerParams) ([]domain.LedgerEntry, *string, error) {
	var before int64
	if params.NextToken != nil && *params.NextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = seq
	}
	limit := params.NormalizedLimit()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.accounts[params.AccountID]; !ok {
		return nil, nil, apperrors.ErrNotFound
	}

	indexes := s.ledgerByAccount[params.AccountID]
	entries := make([]domain.LedgerEntry, 0, limit)
	var next *string
	for i := len(indexes) - 1; i >= 0; i-- {
		e := s.ledger[indexes[i]]
		if before > 0 && e.Sequence >= before {
			continue
		}
		if !params.Filter.Matches(e) {
			continue
		}
		if len(entries) == limit {
			token := pagination.EncodeSequenceToken(entries[len(entries)-1].Sequence)
			next = &token
			break
		}
		entries = append(entries, e)
	}
	return entries, next, nil
}

// pageAfter applies a (created_at, id) descending cursor to rows already
// sorted that way. key extracts the pair from row i.
func pageAfter[T any](rows []T, key func(T) (int64, string), nextToken *string, limit int) ([]T, *string, error) {
	start := 0
	if nextToken != nil && *nextToken != "" {
		at, id, err := pagination.DecodeTimeIDToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorNanos := at.UnixNano()
		start = sort.Search(len(rows), func(i int) bool {
			n, rid := key(rows[i])
			return n < cursorNanos || (n == cursorNanos && rid < id)
		})
	}
	end := start + limit
	if end >= len(rows) {
		return rows[start:], nil, nil
	}
	page := rows[start:end]
	n, id := key(page[len(page)-1])
	token := pagination.EncodeTimeIDToken(unixNanos(n), id)
	return page, &token, nil
}

func (s *Store) ListChargeSales(_ context.Context, params domain.ListParams) ([]domain.ChargeSale, *string, error) {
	s.mu.RLock()
	rows := make([]domain.ChargeSale, 0, len(s.chargeSales))
	for _, sale := range s.chargeSales {
		if params.AccountID == "" || sale.AccountID == params.AccountID {
			rows = append(rows, sale)
		}
	}
	s.mu.RUnlock()

	key := func(sale domain.ChargeSale) (int64, string) { return sale.CreatedAt.UnixNano(), sale.TransactionID }
	sortDesc(rows, key)
	return pageAfter(rows, key, params.NextToken, params.NormalizedLimit())
}

func (s *Store) ListCreditRequests(_ context.Context, params domain.ListParams) ([]domain.CreditRequest, *string, error) {
	s.mu.RLock()
	rows := make([]domain.CreditRequest, 0, len(s.creditRequests))
	for _, req := range s.creditRequests {
		if params.AccountID == "" || req.AccountID == params.AccountID {
			rows = append(rows, req)
		}
	}
	s.mu.RUnlock()

	key := func(req domain.CreditRequest) (int64, string) { return req.CreatedAt.UnixNano(), req.RequestID }
	sortDesc(rows, key)
	return pageAfter(rows, key, params.NextToken, params.NormalizedLimit())
}

func sortDesc[T any](rows []T, key func(T) (int64, string)) {
	sort.Slice(rows, func(i, j int) bool {
		ni, idi := key(rows[i])
		nj, idj := key(rows[j])
		if ni != nj {
			return ni > nj
		}
		return idi > idj
	})
}
