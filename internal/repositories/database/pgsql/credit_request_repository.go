package pgsql

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/SscSPs/recharge_backend/internal/utils/mapping"
	"github.com/SscSPs/recharge_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCreditRequestRepository struct {
	BaseRepository
}

func newPgxCreditRequestRepository(pool *pgxpool.Pool) *PgxCreditRequestRepository {
	return &PgxCreditRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditRequestReader = (*PgxCreditRequestRepository)(nil)

func (r *PgxCreditRequestRepository) FindCreditRequestByID(ctx context.Context, requestID string) (*domain.CreditRequest, error) {
	m, err := scanCreditRequest(r.Pool.QueryRow(ctx,
		`SELECT `+creditRequestColumns+` FROM credit_requests WHERE request_id = $1;`, requestID))
	if err != nil {
		return nil, mapError(err, "find credit request "+requestID)
	}
	d, err := mapping.ToDomainCreditRequest(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListCreditRequests returns requests newest first, optionally scoped to one account.
func (r *PgxCreditRequestRepository) ListCreditRequests(ctx context.Context, params domain.ListParams) ([]domain.CreditRequest, *string, error) {
	page, err := newTimeIDPage(params, "request_id")
	if err != nil {
		return nil, nil, err
	}
	query := page.query(creditRequestColumns, "credit_requests", "request_id")

	rows, err := r.Pool.Query(ctx, query, page.args...)
	if err != nil {
		return nil, nil, mapError(err, "list credit requests")
	}
	ms, err := collect(rows, scanCreditRequest)
	if err != nil {
		return nil, nil, mapError(err, "scan credit requests")
	}

	var next *string
	if len(ms) > page.limit {
		last := ms[page.limit-1]
		token := pagination.EncodeTimeIDToken(last.CreatedAt, last.RequestID)
		next = &token
		ms = ms[:page.limit]
	}
	ds, err := mapping.ToDomainCreditRequestSlice(ms)
	if err != nil {
		return nil, nil, err
	}
	return ds, next, nil
}
