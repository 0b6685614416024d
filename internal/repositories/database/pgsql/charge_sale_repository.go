package pgsql

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/SscSPs/recharge_backend/internal/utils/mapping"
	"github.com/SscSPs/recharge_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxChargeSaleRepository struct {
	BaseRepository
}

func newPgxChargeSaleRepository(pool *pgxpool.Pool) *PgxChargeSaleRepository {
	return &PgxChargeSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChargeSaleReader = (*PgxChargeSaleRepository)(nil)

func (r *PgxChargeSaleRepository) FindChargeSaleByTransactionID(ctx context.Context, transactionID string) (*domain.ChargeSale, error) {
	m, err := scanChargeSale(r.Pool.QueryRow(ctx,
		`SELECT `+chargeSaleColumns+` FROM charge_sales WHERE transaction_id = $1;`, transactionID))
	if err != nil {
		return nil, mapError(err, "find charge sale "+transactionID)
	}
	d, err := mapping.ToDomainChargeSale(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListChargeSales returns sales newest first, optionally scoped to one account.
func (r *PgxChargeSaleRepository) ListChargeSales(ctx context.Context, params domain.ListParams) ([]domain.ChargeSale, *string, error) {
	page, err := newTimeIDPage(params, "transaction_id")
	if err != nil {
		return nil, nil, err
	}
	query := page.query(chargeSaleColumns, "charge_sales", "transaction_id")

	rows, err := r.Pool.Query(ctx, query, page.args...)
	if err != nil {
		return nil, nil, mapError(err, "list charge sales")
	}
	ms, err := collect(rows, scanChargeSale)
	if err != nil {
		return nil, nil, mapError(err, "scan charge sales")
	}

	var next *string
	if len(ms) > page.limit {
		last := ms[page.limit-1]
		token := pagination.EncodeTimeIDToken(last.CreatedAt, last.TransactionID)
		next = &token
		ms = ms[:page.limit]
	}
	ds, err := mapping.ToDomainChargeSaleSlice(ms)
	if err != nil {
		return nil, nil, err
	}
	return ds, next, nil
}
