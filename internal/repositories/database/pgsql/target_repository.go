package pgsql

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/recharge_backend/internal/core/ports/repositories"
	"github.com/SscSPs/recharge_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTargetRepository struct {
	BaseRepository
}

func newPgxTargetRepository(pool *pgxpool.Pool) *PgxTargetRepository {
	return &PgxTargetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TargetRepositoryFacade = (*PgxTargetRepository)(nil)

func (r *PgxTargetRepository) SaveTarget(ctx context.Context, target domain.Target) error {
	m := mapping.ToModelTarget(target)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO targets (`+targetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.TargetID, m.ExternalID, m.Balance, m.LastChargedAt, m.CreatedAt, m.LastUpdatedAt)
	return mapError(err, "save target "+target.ExternalID)
}

func (r *PgxTargetRepository) FindTargetByID(ctx context.Context, targetID string) (*domain.Target, error) {
	return r.findOne(ctx, `target_id = $1`, targetID)
}

func (r *PgxTargetRepository) FindTargetByExternalID(ctx context.Context, externalID string) (*domain.Target, error) {
	return r.findOne(ctx, `external_id = $1`, externalID)
}

func (r *PgxTargetRepository) findOne(ctx context.Context, where string, arg string) (*domain.Target, error) {
	m, err := scanTarget(r.Pool.QueryRow(ctx, `SELECT `+targetColumns+` FROM targets WHERE `+where+`;`, arg))
	if err != nil {
		return nil, mapError(err, "find target "+arg)
	}
	d, err := mapping.ToDomainTarget(m)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
