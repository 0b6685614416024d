package repositories

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
)

// TargetReader defines read operations for target data
type TargetReader interface {
	FindTargetByID(ctx context.Context, targetID string) (*domain.Target, error)
	FindTargetByExternalID(ctx context.Context, externalID string) (*domain.Target, error)
}

// TargetWriter defines write operations for target data
type TargetWriter interface {
	// SaveTarget persists a newly registered target.
	SaveTarget(ctx context.Context, target domain.Target) error
}

// TargetRepositoryFacade combines all target-related repository interfaces
type TargetRepositoryFacade interface {
	TargetReader
	TargetWriter
}
