package port

import (
	"context"

	"github.com/swami086/gentle-space-realty-sub007/internal/core/domain"
)

// StagingRepositoryPort — in-memory отстойник результатов прогонов,
// ожидающих решения ревьюера.
type StagingRepositoryPort interface {
	Put(ctx context.Context, result domain.ExtractionResult) (*domain.StagedResultSet, error)
	Get(ctx context.Context, id string) (*domain.StagedResultSet, error)
	List(ctx context.Context) ([]domain.StagedResultSet, error)

	// MarkApproved атомарно помечает набор одобренным.
	// Повторная попытка для того же набора возвращает domain.ErrAlreadyApproved —
	// так обеспечивается at-most-once для "approve and import".
	MarkApproved(ctx context.Context, id string) (*domain.StagedResultSet, error)
}
