package port

import (
	"context"

	"github.com/google/uuid"

	"clausevet/internal/domain"
)

// AnalysisRepository stores completed analyses for later retrieval by the
// report and export routes. Analyses live only for the process lifetime;
// there is no persistence layer behind this port.
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *domain.Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context) ([]*domain.Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
