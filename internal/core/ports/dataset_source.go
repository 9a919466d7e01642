package ports

import (
	"context"

	"github.com/workboard/taskboard/internal/core/domain"
)

// DatasetSource supplies the initial collections once at startup.
type DatasetSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}
