package recipe

import (
	"context"

	"github.com/google/uuid"
)

// ViewRecorder persists recipe view events.
type ViewRecorder interface {
	RecordView(ctx context.Context, recipeID uuid.UUID) error
}
