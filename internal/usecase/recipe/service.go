// Package recipe holds thin recipe-level operations.
package recipe

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain"
)

// Service records recipe view events.
type Service struct {
	views  ViewRecorder
	logger *zap.Logger
}

// New creates a Service.
func New(views ViewRecorder, logger *zap.Logger) *Service {
	return &Service{views: views, logger: logger}
}

// RecordView validates the recipe ID and persists a view event.
func (s *Service) RecordView(ctx context.Context, recipeID string) error {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRecipeID, recipeID)
	}

	if err := s.views.RecordView(ctx, id); err != nil {
		return fmt.Errorf("record view: %w", err)
	}

	s.logger.Debug("view recorded", zap.String("recipe_id", id.String()))
	return nil
}
