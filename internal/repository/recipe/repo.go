// Package recipe implements recipe retrieval over Postgres + pgvector.
package recipe

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/forkful/forkful/internal/domain"
)

// querier is the consumer interface over pgxpool.Pool (ISP).
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repo implements usecase/search.Repository and usecase/recipe.ViewRecorder.
type Repo struct {
	q querier
}

// New creates a recipe repository.
func New(q querier) *Repo {
	return &Repo{q: q}
}

const candidateColumns = `
	id, creator_id, title, description,
	prep_time_minutes, cook_time_minutes, servings,
	ingredients, instructions,
	dietary_tags, health_tags, health_benefits,
	nutrition_summary, created_at`

// SearchSimilar runs a cosine similarity search against the recipe
// embedding index, returning candidates at or above minSimilarity.
func (r *Repo) SearchSimilar(
	ctx context.Context, vector []float32, minSimilarity float64, limit int,
) ([]domain.Candidate, error) {
	vec, err := toVectorLiteral(vector)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}

	sql := fmt.Sprintf(`
SELECT %s, 1 - (embedding <=> $1::vector) AS similarity
FROM recipes
WHERE embedding IS NOT NULL
  AND 1 - (embedding <=> $1::vector) >= $2
ORDER BY embedding <=> $1::vector
LIMIT $3`, candidateColumns)

	rows, err := r.q.Query(ctx, sql, vec, minSimilarity, limit)
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// SearchText runs a case-insensitive substring match on title or
// description. Every candidate gets the fixed fallback similarity since
// no vector score exists.
func (r *Repo) SearchText(
	ctx context.Context, query string, fallbackSimilarity float64, limit int,
) ([]domain.Candidate, error) {
	pattern := "%" + escapeLike(query) + "%"

	sql := fmt.Sprintf(`
SELECT %s, $1::float8 AS similarity
FROM recipes
WHERE title ILIKE $2 OR description ILIKE $2
ORDER BY created_at DESC
LIMIT $3`, candidateColumns)

	rows, err := r.q.Query(ctx, sql, fallbackSimilarity, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search text: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// RecordView inserts a view event for a recipe.
func (r *Repo) RecordView(ctx context.Context, recipeID uuid.UUID) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO recipe_views (id, recipe_id, viewed_at) VALUES ($1, $2, now())`,
		uuid.New(), recipeID,
	)
	if err != nil {
		return fmt.Errorf("record view %s: %w", recipeID, err)
	}
	return nil
}
