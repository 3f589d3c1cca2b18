package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/forkful/forkful/internal/domain"
)

// scanCandidates maps rows selected with candidateColumns plus a
// trailing similarity column into domain candidates.
func scanCandidates(rows pgx.Rows) ([]domain.Candidate, error) {
	var out []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		err := rows.Scan(
			&c.ID, &c.CreatorID, &c.Title, &c.Description,
			&c.PrepTimeMinutes, &c.CookTimeMinutes, &c.Servings,
			&c.Ingredients, &c.Instructions,
			&c.DietaryTags, &c.HealthTags, &c.HealthBenefits,
			&c.NutritionSummary, &c.CreatedAt,
			&c.SimilarityScore,
		)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	return out, nil
}

// toVectorLiteral formats a float32 slice as a pgvector literal "[a,b,c]".
func toVectorLiteral(vector []float32) (string, error) {
	if len(vector) == 0 {
		return "", fmt.Errorf("empty embedding vector")
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range vector {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String(), nil
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
