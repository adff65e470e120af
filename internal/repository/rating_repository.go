package repository

import (
	"context"
	"fmt"

	"github.com/godilite/overlay-server/internal/repository/models"
	"github.com/jmoiron/sqlx"
)

type RatingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// FindRatingSchemeItemsForAssessmentDefinition returns the items of the rating
// scheme the assessment definition is rated against.
func (r *RatingRepository) FindRatingSchemeItemsForAssessmentDefinition(ctx context.Context, assessmentDefinitionID int64) ([]models.RatingSchemeItem, error) {
	const query = `
		SELECT
			rsi.id,
			rsi.scheme_id,
			rsi.name,
			rsi.code,
			rsi.color,
			rsi.description,
			rsi.position,
			rsi.user_selectable
		FROM rating_scheme_item AS rsi
		JOIN assessment_definition AS ad ON ad.rating_scheme_id = rsi.scheme_id
		WHERE ad.id = ?
		ORDER BY rsi.position, rsi.name
	`

	items := []models.RatingSchemeItem{}
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), assessmentDefinitionID); err != nil {
		return nil, fmt.Errorf("query FindRatingSchemeItemsForAssessmentDefinition: %w", err)
	}
	return items, nil
}

// FindEntityRatings returns the rating of each entity for the assessment
// definition. Entities without a rating are absent.
func (r *RatingRepository) FindEntityRatings(ctx context.Context, assessmentDefinitionID int64, kind models.EntityKind, entityIDs []int64) ([]models.EntityRating, error) {
	if len(entityIDs) == 0 {
		return []models.EntityRating{}, nil
	}

	const query = `
		SELECT ar.entity_id, ar.rating_id
		FROM assessment_rating AS ar
		WHERE ar.assessment_definition_id = ?
		AND ar.entity_kind = ?
		AND ar.entity_id IN (?)
	`

	ratings := []models.EntityRating{}
	if err := selectIn(ctx, r.db, &ratings, query, assessmentDefinitionID, kind, entityIDs); err != nil {
		return nil, fmt.Errorf("query FindEntityRatings: %w", err)
	}
	return ratings, nil
}
