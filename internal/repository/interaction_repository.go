package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// InteractionRepository records user interactions consumed by the external
// recommendation service.
type InteractionRepository interface {
	Record(ctx context.Context, userId, interactionType, targetId, targetType string) error
}

type interactionRepository struct {
	db *sql.DB
}

func NewInteractionRepository(db *sql.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Record(ctx context.Context, userId, interactionType, targetId, targetType string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_interactions (id, user_id, interaction_type, target_id, target_type)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), userId, interactionType, targetId, targetType)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
