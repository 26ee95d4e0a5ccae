package repository

import (
	"context"
	"fmt"

	"github.com/codemend/codemend/pkg/domain/outcome"
	"gorm.io/gorm"
)

type OutcomeRepository struct {
	db *gorm.DB
}

func NewOutcomeRepository(db *gorm.DB) outcome.Repository {
	return &OutcomeRepository{
		db: db,
	}
}

func (r *OutcomeRepository) Create(ctx context.Context, entity *outcome.Outcome) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to persist fix outcome: %w", err)
	}
	return nil
}
