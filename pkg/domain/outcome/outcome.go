package outcome

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Outcome is the append-only analytics record for one fix attempt. The core
// writes it and never reads it back.
type Outcome struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Category  string    `json:"category" gorm:"index"`
	Strategy  string    `json:"strategy" gorm:"index"`
	Engine    string    `json:"engine"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}

func (o Outcome) TableName() string {
	return "public.fix_outcomes"
}

type Repository interface {
	Create(ctx context.Context, outcome *Outcome) error
}
