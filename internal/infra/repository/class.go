package repository

import (
	"context"

	"fitbook/internal/infra"
	"fitbook/internal/infra/db"

	"github.com/google/uuid"
)

type ClassRepository struct {
	db db.DBTX
}

func NewClassRepository(db db.DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

const incrementBookedSQL = `
UPDATE class_occurrences
SET booked_count = booked_count + 1
WHERE id = $1 AND booked_count < capacity`

func (r *ClassRepository) IncrementBooked(ctx context.Context, occurrenceID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, incrementBookedSQL, occurrenceID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment class booked count", err)
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.occurrenceExists(ctx, occurrenceID)
		if err != nil {
			return err
		}
		if !exists {
			return infra.WrapRepoErr("class occurrence not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("class occurrence is at capacity", nil, infra.KindConflict)
	}
	return nil
}

const decrementBookedSQL = `
UPDATE class_occurrences
SET booked_count = booked_count - 1
WHERE id = $1 AND booked_count > 0`

func (r *ClassRepository) DecrementBooked(ctx context.Context, occurrenceID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, decrementBookedSQL, occurrenceID)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement class booked count", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("class occurrence not found or empty", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ClassRepository) occurrenceExists(ctx context.Context, occurrenceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM class_occurrences WHERE id = $1)`, occurrenceID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check class occurrence", err)
	}
	return exists, nil
}
