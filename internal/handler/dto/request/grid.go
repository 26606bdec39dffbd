package request

import (
	"errors"

	"fitbook/internal/domain/schedule"

	"github.com/google/uuid"
)

var ErrInvalidTrainerID = errors.New("invalid trainer id")

type GridRequest struct {
	From      string `form:"from" binding:"required"`
	To        string `form:"to" binding:"required"`
	TrainerID string `form:"trainer_id"`
}

func (r GridRequest) DateRange() (schedule.Date, schedule.Date, error) {
	from, err := schedule.ParseDate(r.From)
	if err != nil {
		return schedule.Date{}, schedule.Date{}, err
	}
	to, err := schedule.ParseDate(r.To)
	if err != nil {
		return schedule.Date{}, schedule.Date{}, err
	}
	return from, to, nil
}

// TrainerScope returns the optional trainer filter, nil when absent.
func (r GridRequest) TrainerScope() (*uuid.UUID, error) {
	if r.TrainerID == "" {
		return nil, nil
	}
	id, err := uuid.Parse(r.TrainerID)
	if err != nil {
		return nil, ErrInvalidTrainerID
	}
	return &id, nil
}
