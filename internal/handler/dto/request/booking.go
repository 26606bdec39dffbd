package request

import (
	"strings"
	"time"

	"fitbook/internal/domain/booking"
	"fitbook/internal/domain/schedule"
	"fitbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type ClaimBookingRequest struct {
	TargetKind      string    `json:"target_kind" binding:"required,oneof=trainer class"`
	TargetID        uuid.UUID `json:"target_id" binding:"required"`
	Date            string    `json:"date" binding:"required"`
	StartMinute     int       `json:"start_minute" binding:"min=0,max=1439"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1"`
	PaymentMode     string    `json:"payment_mode" binding:"required,oneof=credit cart guest"`
	GuestName       string    `json:"guest_name,omitempty"`
}

func (r ClaimBookingRequest) ToInput(memberID uuid.UUID) (commands.ClaimInput, error) {
	date, err := schedule.ParseDate(r.Date)
	if err != nil {
		return commands.ClaimInput{}, err
	}

	mode := booking.PaymentMode(r.PaymentMode)

	var subject booking.SubjectRef
	if mode == booking.PaymentGuest {
		subject, err = booking.NewGuestSubject(strings.TrimSpace(r.GuestName))
		if err != nil {
			return commands.ClaimInput{}, err
		}
	} else {
		subject = booking.NewMemberSubject(memberID)
	}

	return commands.ClaimInput{
		Target: schedule.Target{
			Kind: schedule.TargetKind(r.TargetKind),
			ID:   r.TargetID,
		},
		Date:        date,
		StartMinute: r.StartMinute,
		EndMinute:   r.StartMinute + r.DurationMinutes,
		Subject:     subject,
		PaymentMode: mode,
	}, nil
}

type RecurringBookingRequest struct {
	TrainerID       uuid.UUID `json:"trainer_id" binding:"required"`
	DayOfWeek       int       `json:"day_of_week" binding:"min=0,max=6"`
	StartMinute     int       `json:"start_minute" binding:"min=0,max=1439"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1"`
	WeekCount       int       `json:"week_count" binding:"required,min=1,max=52"`
	PaymentMode     string    `json:"payment_mode" binding:"required,oneof=credit cart"`
}

func (r RecurringBookingRequest) ToInput(memberID uuid.UUID) commands.SeriesInput {
	return commands.SeriesInput{
		TrainerID:       r.TrainerID,
		DayOfWeek:       time.Weekday(r.DayOfWeek),
		StartMinute:     r.StartMinute,
		DurationMinutes: r.DurationMinutes,
		WeekCount:       r.WeekCount,
		MemberID:        memberID,
		PaymentMode:     booking.PaymentMode(r.PaymentMode),
	}
}
