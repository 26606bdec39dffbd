package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fitbook/internal/domain/booking"
	"fitbook/internal/domain/schedule"
	"fitbook/internal/pkg/clock"
	"fitbook/internal/pkg/errs"
	"fitbook/internal/usecase/queries"

	"github.com/google/uuid"
)

var ErrInvalidSeries = errs.New("invalid recurring series request")

const (
	minSeriesWeeks = 1
	maxSeriesWeeks = 52
)

// Skip reasons reported per occurrence.
const (
	SkipSlotUnavailable    = "slot_unavailable"
	SkipInsufficientCredit = "insufficient_credit"
	SkipValidation         = "invalid_request"
	SkipStorageFailure     = "storage_failure"
)

type SeriesInput struct {
	TrainerID       uuid.UUID
	DayOfWeek       time.Weekday
	StartMinute     int
	DurationMinutes int
	WeekCount       int
	MemberID        uuid.UUID
	PaymentMode     booking.PaymentMode
}

type SkippedOccurrence struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type SeriesResult struct {
	Created []*queries.BookingView `json:"created"`
	Skipped []SkippedOccurrence    `json:"skipped"`
}

type SeriesCommands interface {
	Generate(ctx context.Context, in SeriesInput) (*SeriesResult, error)
}

type seriesCommandsImpl struct {
	bookings BookingCommands
	clock    clock.Clock
	loc      *time.Location
}

func NewSeriesCommands(bookings BookingCommands, clk clock.Clock, loc *time.Location) SeriesCommands {
	return &seriesCommandsImpl{bookings: bookings, clock: clk, loc: loc}
}

// Generate claims one occurrence per week, sequentially, starting from the
// first matching weekday on or after today in the facility time zone. Each
// occurrence is its own independent claim: a failed week is recorded as a
// skip with its reason and the series moves on, so one conflict never sinks
// the remaining weeks.
func (s *seriesCommandsImpl) Generate(ctx context.Context, in SeriesInput) (*SeriesResult, error) {
	if in.WeekCount < minSeriesWeeks || in.WeekCount > maxSeriesWeeks {
		return nil, ErrInvalidSeries
	}
	if in.DayOfWeek < time.Sunday || in.DayOfWeek > time.Saturday {
		return nil, ErrInvalidSeries
	}
	if in.DurationMinutes <= 0 {
		return nil, ErrInvalidSeries
	}

	today := schedule.DateOf(s.clock.Now().In(s.loc))
	first := today.NextWeekday(in.DayOfWeek)

	result := &SeriesResult{
		Created: make([]*queries.BookingView, 0, in.WeekCount),
		Skipped: make([]SkippedOccurrence, 0),
	}

	for week := 0; week < in.WeekCount; week++ {
		date := first.AddDays(7 * week)

		view, err := s.bookings.Claim(ctx, ClaimInput{
			Target:      schedule.Target{Kind: schedule.TargetTrainer, ID: in.TrainerID},
			Date:        date,
			StartMinute: in.StartMinute,
			EndMinute:   in.StartMinute + in.DurationMinutes,
			Subject:     booking.NewMemberSubject(in.MemberID),
			PaymentMode: in.PaymentMode,
		})
		if err != nil {
			reason := skipReason(err)
			slog.Info("series occurrence skipped",
				"date", date.String(), "reason", reason, "error", err.Error())
			result.Skipped = append(result.Skipped, SkippedOccurrence{
				Date:   date.String(),
				Reason: reason,
			})
			continue
		}
		result.Created = append(result.Created, view)
	}
	return result, nil
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, ErrSlotUnavailable):
		return SkipSlotUnavailable
	case errors.Is(err, ErrInsufficientCredit):
		return SkipInsufficientCredit
	case errors.Is(err, ErrValidation):
		return SkipValidation
	default:
		return SkipStorageFailure
	}
}
