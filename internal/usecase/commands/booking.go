package commands

import (
	"context"
	"log/slog"

	"fitbook/internal/domain/booking"
	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/pkg/clock"
	"fitbook/internal/pkg/errs"
	"fitbook/internal/usecase/queries"
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrValidation         = errs.New("invalid booking request")
	ErrSlotUnavailable    = errs.New("slot is not available")
	ErrInsufficientCredit = errs.New("insufficient credit balance")
	ErrBookingNotFound    = errs.New("booking not found")
	ErrStorageFailure     = errs.New("storage failure")
)

type ClaimInput struct {
	Target      schedule.Target
	Date        schedule.Date
	StartMinute int
	EndMinute   int
	Subject     booking.SubjectRef
	PaymentMode booking.PaymentMode
}

type BookingCommands interface {
	Claim(ctx context.Context, in ClaimInput) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow     shared.UnitOfWork
	queries queries.BookingQueries
	window  schedule.Window
	clock   clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	window schedule.Window,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:     uow,
		queries: bookingQueries,
		window:  window,
		clock:   clk,
	}
}

// Claim validates and persists one booking atomically. Every precondition
// (the live occupancy verdict, the overlap re-check, the credit debit, the
// class seat) is evaluated inside a single transaction, so a failure at any
// step leaves no partial state behind.
//
// Unlike the grid read, a claim never degrades: if an event source cannot be
// read the claim fails, because deciding occupancy on partial data could
// hand out a slot that is already taken.
func (c *bookingCommandsImpl) Claim(ctx context.Context, in ClaimInput) (*queries.BookingView, error) {
	iv, err := schedule.NewTimeInterval(in.Date, in.StartMinute, in.EndMinute)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	b, err := booking.NewBooking(in.Target, iv, in.Subject, in.PaymentMode, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		events, err := c.fetchAll(ctx, tx, in.Date)
		if err != nil {
			return err
		}

		scoped := schedule.ScopeForTarget(events, in.Target)
		if err := schedule.EvaluateClaim(c.window, iv, scoped, in.Target); err != nil {
			return errs.Mark(err, ErrSlotUnavailable)
		}

		// Class slots are shared up to capacity, so the overlap re-check
		// applies to trainer targets only.
		if in.Target.Kind == schedule.TargetTrainer {
			occupied, err := tx.Bookings().ExistsOverlapping(ctx, in.Target, iv)
			if err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
			if occupied {
				return ErrSlotUnavailable
			}
		}

		if in.PaymentMode == booking.PaymentCredit {
			tier, err := b.Tier()
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			if err := tx.Credits().Decrement(ctx, *in.Subject.MemberID(), tier); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, ErrInsufficientCredit)
				}
				return errs.Mark(err, ErrStorageFailure)
			}
		}

		if in.Target.Kind == schedule.TargetClass {
			if err := tx.Classes().IncrementBooked(ctx, in.Target.ID); err != nil {
				if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, ErrSlotUnavailable)
				}
				return errs.Mark(err, ErrStorageFailure)
			}
		}

		id, err := tx.Bookings().Create(ctx, b)
		if err != nil {
			// The exclusion constraint is the last line of defense against a
			// concurrent claim that slipped past the in-transaction checks.
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrSlotUnavailable)
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.queries.GetByID(ctx, bookingID)
	if err != nil {
		slog.Error("claim committed but read-back failed",
			"booking_id", bookingID.String(), "error", err.Error())
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return view, nil
}

// Cancel soft-cancels a booking and reverses its side effects: the credit
// comes back and a class seat is released, all in the same transaction.
func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrBookingNotFound)
			}
			return errs.Mark(err, ErrStorageFailure)
		}
		if snap.Status == booking.StatusCanceled.String() {
			return errs.Mark(booking.ErrAlreadyCanceled, ErrValidation)
		}

		if err := tx.Bookings().MarkCanceled(ctx, bookingID); err != nil {
			// A concurrent cancel can win between the read and the update;
			// the update then matches no confirmed row.
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(booking.ErrAlreadyCanceled, ErrValidation)
			}
			return errs.Mark(err, ErrStorageFailure)
		}

		if snap.PaymentMode == booking.PaymentCredit.String() && snap.MemberID != nil {
			tier, err := booking.TierForDuration(snap.EndMinute - snap.StartMinute)
			if err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
			if err := tx.Credits().Increment(ctx, *snap.MemberID, tier); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
		}

		if snap.TargetKind == string(schedule.TargetClass) {
			if err := tx.Classes().DecrementBooked(ctx, snap.TargetID); err != nil {
				return errs.Mark(err, ErrStorageFailure)
			}
		}
		return nil
	})
}

func (c *bookingCommandsImpl) fetchAll(ctx context.Context, tx shared.Tx, date schedule.Date) ([]schedule.Event, error) {
	var events []schedule.Event
	for _, src := range tx.Sources() {
		fetched, err := src.Fetch(ctx, date, date)
		if err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "source %s unavailable during claim", src.Name()), ErrStorageFailure)
		}
		events = append(events, fetched...)
	}
	return events, nil
}
