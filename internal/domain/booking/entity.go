package booking

import (
	"errors"
	"time"

	"fitbook/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidTarget        = errors.New("invalid booking target")
	ErrInvalidPaymentMode   = errors.New("invalid payment mode")
	ErrInvalidSubject       = errors.New("booking requires a subject")
	ErrCreditRequiresMember = errors.New("credit payment requires a member subject")
	ErrGuestRequiresGuest   = errors.New("guest subject requires guest payment mode")
	ErrAlreadyCanceled      = errors.New("booking is already canceled")
)

type Booking struct {
	id          uuid.UUID
	target      schedule.Target
	interval    schedule.TimeInterval
	subject     SubjectRef
	paymentMode PaymentMode
	status      Status
	createdAt   time.Time
}

func NewBooking(
	target schedule.Target,
	interval schedule.TimeInterval,
	subject SubjectRef,
	paymentMode PaymentMode,
	now time.Time,
) (*Booking, error) {
	if !target.IsValid() {
		return nil, ErrInvalidTarget
	}
	if interval.IsZero() {
		return nil, schedule.ErrInvalidInterval
	}
	if !paymentMode.IsValid() {
		return nil, ErrInvalidPaymentMode
	}
	if subject.IsZero() {
		return nil, ErrInvalidSubject
	}
	if paymentMode == PaymentCredit && subject.IsGuest() {
		return nil, ErrCreditRequiresMember
	}
	if subject.IsGuest() && paymentMode != PaymentGuest {
		return nil, ErrGuestRequiresGuest
	}

	return &Booking{
		id:          uuid.New(),
		target:      target,
		interval:    interval,
		subject:     subject,
		paymentMode: paymentMode,
		status:      StatusConfirmed,
		createdAt:   now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	target schedule.Target,
	interval schedule.TimeInterval,
	subject SubjectRef,
	paymentMode PaymentMode,
	status Status,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		target:      target,
		interval:    interval,
		subject:     subject,
		paymentMode: paymentMode,
		status:      status,
		createdAt:   createdAt,
	}
}

// Cancel soft-cancels the booking; canceled bookings stop occupying their
// slot in every future grid read.
func (b *Booking) Cancel() error {
	if b.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	b.status = StatusCanceled
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status == StatusConfirmed
}

// Tier returns the credit tier this booking's duration bills against.
func (b *Booking) Tier() (CreditTier, error) {
	return TierForDuration(b.interval.DurationMinutes())
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) Target() schedule.Target         { return b.target }
func (b *Booking) Interval() schedule.TimeInterval { return b.interval }
func (b *Booking) Subject() SubjectRef             { return b.subject }
func (b *Booking) PaymentMode() PaymentMode        { return b.paymentMode }
func (b *Booking) Status() Status                  { return b.status }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }
