package shared

import (
	"context"

	"fitbook/internal/domain/booking"
	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

// Tx exposes every repository bound to one open transaction. Claim-time
// re-validation uses Sources() so the live read and the write commit or roll
// back together.
type Tx interface {
	Bookings() BookingRepository
	Credits() CreditRepository
	Classes() ClassRepository
	Sources() []schedule.EventSource
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// ExistsOverlapping closes the race window between a grid read and a
	// claim: it re-checks live rows, and the storage-level exclusion
	// constraint backstops it under concurrency.
	ExistsOverlapping(ctx context.Context, target schedule.Target, iv schedule.TimeInterval) (bool, error)
	MarkCanceled(ctx context.Context, id uuid.UUID) error
}

type CreditRepository interface {
	// Decrement is a conditional single-statement debit; it fails with a
	// conflict kind instead of ever producing a negative balance.
	Decrement(ctx context.Context, memberID uuid.UUID, tier booking.CreditTier) error
	Increment(ctx context.Context, memberID uuid.UUID, tier booking.CreditTier) error
	Balance(ctx context.Context, memberID uuid.UUID, tier booking.CreditTier) (int, error)
}

type ClassRepository interface {
	// IncrementBooked bumps booked_count only while below capacity.
	IncrementBooked(ctx context.Context, occurrenceID uuid.UUID) error
	DecrementBooked(ctx context.Context, occurrenceID uuid.UUID) error
}

type MemberRepository interface {
	FindByEmail(ctx context.Context, email string) (*MemberSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*MemberSnapshot, error)
}
