package schedule

import (
	"context"

	"github.com/google/uuid"
)

type EventKind string

const (
	KindClass        EventKind = "class"
	KindBlackout     EventKind = "blackout"
	KindOpenBooking  EventKind = "open_booking"
	KindTrainerBlock EventKind = "trainer_block"
)

// Event is one time-based occurrence pulled from an event source. The grid
// assembler and claim validation only ever see this interface.
type Event interface {
	EventKind() EventKind
}

// EventSource is a read-only feed of events for a date range. Implementations
// make no caching guarantees: callers must re-fetch whenever they need a
// consistent view (in particular at claim time).
type EventSource interface {
	Name() string
	Fetch(ctx context.Context, from, to Date) ([]Event, error)
}

type ClassOccurrence struct {
	ID          uuid.UUID
	Name        string
	Instructor  string
	Capacity    int
	BookedCount int
	Interval    TimeInterval
}

func (ClassOccurrence) EventKind() EventKind { return KindClass }

func (c ClassOccurrence) Remaining() int {
	if c.BookedCount >= c.Capacity {
		return 0
	}
	return c.Capacity - c.BookedCount
}

func (c ClassOccurrence) Full() bool { return c.Remaining() == 0 }

type BlackoutScope string

const (
	ScopeAllTrainers     BlackoutScope = "all_trainers"
	ScopeSpecificTrainer BlackoutScope = "specific_trainer"
)

type Blackout struct {
	ID          uuid.UUID
	Description string
	Scope       BlackoutScope
	TrainerID   *uuid.UUID // set iff Scope is ScopeSpecificTrainer
	Interval    TimeInterval
}

func (Blackout) EventKind() EventKind { return KindBlackout }

func (b Blackout) AppliesTo(trainerID uuid.UUID) bool {
	if b.Scope == ScopeAllTrainers {
		return true
	}
	return b.TrainerID != nil && *b.TrainerID == trainerID
}

// OpenBooking is an already-claimed standalone PT appointment. It renders as
// "booked" even when no availability block backs it, which is how legacy and
// guest bookings keep their time protected.
type OpenBooking struct {
	BookingID uuid.UUID
	TrainerID uuid.UUID
	MemberID  *uuid.UUID
	GuestName string
	Interval  TimeInterval
}

func (OpenBooking) EventKind() EventKind { return KindOpenBooking }

// Segment is one independently bookable sub-interval of a trainer's
// availability block.
type Segment struct {
	Interval TimeInterval
	BookedBy *uuid.UUID
}

func (s Segment) IsBooked() bool { return s.BookedBy != nil }

type TrainerBlock struct {
	ID        uuid.UUID
	TrainerID uuid.UUID
	Segments  []Segment
}

func (TrainerBlock) EventKind() EventKind { return KindTrainerBlock }

// SegmentAt returns the first segment overlapping iv, if any.
func (b TrainerBlock) SegmentAt(iv TimeInterval) (Segment, bool) {
	for _, seg := range b.Segments {
		if seg.Interval.Overlaps(iv) {
			return seg, true
		}
	}
	return Segment{}, false
}

type TargetKind string

const (
	TargetTrainer TargetKind = "trainer"
	TargetClass   TargetKind = "class"
)

// Target names the resource a booking claims: a trainer's time or a seat in a
// class occurrence.
type Target struct {
	Kind TargetKind
	ID   uuid.UUID
}

func (t Target) IsValid() bool {
	return (t.Kind == TargetTrainer || t.Kind == TargetClass) && t.ID != uuid.Nil
}
