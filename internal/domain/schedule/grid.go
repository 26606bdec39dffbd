package schedule

import "errors"

var (
	ErrSlotOccupied  = errors.New("slot is occupied")
	ErrOutsideWindow = errors.New("interval is outside the bookable window")
)

type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotOccupied  SlotState = "occupied"
)

type SlotKey struct {
	Date  Date
	Index SlotIndex
}

// ResolvedSlot is the single occupancy verdict for one grid cell. Occupied
// slots carry the winning event in full detail; any caller-facing redaction
// happens at the API boundary, never here.
type ResolvedSlot struct {
	State    SlotState
	Bookable bool
	Event    Event
	// Segment is set when Event is a TrainerBlock: the sub-interval that won
	// the slot.
	Segment *Segment
}

func (r ResolvedSlot) IsAvailable() bool { return r.State == SlotAvailable }

// resolverFunc inspects one slot and either claims it or passes (nil).
type resolverFunc func(slot TimeInterval) *ResolvedSlot

// newResolvers builds the precedence chain. The order is a product decision,
// not an accident:
//
//  1. class occurrence  (public-facing, capacity-bound, always wins display)
//  2. blackout          (admin unavailability overrides offered time)
//  3. open booking      (claimed PT time blocks the slot even without a block)
//  4. trainer segment   (offered availability, booked or open)
//
// First non-nil verdict wins; anything else is Available.
func newResolvers(events []Event) []resolverFunc {
	var (
		classes   []ClassOccurrence
		blackouts []Blackout
		open      []OpenBooking
		blocks    []TrainerBlock
	)
	for _, ev := range events {
		switch e := ev.(type) {
		case ClassOccurrence:
			classes = append(classes, e)
		case Blackout:
			blackouts = append(blackouts, e)
		case OpenBooking:
			open = append(open, e)
		case TrainerBlock:
			blocks = append(blocks, e)
		}
	}

	return []resolverFunc{
		func(slot TimeInterval) *ResolvedSlot {
			for _, c := range classes {
				if c.Interval.Overlaps(slot) {
					return &ResolvedSlot{State: SlotOccupied, Bookable: !c.Full(), Event: c}
				}
			}
			return nil
		},
		func(slot TimeInterval) *ResolvedSlot {
			for _, b := range blackouts {
				if b.Interval.Overlaps(slot) {
					return &ResolvedSlot{State: SlotOccupied, Bookable: false, Event: b}
				}
			}
			return nil
		},
		func(slot TimeInterval) *ResolvedSlot {
			for _, o := range open {
				if o.Interval.Overlaps(slot) {
					return &ResolvedSlot{State: SlotOccupied, Bookable: false, Event: o}
				}
			}
			return nil
		},
		// Known multiplicity limitation: when segments from two trainers
		// cover the same slot, the first block in source order wins and the
		// grid shows a single occupant. The underlying model still allows
		// both blocks to coexist.
		func(slot TimeInterval) *ResolvedSlot {
			for _, blk := range blocks {
				if seg, ok := blk.SegmentAt(slot); ok {
					segCopy := seg
					return &ResolvedSlot{
						State:    SlotOccupied,
						Bookable: !seg.IsBooked(),
						Event:    blk,
						Segment:  &segCopy,
					}
				}
			}
			return nil
		},
	}
}

func resolveSlot(resolvers []resolverFunc, slot TimeInterval) ResolvedSlot {
	for _, resolve := range resolvers {
		if r := resolve(slot); r != nil {
			return *r
		}
	}
	return ResolvedSlot{State: SlotAvailable, Bookable: true}
}

// AssembleGrid discretizes [from, to] into window slots and resolves each one
// against the supplied events. Pure: no state is read or written beyond the
// arguments, so repeated calls with the same inputs yield identical output.
func AssembleGrid(w Window, from, to Date, events []Event) map[SlotKey]ResolvedSlot {
	resolvers := newResolvers(events)
	grid := make(map[SlotKey]ResolvedSlot)

	for date := from; !date.After(to); date = date.AddDays(1) {
		for idx := range w.SlotCount() {
			slot := w.SlotInterval(date, SlotIndex(idx))
			grid[SlotKey{Date: date, Index: SlotIndex(idx)}] = resolveSlot(resolvers, slot)
		}
	}
	return grid
}

// EvaluateClaim re-runs the exact grid resolution over every slot the
// requested interval covers and decides whether target may take it. Keeping
// this on the same resolver chain as AssembleGrid guarantees "what the grid
// shows as bookable" and "what claim accepts" cannot drift apart.
//
// Callers must pass events scoped to the claim (ScopeForTarget) so that a
// different trainer's offered availability does not mask the target's own.
func EvaluateClaim(w Window, iv TimeInterval, events []Event, target Target) error {
	if !w.Contains(iv) {
		return ErrOutsideWindow
	}
	covered := w.SlotsCovered(iv)
	if len(covered) == 0 {
		return ErrOutsideWindow
	}

	resolvers := newResolvers(events)
	for _, idx := range covered {
		slot := w.SlotInterval(iv.Date(), idx)
		resolved := resolveSlot(resolvers, slot)

		switch target.Kind {
		case TargetClass:
			// A class claim needs the slot occupied by that very class with
			// seats remaining.
			c, ok := resolved.Event.(ClassOccurrence)
			if !ok || c.ID != target.ID || !resolved.Bookable {
				return ErrSlotOccupied
			}
		case TargetTrainer:
			if resolved.IsAvailable() {
				continue
			}
			blk, ok := resolved.Event.(TrainerBlock)
			if !ok || blk.TrainerID != target.ID || !resolved.Bookable {
				return ErrSlotOccupied
			}
		default:
			return ErrSlotOccupied
		}
	}
	return nil
}

// ScopeForTarget filters a raw event list down to what matters for claiming
// target: every class, blackouts that apply, and only the target trainer's
// blocks and open bookings. Class claims keep classes and facility-wide
// blackouts only.
func ScopeForTarget(events []Event, target Target) []Event {
	scoped := make([]Event, 0, len(events))
	for _, ev := range events {
		switch e := ev.(type) {
		case ClassOccurrence:
			scoped = append(scoped, e)
		case Blackout:
			if target.Kind == TargetClass {
				if e.Scope == ScopeAllTrainers {
					scoped = append(scoped, e)
				}
			} else if e.AppliesTo(target.ID) {
				scoped = append(scoped, e)
			}
		case OpenBooking:
			if target.Kind == TargetTrainer && e.TrainerID == target.ID {
				scoped = append(scoped, e)
			}
		case TrainerBlock:
			if target.Kind == TargetTrainer && e.TrainerID == target.ID {
				scoped = append(scoped, e)
			}
		}
	}
	return scoped
}
