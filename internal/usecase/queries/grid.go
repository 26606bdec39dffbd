package queries

import (
	"context"
	"log/slog"
	"sort"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/pkg/errs"
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange = errs.New("invalid date range")
	ErrRangeTooWide     = errs.New("date range exceeds the maximum span")
)

// maxGridSpanDays bounds a single grid read; a week view plus slack.
const maxGridSpanDays = 31

type GridQueries interface {
	Grid(ctx context.Context, from, to schedule.Date, trainerScope *uuid.UUID) (*GridView, error)
}

type gridQueriesImpl struct {
	sources    []schedule.EventSource
	memberRepo shared.MemberRepository
	window     schedule.Window
}

func NewGridQueries(eventSources []schedule.EventSource, memberRepo shared.MemberRepository, window schedule.Window) GridQueries {
	return &gridQueriesImpl{
		sources:    eventSources,
		memberRepo: memberRepo,
		window:     window,
	}
}

// Grid is a pure read: it fetches every source fresh, merges, and returns.
// A failed source degrades to "no events from that feed" plus a warning; a
// missing feed must never block the rest of the grid from rendering.
func (q *gridQueriesImpl) Grid(ctx context.Context, from, to schedule.Date, trainerScope *uuid.UUID) (*GridView, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}
	if from.AddDays(maxGridSpanDays).Before(to) {
		return nil, ErrRangeTooWide
	}

	var (
		events   []schedule.Event
		warnings []string
	)
	for _, src := range q.sources {
		fetched, err := src.Fetch(ctx, from, to)
		if err != nil {
			if infra.IsKind(err, infra.KindSourceUnavailable) {
				slog.Warn("event source unavailable, rendering grid without it",
					"source", src.Name(), "error", err.Error())
				warnings = append(warnings, src.Name())
				continue
			}
			return nil, errs.Wrap(err, "failed to fetch events")
		}
		events = append(events, fetched...)
	}

	if trainerScope != nil {
		events = schedule.ScopeForTarget(events, schedule.Target{
			Kind: schedule.TargetTrainer,
			ID:   *trainerScope,
		})
	}

	grid := schedule.AssembleGrid(q.window, from, to, events)
	return q.toView(ctx, from, to, grid, warnings), nil
}

func (q *gridQueriesImpl) toView(ctx context.Context, from, to schedule.Date, grid map[schedule.SlotKey]schedule.ResolvedSlot, warnings []string) *GridView {
	byDate := make(map[schedule.Date][]SlotView)
	names := newNameCache(q.memberRepo)

	for key, resolved := range grid {
		slot := q.window.SlotInterval(key.Date, key.Index)
		view := SlotView{
			Index:       int(key.Index),
			StartMinute: slot.StartMinute(),
			EndMinute:   slot.EndMinute(),
			State:       string(resolved.State),
			Bookable:    resolved.Bookable,
			Event:       q.toEventView(ctx, resolved, names),
		}
		byDate[key.Date] = append(byDate[key.Date], view)
	}

	days := make([]DayGridView, 0, len(byDate))
	for date := from; !date.After(to); date = date.AddDays(1) {
		slots := byDate[date]
		sort.Slice(slots, func(i, j int) bool { return slots[i].Index < slots[j].Index })
		days = append(days, DayGridView{Date: date.String(), Slots: slots})
	}

	return &GridView{
		From:     from.String(),
		To:       to.String(),
		Days:     days,
		Warnings: warnings,
	}
}

func (q *gridQueriesImpl) toEventView(ctx context.Context, resolved schedule.ResolvedSlot, names *nameCache) *EventView {
	if resolved.Event == nil {
		return nil
	}

	switch e := resolved.Event.(type) {
	case schedule.ClassOccurrence:
		id := e.ID
		return &EventView{
			Kind:        string(schedule.KindClass),
			ID:          &id,
			Name:        e.Name,
			Instructor:  e.Instructor,
			Capacity:    e.Capacity,
			BookedCount: e.BookedCount,
		}
	case schedule.Blackout:
		id := e.ID
		return &EventView{
			Kind:        string(schedule.KindBlackout),
			ID:          &id,
			Description: e.Description,
			TrainerID:   e.TrainerID,
		}
	case schedule.OpenBooking:
		id := e.BookingID
		trainerID := e.TrainerID
		return &EventView{
			Kind:             string(schedule.KindOpenBooking),
			ID:               &id,
			TrainerID:        &trainerID,
			OccupantMemberID: e.MemberID,
			OccupantName:     names.resolve(ctx, e.MemberID, e.GuestName),
		}
	case schedule.TrainerBlock:
		id := e.ID
		trainerID := e.TrainerID
		view := &EventView{
			Kind:      string(schedule.KindTrainerBlock),
			ID:        &id,
			TrainerID: &trainerID,
		}
		if resolved.Segment != nil && resolved.Segment.BookedBy != nil {
			view.OccupantMemberID = resolved.Segment.BookedBy
			view.OccupantName = names.resolve(ctx, resolved.Segment.BookedBy, "")
		}
		return view
	default:
		return nil
	}
}

// nameCache memoizes directory lookups within one grid read so a member
// booked across many slots costs a single query.
type nameCache struct {
	repo  shared.MemberRepository
	known map[uuid.UUID]string
}

func newNameCache(repo shared.MemberRepository) *nameCache {
	return &nameCache{repo: repo, known: make(map[uuid.UUID]string)}
}

func (c *nameCache) resolve(ctx context.Context, memberID *uuid.UUID, guestName string) string {
	if memberID == nil {
		return guestName
	}
	if name, ok := c.known[*memberID]; ok {
		return name
	}

	snap, err := c.repo.FindByID(ctx, *memberID)
	if err != nil {
		slog.Warn("failed to resolve occupant name", "member_id", memberID.String(), "error", err.Error())
		c.known[*memberID] = ""
		return ""
	}
	c.known[*memberID] = snap.DisplayName
	return snap.DisplayName
}
