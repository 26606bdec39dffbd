//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"fitbook/internal/domain/schedule"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T) schedule.Date {
	t.Helper()
	return schedule.NewDate(2026, time.March, 2)
}

func classAt(t *testing.T, date schedule.Date, start, end, capacity, booked int) schedule.ClassOccurrence {
	t.Helper()
	return schedule.ClassOccurrence{
		ID:          uuid.New(),
		Name:        "Spin",
		Instructor:  "Dana",
		Capacity:    capacity,
		BookedCount: booked,
		Interval:    mustInterval(t, date, start, end),
	}
}

func blockAt(t *testing.T, trainerID uuid.UUID, date schedule.Date, segments ...[2]int) schedule.TrainerBlock {
	t.Helper()
	blk := schedule.TrainerBlock{ID: uuid.New(), TrainerID: trainerID}
	for _, seg := range segments {
		blk.Segments = append(blk.Segments, schedule.Segment{
			Interval: mustInterval(t, date, seg[0], seg[1]),
		})
	}
	return blk
}

func TestAssembleGridPrecedence(t *testing.T) {
	w := schedule.DefaultWindow()
	date := day(t)
	trainerID := uuid.New()

	t.Run("empty grid is fully available", func(t *testing.T) {
		grid := schedule.AssembleGrid(w, date, date, nil)
		require.Len(t, grid, w.SlotCount())
		for key, slot := range grid {
			assert.Equal(t, schedule.SlotAvailable, slot.State, "slot %d", key.Index)
			assert.True(t, slot.Bookable)
		}
	})

	t.Run("blackout beats trainer segment", func(t *testing.T) {
		blackout := schedule.Blackout{
			ID:       uuid.New(),
			Scope:    schedule.ScopeAllTrainers,
			Interval: mustInterval(t, date, 540, 600),
		}
		blk := blockAt(t, trainerID, date, [2]int{540, 600})

		grid := schedule.AssembleGrid(w, date, date, []schedule.Event{blk, blackout})

		slot := grid[schedule.SlotKey{Date: date, Index: 6}]
		assert.Equal(t, schedule.SlotOccupied, slot.State)
		assert.False(t, slot.Bookable)
		assert.Equal(t, schedule.KindBlackout, slot.Event.EventKind())
	})

	t.Run("class beats blackout", func(t *testing.T) {
		class := classAt(t, date, 540, 600, 10, 3)
		blackout := schedule.Blackout{
			ID:       uuid.New(),
			Scope:    schedule.ScopeAllTrainers,
			Interval: mustInterval(t, date, 540, 600),
		}

		grid := schedule.AssembleGrid(w, date, date, []schedule.Event{blackout, class})

		slot := grid[schedule.SlotKey{Date: date, Index: 6}]
		assert.Equal(t, schedule.KindClass, slot.Event.EventKind())
		assert.True(t, slot.Bookable)
	})

	t.Run("open booking beats trainer segment", func(t *testing.T) {
		open := schedule.OpenBooking{
			BookingID: uuid.New(),
			TrainerID: trainerID,
			GuestName: "Walk-in",
			Interval:  mustInterval(t, date, 540, 600),
		}
		blk := blockAt(t, trainerID, date, [2]int{540, 600})

		grid := schedule.AssembleGrid(w, date, date, []schedule.Event{blk, open})

		slot := grid[schedule.SlotKey{Date: date, Index: 6}]
		assert.Equal(t, schedule.KindOpenBooking, slot.Event.EventKind())
		assert.False(t, slot.Bookable)
	})

	t.Run("full class is occupied but not bookable", func(t *testing.T) {
		class := classAt(t, date, 540, 600, 5, 5)

		grid := schedule.AssembleGrid(w, date, date, []schedule.Event{class})

		slot := grid[schedule.SlotKey{Date: date, Index: 6}]
		assert.Equal(t, schedule.SlotOccupied, slot.State)
		assert.False(t, slot.Bookable)
	})

	t.Run("booked segment is occupied, open segment bookable", func(t *testing.T) {
		memberID := uuid.New()
		blk := schedule.TrainerBlock{
			ID:        uuid.New(),
			TrainerID: trainerID,
			Segments: []schedule.Segment{
				{Interval: mustInterval(t, date, 540, 570), BookedBy: &memberID},
				{Interval: mustInterval(t, date, 570, 600)},
			},
		}

		grid := schedule.AssembleGrid(w, date, date, []schedule.Event{blk})

		booked := grid[schedule.SlotKey{Date: date, Index: 6}]
		assert.False(t, booked.Bookable)
		require.NotNil(t, booked.Segment)
		assert.True(t, booked.Segment.IsBooked())

		open := grid[schedule.SlotKey{Date: date, Index: 7}]
		assert.True(t, open.Bookable)
	})

	t.Run("first block wins when two trainers cover one slot", func(t *testing.T) {
		first := blockAt(t, trainerID, date, [2]int{540, 600})
		second := blockAt(t, uuid.New(), date, [2]int{540, 600})

		grid := schedule.AssembleGrid(w, date, date, []schedule.Event{first, second})

		slot := grid[schedule.SlotKey{Date: date, Index: 6}]
		blk, ok := slot.Event.(schedule.TrainerBlock)
		require.True(t, ok)
		assert.Equal(t, first.ID, blk.ID)
	})
}

func TestAssembleGridIsDeterministic(t *testing.T) {
	w := schedule.DefaultWindow()
	date := day(t)
	trainerID := uuid.New()

	events := []schedule.Event{
		classAt(t, date, 600, 660, 10, 2),
		blockAt(t, trainerID, date, [2]int{540, 600}, [2]int{660, 720}),
		schedule.Blackout{
			ID:       uuid.New(),
			Scope:    schedule.ScopeAllTrainers,
			Interval: mustInterval(t, date, 720, 780),
		},
	}

	first := schedule.AssembleGrid(w, date, date.AddDays(2), events)
	second := schedule.AssembleGrid(w, date, date.AddDays(2), events)

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(schedule.TimeInterval{})); diff != "" {
		t.Errorf("grid changed between identical assemblies (-first +second):\n%s", diff)
	}
}

func TestEvaluateClaim(t *testing.T) {
	w := schedule.DefaultWindow()
	date := day(t)
	trainerID := uuid.New()
	target := schedule.Target{Kind: schedule.TargetTrainer, ID: trainerID}

	t.Run("available slot accepts trainer claim", func(t *testing.T) {
		iv := mustInterval(t, date, 540, 600)
		assert.NoError(t, schedule.EvaluateClaim(w, iv, nil, target))
	})

	t.Run("own open segment accepts claim", func(t *testing.T) {
		blk := blockAt(t, trainerID, date, [2]int{540, 600})
		iv := mustInterval(t, date, 540, 600)
		assert.NoError(t, schedule.EvaluateClaim(w, iv, []schedule.Event{blk}, target))
	})

	t.Run("booked segment rejects claim", func(t *testing.T) {
		memberID := uuid.New()
		blk := schedule.TrainerBlock{
			ID:        uuid.New(),
			TrainerID: trainerID,
			Segments: []schedule.Segment{
				{Interval: mustInterval(t, date, 540, 600), BookedBy: &memberID},
			},
		}
		iv := mustInterval(t, date, 540, 600)
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, []schedule.Event{blk}, target), schedule.ErrSlotOccupied)
	})

	t.Run("blackout rejects claim", func(t *testing.T) {
		blackout := schedule.Blackout{
			ID:       uuid.New(),
			Scope:    schedule.ScopeAllTrainers,
			Interval: mustInterval(t, date, 540, 600),
		}
		iv := mustInterval(t, date, 570, 630)
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, []schedule.Event{blackout}, target), schedule.ErrSlotOccupied)
	})

	t.Run("partial overlap rejects whole claim", func(t *testing.T) {
		open := schedule.OpenBooking{
			BookingID: uuid.New(),
			TrainerID: trainerID,
			Interval:  mustInterval(t, date, 600, 630),
		}
		iv := mustInterval(t, date, 540, 630)
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, []schedule.Event{open}, target), schedule.ErrSlotOccupied)
	})

	t.Run("outside window rejects claim", func(t *testing.T) {
		iv := mustInterval(t, date, 300, 360)
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, nil, target), schedule.ErrOutsideWindow)
	})

	t.Run("class claim requires that class with seats", func(t *testing.T) {
		class := classAt(t, date, 540, 600, 5, 2)
		classTarget := schedule.Target{Kind: schedule.TargetClass, ID: class.ID}
		iv := mustInterval(t, date, 540, 600)

		assert.NoError(t, schedule.EvaluateClaim(w, iv, []schedule.Event{class}, classTarget))

		otherTarget := schedule.Target{Kind: schedule.TargetClass, ID: uuid.New()}
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, []schedule.Event{class}, otherTarget), schedule.ErrSlotOccupied)

		full := class
		full.BookedCount = full.Capacity
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, []schedule.Event{full}, classTarget), schedule.ErrSlotOccupied)
	})

	t.Run("class claim on empty slot is rejected", func(t *testing.T) {
		classTarget := schedule.Target{Kind: schedule.TargetClass, ID: uuid.New()}
		iv := mustInterval(t, date, 540, 600)
		assert.ErrorIs(t, schedule.EvaluateClaim(w, iv, nil, classTarget), schedule.ErrSlotOccupied)
	})
}

func TestScopeForTarget(t *testing.T) {
	date := day(t)
	trainerID := uuid.New()
	otherTrainer := uuid.New()

	ownBlock := blockAt(t, trainerID, date, [2]int{540, 600})
	otherBlock := blockAt(t, otherTrainer, date, [2]int{540, 600})
	class := classAt(t, date, 600, 660, 10, 0)
	facilityBlackout := schedule.Blackout{
		ID:       uuid.New(),
		Scope:    schedule.ScopeAllTrainers,
		Interval: mustInterval(t, date, 720, 780),
	}
	otherBlackout := schedule.Blackout{
		ID:        uuid.New(),
		Scope:     schedule.ScopeSpecificTrainer,
		TrainerID: &otherTrainer,
		Interval:  mustInterval(t, date, 780, 840),
	}

	events := []schedule.Event{ownBlock, otherBlock, class, facilityBlackout, otherBlackout}

	t.Run("trainer scope keeps own blocks and applicable blackouts", func(t *testing.T) {
		scoped := schedule.ScopeForTarget(events, schedule.Target{Kind: schedule.TargetTrainer, ID: trainerID})
		assert.Len(t, scoped, 3)
		assert.Contains(t, scoped, schedule.Event(ownBlock))
		assert.Contains(t, scoped, schedule.Event(class))
		assert.Contains(t, scoped, schedule.Event(facilityBlackout))
	})

	t.Run("class scope keeps classes and facility blackouts only", func(t *testing.T) {
		scoped := schedule.ScopeForTarget(events, schedule.Target{Kind: schedule.TargetClass, ID: class.ID})
		assert.Len(t, scoped, 2)
		assert.Contains(t, scoped, schedule.Event(class))
		assert.Contains(t, scoped, schedule.Event(facilityBlackout))
	})
}
