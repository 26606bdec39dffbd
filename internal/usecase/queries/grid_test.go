//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/usecase/queries"
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name    string
	events  []schedule.Event
	err     error
	fetches int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, _, _ schedule.Date) ([]schedule.Event, error) {
	s.fetches++
	return s.events, s.err
}

type stubMemberRepo struct {
	names map[uuid.UUID]string
	calls int
}

func (s *stubMemberRepo) FindByEmail(_ context.Context, _ string) (*shared.MemberSnapshot, error) {
	return nil, infra.WrapRepoErr("member not found", errors.New("no rows"), infra.KindNotFound)
}

func (s *stubMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.MemberSnapshot, error) {
	s.calls++
	name, ok := s.names[id]
	if !ok {
		return nil, infra.WrapRepoErr("member not found", errors.New("no rows"), infra.KindNotFound)
	}
	return &shared.MemberSnapshot{ID: id, DisplayName: name}, nil
}

func mustIv(t *testing.T, date schedule.Date, start, end int) schedule.TimeInterval {
	t.Helper()
	iv, err := schedule.NewTimeInterval(date, start, end)
	require.NoError(t, err)
	return iv
}

func newGridFixture(members *stubMemberRepo, sources ...schedule.EventSource) queries.GridQueries {
	if members == nil {
		members = &stubMemberRepo{}
	}
	return queries.NewGridQueries(sources, members, schedule.DefaultWindow())
}

func TestGrid(t *testing.T) {
	ctx := context.Background()
	date := schedule.NewDate(2026, time.March, 2)

	t.Run("renders one day of slots", func(t *testing.T) {
		q := newGridFixture(nil)

		grid, err := q.Grid(ctx, date, date, nil)
		require.NoError(t, err)

		require.Len(t, grid.Days, 1)
		assert.Equal(t, "2026-03-02", grid.Days[0].Date)
		assert.Len(t, grid.Days[0].Slots, 32)
		assert.Empty(t, grid.Warnings)

		first := grid.Days[0].Slots[0]
		assert.Equal(t, 360, first.StartMinute)
		assert.Equal(t, "available", first.State)
		assert.True(t, first.Bookable)
	})

	t.Run("failed source degrades with a warning", func(t *testing.T) {
		trainerID := uuid.New()
		healthy := &stubSource{name: "availability", events: []schedule.Event{
			schedule.TrainerBlock{
				ID:        uuid.New(),
				TrainerID: trainerID,
				Segments:  []schedule.Segment{{Interval: mustIv(t, date, 540, 600)}},
			},
		}}
		broken := &stubSource{
			name: "blackouts",
			err:  infra.WrapRepoErr("feed down", errors.New("timeout"), infra.KindSourceUnavailable),
		}
		q := newGridFixture(nil, healthy, broken)

		grid, err := q.Grid(ctx, date, date, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"blackouts"}, grid.Warnings)
		slot := grid.Days[0].Slots[6]
		assert.Equal(t, "occupied", slot.State)
		require.NotNil(t, slot.Event)
		assert.Equal(t, "trainer_block", slot.Event.Kind)
	})

	t.Run("non-source errors abort the read", func(t *testing.T) {
		broken := &stubSource{name: "classes", err: errors.New("connection refused")}
		q := newGridFixture(nil, broken)

		_, err := q.Grid(ctx, date, date, nil)
		assert.Error(t, err)
	})

	t.Run("trainer scope hides other trainers' blocks", func(t *testing.T) {
		mine := uuid.New()
		other := uuid.New()
		src := &stubSource{name: "availability", events: []schedule.Event{
			schedule.TrainerBlock{
				ID: uuid.New(), TrainerID: mine,
				Segments: []schedule.Segment{{Interval: mustIv(t, date, 540, 600)}},
			},
			schedule.TrainerBlock{
				ID: uuid.New(), TrainerID: other,
				Segments: []schedule.Segment{{Interval: mustIv(t, date, 600, 660)}},
			},
		}}
		q := newGridFixture(nil, src)

		grid, err := q.Grid(ctx, date, date, &mine)
		require.NoError(t, err)

		slots := grid.Days[0].Slots
		assert.Equal(t, "occupied", slots[6].State)
		assert.Equal(t, "available", slots[8].State, "other trainer's block must be filtered out")
	})

	t.Run("occupant names resolve once per member", func(t *testing.T) {
		memberID := uuid.New()
		members := &stubMemberRepo{names: map[uuid.UUID]string{memberID: "Jordan Lee"}}
		src := &stubSource{name: "availability", events: []schedule.Event{
			schedule.TrainerBlock{
				ID:        uuid.New(),
				TrainerID: uuid.New(),
				Segments: []schedule.Segment{
					{Interval: mustIv(t, date, 540, 600), BookedBy: &memberID},
					{Interval: mustIv(t, date, 600, 660), BookedBy: &memberID},
				},
			},
		}}
		q := newGridFixture(members, src)

		grid, err := q.Grid(ctx, date, date, nil)
		require.NoError(t, err)

		slot := grid.Days[0].Slots[6]
		require.NotNil(t, slot.Event)
		assert.Equal(t, "Jordan Lee", slot.Event.OccupantName)
		assert.Equal(t, 1, members.calls)
	})

	t.Run("invalid range", func(t *testing.T) {
		q := newGridFixture(nil)

		_, err := q.Grid(ctx, date, date.AddDays(-1), nil)
		assert.ErrorIs(t, err, queries.ErrInvalidDateRange)

		_, err = q.Grid(ctx, date, date.AddDays(40), nil)
		assert.ErrorIs(t, err, queries.ErrRangeTooWide)
	})
}
