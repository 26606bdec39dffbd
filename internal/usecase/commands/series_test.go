//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"fitbook/internal/domain/booking"
	"fitbook/internal/pkg/clock"
	"fitbook/internal/usecase/commands"
	"fitbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingCommands struct {
	failDates map[string]error
	claimed   []commands.ClaimInput
}

func (f *fakeBookingCommands) Claim(_ context.Context, in commands.ClaimInput) (*queries.BookingView, error) {
	if err, ok := f.failDates[in.Date.String()]; ok {
		return nil, err
	}
	f.claimed = append(f.claimed, in)
	return &queries.BookingView{
		ID:          uuid.New(),
		Date:        in.Date.String(),
		StartMinute: in.StartMinute,
		EndMinute:   in.EndMinute,
		Status:      "confirmed",
	}, nil
}

func (f *fakeBookingCommands) Cancel(_ context.Context, _ uuid.UUID) error {
	return nil
}

func newSeriesFixture(failDates map[string]error) (*fakeBookingCommands, commands.SeriesCommands) {
	bookings := &fakeBookingCommands{failDates: failDates}
	// 2026-03-01 is a Sunday.
	clk := clock.NewMockClock(time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC))
	series := commands.NewSeriesCommands(bookings, clk, time.UTC)
	return bookings, series
}

func seriesInput(weeks int) commands.SeriesInput {
	return commands.SeriesInput{
		TrainerID:       uuid.New(),
		DayOfWeek:       time.Wednesday,
		StartMinute:     540,
		DurationMinutes: 60,
		WeekCount:       weeks,
		MemberID:        uuid.New(),
		PaymentMode:     booking.PaymentCredit,
	}
}

func TestGenerateSeries(t *testing.T) {
	ctx := context.Background()

	t.Run("books one slot per week starting at next matching weekday", func(t *testing.T) {
		bookings, series := newSeriesFixture(nil)

		result, err := series.Generate(ctx, seriesInput(4))
		require.NoError(t, err)

		require.Len(t, result.Created, 4)
		assert.Empty(t, result.Skipped)

		wantDates := []string{"2026-03-04", "2026-03-11", "2026-03-18", "2026-03-25"}
		for i, in := range bookings.claimed {
			assert.Equal(t, wantDates[i], in.Date.String())
			assert.Equal(t, 540, in.StartMinute)
			assert.Equal(t, 600, in.EndMinute)
		}
	})

	t.Run("conflicting week is skipped, remaining weeks still book", func(t *testing.T) {
		_, series := newSeriesFixture(map[string]error{
			"2026-04-01": commands.ErrSlotUnavailable, // week 5
		})

		result, err := series.Generate(ctx, seriesInput(12))
		require.NoError(t, err)

		assert.Len(t, result.Created, 11)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, "2026-04-01", result.Skipped[0].Date)
		assert.Equal(t, commands.SkipSlotUnavailable, result.Skipped[0].Reason)
	})

	t.Run("insufficient credit skips without aborting the series", func(t *testing.T) {
		_, series := newSeriesFixture(map[string]error{
			"2026-03-04": commands.ErrInsufficientCredit,
			"2026-03-11": commands.ErrInsufficientCredit,
		})

		result, err := series.Generate(ctx, seriesInput(3))
		require.NoError(t, err)

		assert.Len(t, result.Created, 1)
		require.Len(t, result.Skipped, 2)
		for _, skip := range result.Skipped {
			assert.Equal(t, commands.SkipInsufficientCredit, skip.Reason)
		}
	})

	t.Run("storage failure on one week does not abort", func(t *testing.T) {
		_, series := newSeriesFixture(map[string]error{
			"2026-03-11": commands.ErrStorageFailure,
		})

		result, err := series.Generate(ctx, seriesInput(3))
		require.NoError(t, err)

		assert.Len(t, result.Created, 2)
		require.Len(t, result.Skipped, 1)
		assert.Equal(t, commands.SkipStorageFailure, result.Skipped[0].Reason)
	})

	t.Run("week count bounds", func(t *testing.T) {
		_, series := newSeriesFixture(nil)

		in := seriesInput(0)
		_, err := series.Generate(ctx, in)
		assert.ErrorIs(t, err, commands.ErrInvalidSeries)

		in = seriesInput(53)
		_, err = series.Generate(ctx, in)
		assert.ErrorIs(t, err, commands.ErrInvalidSeries)
	})

	t.Run("first occurrence today when weekday matches", func(t *testing.T) {
		bookings, series := newSeriesFixture(nil)

		in := seriesInput(1)
		in.DayOfWeek = time.Sunday

		_, err := series.Generate(ctx, in)
		require.NoError(t, err)
		require.Len(t, bookings.claimed, 1)
		assert.Equal(t, "2026-03-01", bookings.claimed[0].Date.String())
	})
}
