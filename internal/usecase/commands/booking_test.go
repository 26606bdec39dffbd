//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitbook/internal/domain/booking"
	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/clock"
	"fitbook/internal/usecase/commands"
	"fitbook/internal/usecase/queries"
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeBookingRepo struct {
	created     []*booking.Booking
	createErr   error
	overlapping bool
	overlapErr  error
	snapshot    *shared.BookingSnapshot
	findErr     error
	canceled    []uuid.UUID
	cancelErr   error
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, b)
	return b.ID(), nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.snapshot, nil
}

func (f *fakeBookingRepo) ExistsOverlapping(_ context.Context, _ schedule.Target, _ schedule.TimeInterval) (bool, error) {
	return f.overlapping, f.overlapErr
}

func (f *fakeBookingRepo) MarkCanceled(_ context.Context, id uuid.UUID) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceled = append(f.canceled, id)
	return nil
}

type fakeCreditRepo struct {
	balance    int
	decrements []booking.CreditTier
	increments []booking.CreditTier
}

func (f *fakeCreditRepo) Decrement(_ context.Context, _ uuid.UUID, tier booking.CreditTier) error {
	if f.balance < 1 {
		return infra.WrapRepoErr("insufficient credit balance", errors.New("no rows updated"), infra.KindConflict)
	}
	f.balance--
	f.decrements = append(f.decrements, tier)
	return nil
}

func (f *fakeCreditRepo) Increment(_ context.Context, _ uuid.UUID, tier booking.CreditTier) error {
	f.balance++
	f.increments = append(f.increments, tier)
	return nil
}

func (f *fakeCreditRepo) Balance(_ context.Context, _ uuid.UUID, _ booking.CreditTier) (int, error) {
	return f.balance, nil
}

type fakeClassRepo struct {
	capacity   int
	booked     int
	increments int
	decrements int
}

func (f *fakeClassRepo) IncrementBooked(_ context.Context, _ uuid.UUID) error {
	if f.booked >= f.capacity {
		return infra.WrapRepoErr("class occurrence is full", errors.New("no rows updated"), infra.KindConflict)
	}
	f.booked++
	f.increments++
	return nil
}

func (f *fakeClassRepo) DecrementBooked(_ context.Context, _ uuid.UUID) error {
	f.booked--
	f.decrements++
	return nil
}

type fakeSource struct {
	name   string
	events []schedule.Event
	err    error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, _, _ schedule.Date) ([]schedule.Event, error) {
	return f.events, f.err
}

type fakeTx struct {
	bookings *fakeBookingRepo
	credits  *fakeCreditRepo
	classes  *fakeClassRepo
	sources  []schedule.EventSource
}

func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Credits() shared.CreditRepository   { return t.credits }
func (t *fakeTx) Classes() shared.ClassRepository    { return t.classes }
func (t *fakeTx) Sources() []schedule.EventSource    { return t.sources }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(_ context.Context, _ func(ctx context.Context, db db.DBTX) error) error {
	return nil
}

type fakeBookingQueries struct {
	view *queries.BookingView
	err  error
}

func (f *fakeBookingQueries) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	if f.err != nil {
		return nil, f.err
	}
	view := *f.view
	view.ID = id
	return &view, nil
}

func (f *fakeBookingQueries) ListByMember(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return nil, nil
}

// --- fixtures ---

type claimFixture struct {
	tx   *fakeTx
	cmds commands.BookingCommands
}

func newClaimFixture(t *testing.T, sources ...schedule.EventSource) *claimFixture {
	t.Helper()
	tx := &fakeTx{
		bookings: &fakeBookingRepo{},
		credits:  &fakeCreditRepo{balance: 3},
		classes:  &fakeClassRepo{capacity: 10},
		sources:  sources,
	}
	clk := clock.NewMockClock(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC))
	cmds := commands.NewBookingCommands(
		&fakeUoW{tx: tx},
		&fakeBookingQueries{view: &queries.BookingView{Status: "confirmed"}},
		schedule.DefaultWindow(),
		clk,
	)
	return &claimFixture{tx: tx, cmds: cmds}
}

func trainerClaim(trainerID, memberID uuid.UUID, mode booking.PaymentMode) commands.ClaimInput {
	return commands.ClaimInput{
		Target:      schedule.Target{Kind: schedule.TargetTrainer, ID: trainerID},
		Date:        schedule.NewDate(2026, time.March, 2),
		StartMinute: 540,
		EndMinute:   600,
		Subject:     booking.NewMemberSubject(memberID),
		PaymentMode: mode,
	}
}

// --- tests ---

func TestClaim(t *testing.T) {
	ctx := context.Background()
	trainerID := uuid.New()
	memberID := uuid.New()
	date := schedule.NewDate(2026, time.March, 2)

	t.Run("successful credit claim debits one credit", func(t *testing.T) {
		fx := newClaimFixture(t)

		view, err := fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCredit))
		require.NoError(t, err)
		require.NotNil(t, view)

		require.Len(t, fx.tx.bookings.created, 1)
		assert.Equal(t, []booking.CreditTier{booking.Tier60}, fx.tx.credits.decrements)
		assert.Equal(t, 2, fx.tx.credits.balance)
	})

	t.Run("cart claim leaves credits untouched", func(t *testing.T) {
		fx := newClaimFixture(t)

		_, err := fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCart))
		require.NoError(t, err)
		assert.Empty(t, fx.tx.credits.decrements)
	})

	t.Run("occupied slot rejects claim before any write", func(t *testing.T) {
		iv, err := schedule.NewTimeInterval(date, 540, 600)
		require.NoError(t, err)
		src := &fakeSource{name: "open_bookings", events: []schedule.Event{
			schedule.OpenBooking{BookingID: uuid.New(), TrainerID: trainerID, Interval: iv},
		}}
		fx := newClaimFixture(t, src)

		_, err = fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCredit))
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Empty(t, fx.tx.bookings.created)
		assert.Empty(t, fx.tx.credits.decrements)
	})

	t.Run("another trainer's events do not block the claim", func(t *testing.T) {
		iv, err := schedule.NewTimeInterval(date, 540, 600)
		require.NoError(t, err)
		src := &fakeSource{name: "open_bookings", events: []schedule.Event{
			schedule.OpenBooking{BookingID: uuid.New(), TrainerID: uuid.New(), Interval: iv},
		}}
		fx := newClaimFixture(t, src)

		_, err = fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCart))
		assert.NoError(t, err)
	})

	t.Run("insufficient credit rejects claim", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.credits.balance = 0

		_, err := fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCredit))
		assert.ErrorIs(t, err, commands.ErrInsufficientCredit)
		assert.Empty(t, fx.tx.bookings.created)
	})

	t.Run("unsupported duration is a validation error", func(t *testing.T) {
		fx := newClaimFixture(t)
		in := trainerClaim(trainerID, memberID, booking.PaymentCredit)
		in.EndMinute = in.StartMinute + 45

		_, err := fx.cmds.Claim(ctx, in)
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("overlapping row in storage rejects claim", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.bookings.overlapping = true

		_, err := fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCart))
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("constraint conflict on insert rejects claim", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.bookings.createErr = infra.WrapRepoErr("booking conflicts with an existing booking",
			errors.New("exclusion violation"), infra.KindConflict)

		_, err := fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCart))
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
	})

	t.Run("source failure fails the claim instead of degrading", func(t *testing.T) {
		src := &fakeSource{
			name: "blackouts",
			err:  infra.WrapRepoErr("blackout feed down", errors.New("timeout"), infra.KindSourceUnavailable),
		}
		fx := newClaimFixture(t, src)

		_, err := fx.cmds.Claim(ctx, trainerClaim(trainerID, memberID, booking.PaymentCart))
		assert.ErrorIs(t, err, commands.ErrStorageFailure)
		assert.Empty(t, fx.tx.bookings.created)
	})

	t.Run("class claim takes a seat", func(t *testing.T) {
		classID := uuid.New()
		iv, err := schedule.NewTimeInterval(date, 540, 600)
		require.NoError(t, err)
		src := &fakeSource{name: "classes", events: []schedule.Event{
			schedule.ClassOccurrence{ID: classID, Name: "Spin", Capacity: 10, BookedCount: 4, Interval: iv},
		}}
		fx := newClaimFixture(t, src)
		fx.tx.classes.booked = 4

		in := trainerClaim(trainerID, memberID, booking.PaymentCart)
		in.Target = schedule.Target{Kind: schedule.TargetClass, ID: classID}

		_, err = fx.cmds.Claim(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, fx.tx.classes.increments)
	})

	t.Run("full class rejects claim", func(t *testing.T) {
		classID := uuid.New()
		iv, err := schedule.NewTimeInterval(date, 540, 600)
		require.NoError(t, err)
		src := &fakeSource{name: "classes", events: []schedule.Event{
			schedule.ClassOccurrence{ID: classID, Name: "Spin", Capacity: 5, BookedCount: 5, Interval: iv},
		}}
		fx := newClaimFixture(t, src)
		fx.tx.classes.capacity = 5
		fx.tx.classes.booked = 5

		in := trainerClaim(trainerID, memberID, booking.PaymentCart)
		in.Target = schedule.Target{Kind: schedule.TargetClass, ID: classID}

		_, err = fx.cmds.Claim(ctx, in)
		assert.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Zero(t, fx.tx.classes.increments)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()
	memberID := uuid.New()

	snapshot := func(targetKind, paymentMode string) *shared.BookingSnapshot {
		return &shared.BookingSnapshot{
			ID:          bookingID,
			TargetKind:  targetKind,
			TargetID:    uuid.New(),
			Date:        schedule.NewDate(2026, time.March, 2),
			StartMinute: 540,
			EndMinute:   600,
			MemberID:    &memberID,
			PaymentMode: paymentMode,
			Status:      "confirmed",
		}
	}

	t.Run("credit cancel refunds the tier", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.bookings.snapshot = snapshot("trainer", "credit")

		require.NoError(t, fx.cmds.Cancel(ctx, bookingID))
		assert.Equal(t, []uuid.UUID{bookingID}, fx.tx.bookings.canceled)
		assert.Equal(t, []booking.CreditTier{booking.Tier60}, fx.tx.credits.increments)
	})

	t.Run("class cancel releases the seat", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.classes.booked = 3
		fx.tx.bookings.snapshot = snapshot("class", "cart")

		require.NoError(t, fx.cmds.Cancel(ctx, bookingID))
		assert.Equal(t, 1, fx.tx.classes.decrements)
		assert.Empty(t, fx.tx.credits.increments)
	})

	t.Run("already canceled booking is rejected", func(t *testing.T) {
		fx := newClaimFixture(t)
		snap := snapshot("trainer", "credit")
		snap.Status = "canceled"
		fx.tx.bookings.snapshot = snap

		err := fx.cmds.Cancel(ctx, bookingID)
		assert.ErrorIs(t, err, booking.ErrAlreadyCanceled)
		assert.Empty(t, fx.tx.bookings.canceled)
	})

	t.Run("losing a concurrent cancel is already canceled", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.bookings.snapshot = snapshot("trainer", "credit")
		fx.tx.bookings.cancelErr = infra.WrapRepoErr("no confirmed booking to cancel", nil, infra.KindNotFound)

		err := fx.cmds.Cancel(ctx, bookingID)
		assert.ErrorIs(t, err, booking.ErrAlreadyCanceled)
		assert.Empty(t, fx.tx.credits.increments)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		fx := newClaimFixture(t)
		fx.tx.bookings.findErr = infra.WrapRepoErr("booking not found", errors.New("no rows"), infra.KindNotFound)

		err := fx.cmds.Cancel(ctx, bookingID)
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}
