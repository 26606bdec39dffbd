package repository

import (
	"context"
	"errors"

	"fitbook/internal/domain/booking"
	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeCheckViolation     = "23514"
)

func isConflictErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgErrCodeUniqueViolation, pgErrCodeExclusionViolation, pgErrCodeCheckViolation:
		return true
	default:
		return false
	}
}

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

const createBookingSQL = `
INSERT INTO bookings (
	id, target_kind, target_id, day, start_minute, end_minute,
	member_id, guest_name, payment_mode, status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	iv := b.Interval()

	var memberID pgtype.UUID
	if id := b.Subject().MemberID(); id != nil {
		memberID = pgtype.UUID{Bytes: *id, Valid: true}
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, createBookingSQL,
		b.ID(),
		string(b.Target().Kind),
		b.Target().ID,
		pgconv.DateToPgtype(iv.Date()),
		iv.StartMinute(),
		iv.EndMinute(),
		memberID,
		pgconv.TextFromString(b.Subject().GuestName()),
		b.PaymentMode().String(),
		b.Status().String(),
		b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		if isConflictErr(err) {
			return uuid.Nil, infra.WrapRepoErr("booking overlaps an existing booking", err, infra.KindConflict)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return id, nil
}

const existsOverlappingSQL = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE status = 'confirmed'
	  AND target_id = $1
	  AND day = $2
	  AND start_minute < $4
	  AND $3 < end_minute
)`

func (r *BookingRepository) ExistsOverlapping(ctx context.Context, target schedule.Target, iv schedule.TimeInterval) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, existsOverlappingSQL,
		target.ID,
		pgconv.DateToPgtype(iv.Date()),
		iv.StartMinute(),
		iv.EndMinute(),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping bookings", err)
	}
	return exists, nil
}

const findBookingByIDSQL = `
SELECT id, target_kind, target_id, day, start_minute, end_minute,
       member_id, guest_name, payment_mode, status, created_at
FROM bookings
WHERE id = $1`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap      shared.BookingSnapshot
		day       pgtype.Date
		memberID  pgtype.UUID
		guestName pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&snap.ID, &snap.TargetKind, &snap.TargetID, &day,
		&snap.StartMinute, &snap.EndMinute,
		&memberID, &guestName, &snap.PaymentMode, &snap.Status, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	snap.Date = pgconv.DateFromPgtype(day)
	snap.MemberID = pgconv.UUIDPtrFromPgtype(memberID)
	snap.GuestName = pgconv.StringFromPgtype(guestName)
	snap.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &snap, nil
}

const markCanceledSQL = `
UPDATE bookings SET status = 'canceled' WHERE id = $1 AND status = 'confirmed'`

func (r *BookingRepository) MarkCanceled(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, markCanceledSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no confirmed booking to cancel", nil, infra.KindNotFound)
	}
	return nil
}
