package readstore

import (
	"context"

	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"
	"fitbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const findBookingViewSQL = `
SELECT bk.id, bk.target_kind, bk.target_id, bk.day, bk.start_minute, bk.end_minute,
       bk.member_id, bk.guest_name, m.display_name, bk.payment_mode, bk.status, bk.created_at
FROM bookings bk
LEFT JOIN members m ON m.id = bk.member_id
WHERE bk.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		day         pgtype.Date
		memberID    pgtype.UUID
		guestName   pgtype.Text
		displayName pgtype.Text
		createdAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBookingViewSQL, id).Scan(
		&view.ID, &view.TargetKind, &view.TargetID, &day,
		&view.StartMinute, &view.EndMinute,
		&memberID, &guestName, &displayName, &view.PaymentMode, &view.Status, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.Date = pgconv.DateFromPgtype(day).String()
	view.MemberID = pgconv.UUIDPtrFromPgtype(memberID)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	if displayName.Valid {
		view.SubjectName = displayName.String
	} else {
		view.SubjectName = guestName.String
	}
	return &view, nil
}

const listBookingsByMemberSQL = `
SELECT id, target_kind, target_id, day, start_minute, end_minute, payment_mode, status, created_at
FROM bookings
WHERE member_id = $1
ORDER BY day DESC, start_minute DESC`

func (r *BookingReadStore) FindByMemberID(ctx context.Context, memberID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, listBookingsByMemberSQL, memberID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by member", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			day       pgtype.Date
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.TargetKind, &item.TargetID, &day,
			&item.StartMinute, &item.EndMinute, &item.PaymentMode, &item.Status, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		item.Date = pgconv.DateFromPgtype(day).String()
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by member", err)
	}
	return items, nil
}
