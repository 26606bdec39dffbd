package sources

import (
	"context"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type OpenBookingSource struct {
	db db.DBTX
}

func NewOpenBookingSource(db db.DBTX) *OpenBookingSource {
	return &OpenBookingSource{db: db}
}

func (s *OpenBookingSource) Name() string { return "open_bookings" }

const fetchOpenBookingsSQL = `
SELECT id, target_id, member_id, guest_name, day, start_minute, end_minute
FROM bookings
WHERE status = 'confirmed' AND target_kind = 'trainer' AND day BETWEEN $1 AND $2
ORDER BY day, start_minute`

func (s *OpenBookingSource) Fetch(ctx context.Context, from, to schedule.Date) ([]schedule.Event, error) {
	rows, err := s.db.Query(ctx, fetchOpenBookingsSQL, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("open booking feed unavailable", err, infra.KindSourceUnavailable)
	}
	defer rows.Close()

	var events []schedule.Event
	for rows.Next() {
		var (
			o          schedule.OpenBooking
			memberID   pgtype.UUID
			guestName  pgtype.Text
			day        pgtype.Date
			start, end int
		)
		if err := rows.Scan(&o.BookingID, &o.TrainerID, &memberID, &guestName, &day, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan open booking", err, infra.KindSourceUnavailable)
		}

		iv, err := schedule.NewTimeInterval(pgconv.DateFromPgtype(day), start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("open booking has invalid interval", err, infra.KindSourceUnavailable)
		}
		o.Interval = iv
		o.MemberID = pgconv.UUIDPtrFromPgtype(memberID)
		o.GuestName = pgconv.StringFromPgtype(guestName)
		events = append(events, o)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("open booking feed unavailable", err, infra.KindSourceUnavailable)
	}
	return events, nil
}
