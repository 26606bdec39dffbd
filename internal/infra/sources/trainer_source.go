package sources

import (
	"context"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type TrainerAvailabilitySource struct {
	db db.DBTX
}

func NewTrainerAvailabilitySource(db db.DBTX) *TrainerAvailabilitySource {
	return &TrainerAvailabilitySource{db: db}
}

func (s *TrainerAvailabilitySource) Name() string { return "trainer_availability" }

// A segment's occupant is derived, not stored: the left join finds the
// confirmed booking whose interval overlaps the segment for that trainer/day.
const fetchAvailabilitySQL = `
SELECT b.id, b.trainer_id, b.day, s.start_minute, s.end_minute, bk.member_id
FROM availability_blocks b
JOIN availability_segments s ON s.block_id = b.id
LEFT JOIN bookings bk
	ON bk.status = 'confirmed'
	AND bk.target_kind = 'trainer'
	AND bk.target_id = b.trainer_id
	AND bk.day = b.day
	AND bk.start_minute < s.end_minute
	AND s.start_minute < bk.end_minute
WHERE b.day BETWEEN $1 AND $2
ORDER BY b.day, b.id, s.start_minute`

func (s *TrainerAvailabilitySource) Fetch(ctx context.Context, from, to schedule.Date) ([]schedule.Event, error) {
	rows, err := s.db.Query(ctx, fetchAvailabilitySQL, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("trainer availability feed unavailable", err, infra.KindSourceUnavailable)
	}
	defer rows.Close()

	var (
		events  []schedule.Event
		current *schedule.TrainerBlock
	)
	for rows.Next() {
		var (
			blockID    uuid.UUID
			trainerID  uuid.UUID
			day        pgtype.Date
			start, end int
			bookedBy   pgtype.UUID
		)
		if err := rows.Scan(&blockID, &trainerID, &day, &start, &end, &bookedBy); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability segment", err, infra.KindSourceUnavailable)
		}

		iv, err := schedule.NewTimeInterval(pgconv.DateFromPgtype(day), start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("availability segment has invalid interval", err, infra.KindSourceUnavailable)
		}

		if current == nil || current.ID != blockID {
			if current != nil {
				events = append(events, *current)
			}
			current = &schedule.TrainerBlock{ID: blockID, TrainerID: trainerID}
		}
		current.Segments = append(current.Segments, schedule.Segment{
			Interval: iv,
			BookedBy: pgconv.UUIDPtrFromPgtype(bookedBy),
		})
	}
	if current != nil {
		events = append(events, *current)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("trainer availability feed unavailable", err, infra.KindSourceUnavailable)
	}
	return events, nil
}
