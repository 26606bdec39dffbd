// Package sources implements the four read-only event feeds the grid merges:
// class occurrences, trainer availability blocks, blackouts, and open
// bookings. Every adapter satisfies schedule.EventSource and tags its storage
// failures with KindSourceUnavailable so the grid can degrade per source.
package sources

import (
	"context"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type ClassOccurrenceSource struct {
	db db.DBTX
}

func NewClassOccurrenceSource(db db.DBTX) *ClassOccurrenceSource {
	return &ClassOccurrenceSource{db: db}
}

func (s *ClassOccurrenceSource) Name() string { return "class_occurrences" }

const fetchClassesSQL = `
SELECT id, name, instructor, capacity, booked_count, day, start_minute, end_minute
FROM class_occurrences
WHERE day BETWEEN $1 AND $2
ORDER BY day, start_minute`

func (s *ClassOccurrenceSource) Fetch(ctx context.Context, from, to schedule.Date) ([]schedule.Event, error) {
	rows, err := s.db.Query(ctx, fetchClassesSQL, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("class occurrence feed unavailable", err, infra.KindSourceUnavailable)
	}
	defer rows.Close()

	var events []schedule.Event
	for rows.Next() {
		var (
			c          schedule.ClassOccurrence
			day        pgtype.Date
			start, end int
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Instructor, &c.Capacity, &c.BookedCount, &day, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan class occurrence", err, infra.KindSourceUnavailable)
		}

		iv, err := schedule.NewTimeInterval(pgconv.DateFromPgtype(day), start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("class occurrence has invalid interval", err, infra.KindSourceUnavailable)
		}
		c.Interval = iv
		events = append(events, c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("class occurrence feed unavailable", err, infra.KindSourceUnavailable)
	}
	return events, nil
}
