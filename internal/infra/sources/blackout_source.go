package sources

import (
	"context"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type BlackoutSource struct {
	db db.DBTX
}

func NewBlackoutSource(db db.DBTX) *BlackoutSource {
	return &BlackoutSource{db: db}
}

func (s *BlackoutSource) Name() string { return "blackouts" }

const fetchBlackoutsSQL = `
SELECT id, description, trainer_id, day, start_minute, end_minute
FROM blackouts
WHERE day BETWEEN $1 AND $2
ORDER BY day, start_minute`

func (s *BlackoutSource) Fetch(ctx context.Context, from, to schedule.Date) ([]schedule.Event, error) {
	rows, err := s.db.Query(ctx, fetchBlackoutsSQL, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("blackout feed unavailable", err, infra.KindSourceUnavailable)
	}
	defer rows.Close()

	var events []schedule.Event
	for rows.Next() {
		var (
			b          schedule.Blackout
			trainerID  pgtype.UUID
			day        pgtype.Date
			start, end int
		)
		if err := rows.Scan(&b.ID, &b.Description, &trainerID, &day, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blackout", err, infra.KindSourceUnavailable)
		}

		iv, err := schedule.NewTimeInterval(pgconv.DateFromPgtype(day), start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("blackout has invalid interval", err, infra.KindSourceUnavailable)
		}
		b.Interval = iv
		b.TrainerID = pgconv.UUIDPtrFromPgtype(trainerID)
		if b.TrainerID != nil {
			b.Scope = schedule.ScopeSpecificTrainer
		} else {
			b.Scope = schedule.ScopeAllTrainers
		}
		events = append(events, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("blackout feed unavailable", err, infra.KindSourceUnavailable)
	}
	return events, nil
}
