package components

import (
	"fitbook/internal/domain/schedule"
	"fitbook/internal/infra/db"
	"fitbook/internal/infra/readstore"
	"fitbook/internal/infra/repository"
	"fitbook/internal/infra/sources"
	"fitbook/internal/infra/uow"
	"fitbook/internal/usecase/queries"
	"fitbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		NewEventSources,
		fx.Annotate(
			repository.NewMemberRepository,
			fx.As(new(shared.MemberRepository)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewEventSources wires the pool-backed feeds used by grid reads. Claim-time
// validation never sees these; it uses the transaction-bound set from the
// unit of work instead.
func NewEventSources(dbtx db.DBTX) []schedule.EventSource {
	return []schedule.EventSource{
		sources.NewClassOccurrenceSource(dbtx),
		sources.NewBlackoutSource(dbtx),
		sources.NewOpenBookingSource(dbtx),
		sources.NewTrainerAvailabilitySource(dbtx),
	}
}
