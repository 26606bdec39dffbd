package bootstrap

import (
	"time"

	"fitbook/internal/domain/schedule"
	"fitbook/internal/pkg/config"

	"go.uber.org/fx"
)

var ScheduleModule = fx.Module("schedule",
	fx.Provide(
		NewWindow,
		NewFacilityLocation,
	),
)

// NewWindow builds the facility-wide slot geometry. Grid reads and claim
// validation both receive this single Window, so they can never disagree
// about where slots begin and end.
func NewWindow(cfg config.Config) (schedule.Window, error) {
	return schedule.NewWindow(
		cfg.Schedule.DayStartMinute,
		cfg.Schedule.DayEndMinute,
		cfg.Schedule.SlotWidthMin,
	)
}

func NewFacilityLocation(cfg config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Schedule.TimeZone)
}
