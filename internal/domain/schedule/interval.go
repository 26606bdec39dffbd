package schedule

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInterval = errors.New("invalid time interval")
	ErrInvalidWindow   = errors.New("invalid bookable window")
)

// TimeInterval is an immutable span of minutes since local midnight on a
// single date. The range is half-open: [startMinute, endMinute).
type TimeInterval struct {
	date        Date
	startMinute int
	endMinute   int
}

func NewTimeInterval(date Date, startMinute, endMinute int) (TimeInterval, error) {
	if startMinute < 0 || endMinute > 24*60 || startMinute >= endMinute {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{date: date, startMinute: startMinute, endMinute: endMinute}, nil
}

func (iv TimeInterval) Date() Date            { return iv.date }
func (iv TimeInterval) StartMinute() int      { return iv.startMinute }
func (iv TimeInterval) EndMinute() int        { return iv.endMinute }
func (iv TimeInterval) DurationMinutes() int  { return iv.endMinute - iv.startMinute }
func (iv TimeInterval) IsZero() bool          { return iv == TimeInterval{} }

// Overlaps is the single overlap predicate for the whole engine: same date,
// half-open ranges. Touching endpoints do not overlap.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.date == other.date &&
		iv.startMinute < other.endMinute &&
		other.startMinute < iv.endMinute
}

func (iv TimeInterval) StartTime(loc *time.Location) time.Time {
	return iv.date.Midnight(loc).Add(time.Duration(iv.startMinute) * time.Minute)
}

func (iv TimeInterval) EndTime(loc *time.Location) time.Time {
	return iv.date.Midnight(loc).Add(time.Duration(iv.endMinute) * time.Minute)
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d",
		iv.date, iv.startMinute/60, iv.startMinute%60, iv.endMinute/60, iv.endMinute%60)
}

// SlotIndex identifies one fixed-width slot within a day's bookable window,
// counted from the window start.
type SlotIndex int

const (
	DefaultSlotWidthMinutes = 30
	DefaultDayStartMinute   = 6 * 60  // 06:00
	DefaultDayEndMinute     = 22 * 60 // 22:00
)

// Window is the bookable portion of a day, discretized into fixed-width
// slots. Grid assembly and claim validation must share one Window so the two
// never disagree about slot geometry.
type Window struct {
	startMinute int
	endMinute   int
	slotWidth   int
}

func NewWindow(startMinute, endMinute, slotWidth int) (Window, error) {
	if slotWidth <= 0 || startMinute < 0 || endMinute > 24*60 || startMinute >= endMinute {
		return Window{}, ErrInvalidWindow
	}
	if (endMinute-startMinute)%slotWidth != 0 {
		return Window{}, ErrInvalidWindow
	}
	return Window{startMinute: startMinute, endMinute: endMinute, slotWidth: slotWidth}, nil
}

func DefaultWindow() Window {
	return Window{
		startMinute: DefaultDayStartMinute,
		endMinute:   DefaultDayEndMinute,
		slotWidth:   DefaultSlotWidthMinutes,
	}
}

func (w Window) StartMinute() int { return w.startMinute }
func (w Window) EndMinute() int   { return w.endMinute }
func (w Window) SlotWidth() int   { return w.slotWidth }

func (w Window) SlotCount() int {
	return (w.endMinute - w.startMinute) / w.slotWidth
}

// SlotInterval returns the half-open interval occupied by slot idx on date.
func (w Window) SlotInterval(date Date, idx SlotIndex) TimeInterval {
	start := w.startMinute + int(idx)*w.slotWidth
	return TimeInterval{date: date, startMinute: start, endMinute: start + w.slotWidth}
}

// SlotsCovered returns every slot index whose half-open range intersects the
// interval. An interval touching a slot boundary does not cover the adjacent
// slot.
func (w Window) SlotsCovered(iv TimeInterval) []SlotIndex {
	if iv.endMinute <= w.startMinute || iv.startMinute >= w.endMinute {
		return nil
	}

	first := (max(iv.startMinute, w.startMinute) - w.startMinute) / w.slotWidth
	last := (min(iv.endMinute, w.endMinute) - w.startMinute - 1) / w.slotWidth

	indices := make([]SlotIndex, 0, last-first+1)
	for i := first; i <= last; i++ {
		indices = append(indices, SlotIndex(i))
	}
	return indices
}

// Contains reports whether the interval lies entirely inside the window.
func (w Window) Contains(iv TimeInterval) bool {
	return iv.startMinute >= w.startMinute && iv.endMinute <= w.endMinute
}
