package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID          uuid.UUID  `json:"id"`
	TargetKind  string     `json:"target_kind"`
	TargetID    uuid.UUID  `json:"target_id"`
	Date        string     `json:"date"`
	StartMinute int        `json:"start_minute"`
	EndMinute   int        `json:"end_minute"`
	SubjectName string     `json:"subject_name"`
	MemberID    *uuid.UUID `json:"member_id,omitempty"`
	PaymentMode string     `json:"payment_mode"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	TargetKind  string    `json:"target_kind"`
	TargetID    uuid.UUID `json:"target_id"`
	Date        string    `json:"date"`
	StartMinute int       `json:"start_minute"`
	EndMinute   int       `json:"end_minute"`
	PaymentMode string    `json:"payment_mode"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// EventView is the full-detail occupant payload. Redaction for member-facing
// responses happens at the handler boundary, never here.
type EventView struct {
	Kind             string     `json:"kind"`
	ID               *uuid.UUID `json:"id,omitempty"`
	Name             string     `json:"name,omitempty"`
	Instructor       string     `json:"instructor,omitempty"`
	Capacity         int        `json:"capacity,omitempty"`
	BookedCount      int        `json:"booked_count,omitempty"`
	Description      string     `json:"description,omitempty"`
	TrainerID        *uuid.UUID `json:"trainer_id,omitempty"`
	OccupantMemberID *uuid.UUID `json:"occupant_member_id,omitempty"`
	OccupantName     string     `json:"occupant_name,omitempty"`
}

type SlotView struct {
	Index       int        `json:"index"`
	StartMinute int        `json:"start_minute"`
	EndMinute   int        `json:"end_minute"`
	State       string     `json:"state"`
	Bookable    bool       `json:"bookable"`
	Event       *EventView `json:"event,omitempty"`
}

type DayGridView struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

type GridView struct {
	From string        `json:"from"`
	To   string        `json:"to"`
	Days []DayGridView `json:"days"`
	// Warnings names event sources that were unavailable; their events are
	// simply missing from the grid rather than blocking it.
	Warnings []string `json:"warnings,omitempty"`
}
