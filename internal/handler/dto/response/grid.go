package response

import (
	"fitbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventResponse struct {
	Kind        string     `json:"kind"`
	ID          *uuid.UUID `json:"id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Instructor  string     `json:"instructor,omitempty"`
	Capacity    int        `json:"capacity,omitempty"`
	BookedCount int        `json:"bookedCount,omitempty"`
	Description string     `json:"description,omitempty"`
	TrainerID   *uuid.UUID `json:"trainerId,omitempty"`
	// Occupant identity is present only for roles allowed to see it.
	OccupantMemberID *uuid.UUID `json:"occupantMemberId,omitempty"`
	OccupantName     string     `json:"occupantName,omitempty"`
}

type SlotResponse struct {
	Index       int            `json:"index"`
	StartMinute int            `json:"startMinute"`
	EndMinute   int            `json:"endMinute"`
	State       string         `json:"state"`
	Bookable    bool           `json:"bookable"`
	Event       *EventResponse `json:"event,omitempty"`
}

type DayGridResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type GridResponse struct {
	From     string            `json:"from"`
	To       string            `json:"to"`
	Days     []DayGridResponse `json:"days"`
	Warnings []string          `json:"warnings,omitempty"`
}

// FromGridView converts the read model into the wire shape. When
// includeOccupants is false the occupant identity fields are stripped, so a
// member sees a slot as taken without learning by whom.
func FromGridView(rm *queries.GridView, includeOccupants bool) *GridResponse {
	resp := &GridResponse{
		From:     rm.From,
		To:       rm.To,
		Days:     make([]DayGridResponse, len(rm.Days)),
		Warnings: rm.Warnings,
	}
	for i, day := range rm.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = SlotResponse{
				Index:       slot.Index,
				StartMinute: slot.StartMinute,
				EndMinute:   slot.EndMinute,
				State:       slot.State,
				Bookable:    slot.Bookable,
				Event:       fromEventView(slot.Event, includeOccupants),
			}
		}
		resp.Days[i] = DayGridResponse{Date: day.Date, Slots: slots}
	}
	return resp
}

func fromEventView(ev *queries.EventView, includeOccupants bool) *EventResponse {
	if ev == nil {
		return nil
	}
	resp := &EventResponse{
		Kind:        ev.Kind,
		ID:          ev.ID,
		Name:        ev.Name,
		Instructor:  ev.Instructor,
		Capacity:    ev.Capacity,
		BookedCount: ev.BookedCount,
		Description: ev.Description,
		TrainerID:   ev.TrainerID,
	}
	if includeOccupants {
		resp.OccupantMemberID = ev.OccupantMemberID
		resp.OccupantName = ev.OccupantName
	} else if ev.OccupantMemberID != nil || ev.OccupantName != "" {
		// An occupant-bearing event's ID is the booking row itself;
		// members see the slot as taken and nothing more.
		resp.ID = nil
	}
	return resp
}
