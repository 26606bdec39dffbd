package response

import (
	"time"

	"fitbook/internal/usecase/commands"
	"fitbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID          uuid.UUID  `json:"id"`
	TargetKind  string     `json:"targetKind"`
	TargetID    uuid.UUID  `json:"targetId"`
	Date        string     `json:"date"`
	StartMinute int        `json:"startMinute"`
	EndMinute   int        `json:"endMinute"`
	SubjectName string     `json:"subjectName"`
	MemberID    *uuid.UUID `json:"memberId,omitempty"`
	PaymentMode string     `json:"paymentMode"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type BookingListResponse struct {
	ID          uuid.UUID `json:"id"`
	TargetKind  string    `json:"targetKind"`
	TargetID    uuid.UUID `json:"targetId"`
	Date        string    `json:"date"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	PaymentMode string    `json:"paymentMode"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SkippedOccurrenceResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type SeriesResponse struct {
	Created []*BookingResponse          `json:"created"`
	Skipped []SkippedOccurrenceResponse `json:"skipped"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromSeriesResult(result *commands.SeriesResult) *SeriesResponse {
	resp := &SeriesResponse{
		Created: make([]*BookingResponse, len(result.Created)),
		Skipped: make([]SkippedOccurrenceResponse, len(result.Skipped)),
	}
	for i, view := range result.Created {
		resp.Created[i] = FromBookingView(view)
	}
	for i, skip := range result.Skipped {
		resp.Skipped[i] = SkippedOccurrenceResponse{Date: skip.Date, Reason: skip.Reason}
	}
	return resp
}
