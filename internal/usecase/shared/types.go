package shared

import (
	"time"

	"fitbook/internal/domain/schedule"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side reads.

type BookingSnapshot struct {
	ID          uuid.UUID
	TargetKind  string
	TargetID    uuid.UUID
	Date        schedule.Date
	StartMinute int
	EndMinute   int
	MemberID    *uuid.UUID
	GuestName   string
	PaymentMode string
	Status      string
	CreatedAt   time.Time
}

type MemberSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	Role         string
	IsActive     bool
}
