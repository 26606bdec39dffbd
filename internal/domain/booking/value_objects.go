package booking

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrGuestNameRequired = errors.New("guest booking requires a name")
	ErrSubjectConflict   = errors.New("subject cannot be both member and guest")
)

// SubjectRef identifies who a booking is for: a registered member or a named
// guest. Exactly one of the two is set.
type SubjectRef struct {
	memberID  *uuid.UUID
	guestName string
}

func NewMemberSubject(memberID uuid.UUID) SubjectRef {
	id := memberID
	return SubjectRef{memberID: &id}
}

func NewGuestSubject(name string) (SubjectRef, error) {
	if name == "" {
		return SubjectRef{}, ErrGuestNameRequired
	}
	return SubjectRef{guestName: name}, nil
}

func (s SubjectRef) MemberID() *uuid.UUID { return s.memberID }
func (s SubjectRef) GuestName() string    { return s.guestName }
func (s SubjectRef) IsGuest() bool        { return s.memberID == nil }

func (s SubjectRef) IsZero() bool {
	return s.memberID == nil && s.guestName == ""
}
