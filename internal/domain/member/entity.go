package member

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
	ErrEmptyName    = errors.New("display name cannot be empty")
)

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if value == "" {
		return Email{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

func (e Email) String() string {
	return e.value
}

type Member struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	displayName  string
	role         Role
	isActive     bool
	createdAt    time.Time
}

func NewMember(email Email, passwordHash, displayName string, role Role) (*Member, error) {
	if displayName == "" {
		return nil, ErrEmptyName
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	return &Member{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		role:         role,
		isActive:     true,
	}, nil
}

func ReconstructMember(
	id uuid.UUID,
	email Email,
	passwordHash, displayName string,
	role Role,
	isActive bool,
	createdAt time.Time,
) *Member {
	return &Member{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		role:         role,
		isActive:     isActive,
		createdAt:    createdAt,
	}
}

func (m *Member) ID() uuid.UUID        { return m.id }
func (m *Member) Email() Email         { return m.email }
func (m *Member) PasswordHash() string { return m.passwordHash }
func (m *Member) DisplayName() string  { return m.displayName }
func (m *Member) Role() Role           { return m.role }
func (m *Member) IsActive() bool       { return m.isActive }
func (m *Member) CreatedAt() time.Time { return m.createdAt }
