package booking

import "errors"

var ErrUnsupportedDuration = errors.New("no credit tier for duration")

type PaymentMode string

const (
	// PaymentCredit debits one prepaid credit of the matching tier.
	PaymentCredit PaymentMode = "credit"
	// PaymentCart defers payment to the external checkout flow.
	PaymentCart PaymentMode = "cart"
	// PaymentGuest records an unpaid walk-in booking.
	PaymentGuest PaymentMode = "guest"
)

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentCredit, PaymentCart, PaymentGuest:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCanceled:
		return true
	default:
		return false
	}
}

// CreditTier is the duration class a prepaid credit pays for, in minutes.
type CreditTier int

const (
	Tier30 CreditTier = 30
	Tier60 CreditTier = 60
	Tier90 CreditTier = 90
)

func TierForDuration(minutes int) (CreditTier, error) {
	switch CreditTier(minutes) {
	case Tier30, Tier60, Tier90:
		return CreditTier(minutes), nil
	default:
		return 0, ErrUnsupportedDuration
	}
}

func (t CreditTier) Minutes() int {
	return int(t)
}
