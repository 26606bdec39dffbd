package repository

import (
	"context"

	"fitbook/internal/domain/booking"
	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CreditRepository struct {
	db db.DBTX
}

func NewCreditRepository(db db.DBTX) *CreditRepository {
	return &CreditRepository{db: db}
}

const decrementCreditSQL = `
UPDATE credit_balances
SET balance = balance - 1
WHERE member_id = $1 AND tier_minutes = $2 AND balance >= 1`

// Decrement is the non-negative debit: the balance check is part of the
// UPDATE itself, never a separate read-then-write.
func (r *CreditRepository) Decrement(ctx context.Context, memberID uuid.UUID, tier booking.CreditTier) error {
	tag, err := r.db.Exec(ctx, decrementCreditSQL, memberID, tier.Minutes())
	if err != nil {
		return infra.WrapRepoErr("failed to debit credit balance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("insufficient credit balance", nil, infra.KindConflict)
	}
	return nil
}

const incrementCreditSQL = `
INSERT INTO credit_balances (member_id, tier_minutes, balance)
VALUES ($1, $2, 1)
ON CONFLICT (member_id, tier_minutes)
DO UPDATE SET balance = credit_balances.balance + 1`

func (r *CreditRepository) Increment(ctx context.Context, memberID uuid.UUID, tier booking.CreditTier) error {
	if _, err := r.db.Exec(ctx, incrementCreditSQL, memberID, tier.Minutes()); err != nil {
		return infra.WrapRepoErr("failed to credit balance", err)
	}
	return nil
}

const balanceSQL = `
SELECT balance FROM credit_balances WHERE member_id = $1 AND tier_minutes = $2`

func (r *CreditRepository) Balance(ctx context.Context, memberID uuid.UUID, tier booking.CreditTier) (int, error) {
	var balance int
	err := r.db.QueryRow(ctx, balanceSQL, memberID, tier.Minutes()).Scan(&balance)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, nil
		}
		return 0, infra.WrapRepoErr("failed to read credit balance", err)
	}
	return balance, nil
}
