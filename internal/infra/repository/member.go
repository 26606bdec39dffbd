package repository

import (
	"context"

	"fitbook/internal/infra"
	"fitbook/internal/infra/db"
	"fitbook/internal/pkg/pgconv"
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type MemberRepository struct {
	db db.DBTX
}

func NewMemberRepository(db db.DBTX) *MemberRepository {
	return &MemberRepository{db: db}
}

const findMemberByEmailSQL = `
SELECT id, email, password_hash, display_name, role, is_active
FROM members
WHERE email = $1`

func (r *MemberRepository) FindByEmail(ctx context.Context, email string) (*shared.MemberSnapshot, error) {
	var snap shared.MemberSnapshot
	err := r.db.QueryRow(ctx, findMemberByEmailSQL, email).Scan(
		&snap.ID, &snap.Email, &snap.PasswordHash, &snap.DisplayName, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by email", err)
	}
	return &snap, nil
}

const findMemberByIDSQL = `
SELECT id, email, password_hash, display_name, role, is_active
FROM members
WHERE id = $1`

func (r *MemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.MemberSnapshot, error) {
	var snap shared.MemberSnapshot
	err := r.db.QueryRow(ctx, findMemberByIDSQL, id).Scan(
		&snap.ID, &snap.Email, &snap.PasswordHash, &snap.DisplayName, &snap.Role, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("member not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find member by ID", err)
	}
	return &snap, nil
}
