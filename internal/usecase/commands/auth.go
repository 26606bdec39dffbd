package commands

import (
	"context"

	"fitbook/internal/domain/member"
	"fitbook/internal/infra"
	"fitbook/internal/pkg/errs"
	"fitbook/internal/pkg/jwt"
	"fitbook/internal/pkg/password"
	"fitbook/internal/usecase/shared"
)

var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrMemberInactive     = errs.New("member account is inactive")
)

type LoginResult struct {
	Token  string
	Member *shared.MemberSnapshot
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	members shared.MemberRepository
	jwtSvc  *jwt.Service
}

func NewAuthCommands(members shared.MemberRepository, jwtSvc *jwt.Service) AuthCommands {
	return &authCommandsImpl{members: members, jwtSvc: jwtSvc}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := a.members.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same failure as a bad password so login probes cannot tell
			// registered emails apart.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if !snap.IsActive {
		return nil, ErrMemberInactive
	}

	if err := password.Compare(snap.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtSvc.GenerateToken(snap.ID, member.Role(snap.Role))
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, Member: snap}, nil
}
