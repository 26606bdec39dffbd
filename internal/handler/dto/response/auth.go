package response

import (
	"fitbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type MemberResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	Member      MemberResponse `json:"member"`
}

func FromMemberSnapshot(snap *shared.MemberSnapshot) MemberResponse {
	var resp MemberResponse
	_ = copier.Copy(&resp, snap)
	return resp
}
