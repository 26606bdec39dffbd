package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "fitbook/internal/handler/dto/request"
	resdto "fitbook/internal/handler/dto/response"
	"fitbook/internal/handler/httperr"
	"fitbook/internal/handler/middleware"
	"fitbook/internal/infra"
	"fitbook/internal/pkg/cookie"
	"fitbook/internal/usecase/commands"
	"fitbook/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	members      shared.MemberRepository
	tokenExpiry  time.Duration
}

func NewAuthHandler(authCommands commands.AuthCommands, members shared.MemberRepository, tokenExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		members:      members,
		tokenExpiry:  tokenExpiry,
	}
}

// @Summary Member login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.NormalizedEmail(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrMemberInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	cookie.SetAccessToken(c, result.Token, h.tokenExpiry)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		Member:      resdto.FromMemberSnapshot(result.Member),
	})
}

// @Summary Member logout
// @Description Clear the access token cookie
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c)
	c.Status(http.StatusNoContent)
}

// @Summary Get current member
// @Description Get the authenticated member's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.MemberResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Member not authenticated",
		})
		return
	}

	snap, err := h.members.FindByID(c.Request.Context(), memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Member not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromMemberSnapshot(snap))
}
