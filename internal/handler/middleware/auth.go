package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"fitbook/internal/domain/member"
	"fitbook/internal/pkg/cookie"
	"fitbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator commands.TokenValidator
}

const (
	ctxMemberIDKey   = "member_id"
	ctxMemberRoleKey = "member_role"
)

var roleHierarchy = map[member.Role]int{
	member.RoleMember:  1,
	member.RoleTrainer: 2,
	member.RoleAdmin:   3,
}

func NewAuthMiddleware(tokenValidator commands.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookie.GetAccessToken(c)

		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				token = strings.TrimSpace(authHeader[len("Bearer "):])
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		memberID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxMemberIDKey, memberID)
		c.Set(ctxMemberRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"member_id": memberID.String(),
			"role":      role.String(),
		})
		c.Next()
	}
}

func hasMinimumRole(memberRole, minRole member.Role) bool {
	memberLevel, memberExists := roleHierarchy[memberRole]
	minLevel, minExists := roleHierarchy[minRole]
	return memberExists && minExists && memberLevel >= minLevel
}

func (m *AuthMiddleware) RequireRoleAtLeast(minRole member.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetMemberRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !hasMinimumRole(role, minRole) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetMemberID(c *gin.Context) (uuid.UUID, bool) {
	memberID, exists := c.Get(ctxMemberIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := memberID.(uuid.UUID)
	return id, ok
}

func GetMemberRole(c *gin.Context) (member.Role, bool) {
	memberRole, exists := c.Get(ctxMemberRoleKey)
	if !exists {
		return "", false
	}

	role, ok := memberRole.(member.Role)
	return role, ok
}
