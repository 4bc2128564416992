package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prasanthzodiac/College-connect-sub000/internal/service"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/jwt"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/redis"
	"github.com/prasanthzodiac/College-connect-sub000/pkg/response"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>. Revoked tokens are rejected via the
// Redis blacklist; a nil client degrades to signature-only checks.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token invalid or expired")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "token revoked")
				c.Abort()
				return
			}
			// Redis errors degrade to signature-only checks.
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_expires_at", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// WSAuth authenticates websocket upgrades. Browsers cannot set headers
// on websocket connects, so the access token is also accepted as a
// ?token= query parameter.
func WSAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	headerAuth := JWTAuth(jwtMgr, rdb)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			if token := c.Query("token"); token != "" {
				c.Request.Header.Set("Authorization", "Bearer "+token)
			}
		}
		headerAuth(c)
	}
}

// ActorProvision resolves the verified token principal to its user
// row, creating the row on first contact so identities minted outside
// the signup flow work without one. The stored row then backs the
// context identity, so a stale role claim cannot outlive a role change.
func ActorProvision(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authSvc.ResolveActor(c.Request.Context(), service.Principal{
			UserID: c.GetString("user_id"),
			Email:  c.GetString("email"),
			Role:   c.GetString("role"),
		})
		if err != nil {
			response.Unauthorized(c, 10002, "unknown identity")
			c.Abort()
			return
		}

		c.Set("user_id", user.UserID)
		c.Set("email", user.Email)
		c.Set("role", user.Role)

		c.Next()
	}
}

// RoleAuth rejects callers whose role is not in the allow list.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient role")
		c.Abort()
	}
}
