package middleware

import (
	"net/http"
	"strings"

	"Memeow/pkg/context"
	"Memeow/pkg/jwt"
	"Memeow/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth 必须登录
func Auth(secret []byte) gin.HandlerFunc {
	return authenticate(secret, true)
}

// OptionalAuth 没有 Authorization 时按匿名处理，带了但无效仍然拒绝
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return authenticate(secret, false)
}

// Staff 需放在 Auth 之后
func Staff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !context.IsStaff(c) {
			response.Abort(c, http.StatusForbidden, "staff only")
			return
		}
		c.Next()
	}
}

func authenticate(secret []byte, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if required {
				response.Abort(c, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "malformed Authorization header")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TokenAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxStaff, claims.Staff)

		c.Next()
	}
}
