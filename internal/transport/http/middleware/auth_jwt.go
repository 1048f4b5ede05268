package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"item-feedback-api/internal/core/auth"
	resp "item-feedback-api/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyClaims = "claims"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// AuthJWT 无 Authorization 头时放行（是否必须登录由路由决定）；
// 带了头但格式或签名不对直接 401
func AuthJWT(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if ah == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "invalid authorization header"))
			return
		}
		claims, err := p.Parse(strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(http.StatusUnauthorized, "invalid or expired token"))
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyClaims, claims)
		c.Next()
	}
}
