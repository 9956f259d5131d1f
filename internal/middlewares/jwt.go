package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/slot-booking/internal/auth"
	"github.com/Leganyst/slot-booking/internal/calendar"
)

const principalKey = "principal"

func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := auth.ParseValidate(secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		p, err := claims.Principal()
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// Principal возвращает пользователя, которого положил JWTAuth.
func Principal(c *gin.Context) (calendar.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return calendar.Principal{}, false
	}
	p, ok := v.(calendar.Principal)
	return p, ok
}

func RequireRole(roles ...calendar.Role) gin.HandlerFunc {
	allowed := map[calendar.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		p, _ := Principal(c)
		if _, ok := allowed[p.Role]; !ok {
			abortJSON(c, http.StatusForbidden, "forbidden", "insufficient role")
			return
		}
		c.Next()
	}
}

func abortJSON(c *gin.Context, code int, errCode, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": errCode, "message": message})
}
