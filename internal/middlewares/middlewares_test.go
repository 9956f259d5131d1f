package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/slot-booking/internal/auth"
	"github.com/Leganyst/slot-booking/internal/calendar"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/", append(handlers, func(c *gin.Context) {
		p, _ := Principal(c)
		c.String(http.StatusOK, p.UserID)
	})...)
	return r
}

func get(t *testing.T, r http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	tok, err := auth.CreateAccessToken(secret, sub, "user-"+sub, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestJWTAuth(t *testing.T) {
	r := newRouter(JWTAuth(secret))

	w := get(t, r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), `"error":"unauthorized"`)

	w = get(t, r, "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(t, r, token(t, "42", "USER"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "42", w.Body.String())
}

func TestRequireRole(t *testing.T) {
	r := newRouter(JWTAuth(secret), RequireRole(calendar.RoleAdmin))

	require.Equal(t, http.StatusForbidden, get(t, r, token(t, "1", "USER")).Code)
	require.Equal(t, http.StatusOK, get(t, r, token(t, "1", "ADMIN")).Code)
}

func TestRateLimiter(t *testing.T) {
	r := newRouter(NewRateLimiter(2, nil).Middleware())

	require.Equal(t, http.StatusOK, get(t, r, "").Code)
	require.Equal(t, http.StatusOK, get(t, r, "").Code)
	require.Equal(t, http.StatusTooManyRequests, get(t, r, "").Code)
}

func TestRateLimiter_Disabled(t *testing.T) {
	r := newRouter(NewRateLimiter(0, nil).Middleware())

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, get(t, r, "").Code)
	}
}

func TestRateLimiter_EvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(10, nil)
	now := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	rl.getLimiter("10.0.0.2")
	require.Len(t, rl.visitors, 2)

	// Второй IP остаётся активным, первый простаивает.
	now = now.Add(limiterIdleTTL / 2)
	rl.getLimiter("10.0.0.2")

	now = now.Add(limiterIdleTTL / 2)
	rl.getLimiter("10.0.0.3")

	require.Len(t, rl.visitors, 2)
	require.NotContains(t, rl.visitors, "10.0.0.1")
	require.Contains(t, rl.visitors, "10.0.0.2")
	require.Contains(t, rl.visitors, "10.0.0.3")
}
