//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"qr-seat-reservation/internal/domain/user"
	"qr-seat-reservation/internal/handler/middleware"
	"qr-seat-reservation/internal/pkg/config"
	"qr-seat-reservation/internal/usecase"
	"qr-seat-reservation/tests/common/authtest"
	"qr-seat-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	jwtpkg "qr-seat-reservation/internal/pkg/jwt"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *authtest.JWTHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		t.Fatal(err)
	}
	mw := middleware.NewAuthMiddleware(usecase.NewTokenValidator(jwtpkg.NewService(cfg.JWT.Secret, duration)))

	r := gin.New()
	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "actor": middleware.GetActor(c)})
	}
	r.GET("/admin", mw.RequireAuth(), mw.RequireRoleAtLeast(user.RoleAdmin), whoami)
	r.GET("/entrance", mw.RequireAuth(), mw.RequireRoleAtLeast(user.RoleEntrance), whoami)
	return r, authtest.NewJWTHelper(cfg.JWT)
}

func TestRequireAuth(t *testing.T) {
	router, jwtHelper := newAuthRouter(t)
	userID := uuid.New()

	t.Run("トークンなしは401", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/entrance", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("不正なトークンは401", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/entrance", nil, "not-a-jwt")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("期限切れトークンは401", func(t *testing.T) {
		token := jwtHelper.CreateExpiredToken(t, userID, "gate", user.RoleEntrance)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/entrance", nil, token)
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("有効なトークンでユーザー情報が設定される", func(t *testing.T) {
		token := jwtHelper.GenerateToken(t, userID, "gate", user.RoleEntrance)
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/entrance", nil, token)

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, userID.String(), body["user_id"])
		assert.Equal(t, "gate", body["actor"])
	})
}

func TestRequireRoleAtLeast(t *testing.T) {
	router, jwtHelper := newAuthRouter(t)

	testCases := []struct {
		name   string
		role   user.Role
		path   string
		expect int
	}{
		{"管理者は管理APIにアクセスできる", user.RoleAdmin, "/admin", http.StatusOK},
		{"管理者は入場APIにもアクセスできる", user.RoleAdmin, "/entrance", http.StatusOK},
		{"入場係は入場APIにアクセスできる", user.RoleEntrance, "/entrance", http.StatusOK},
		{"入場係は管理APIにアクセスできない", user.RoleEntrance, "/admin", http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token := jwtHelper.GenerateToken(t, uuid.New(), "someone", tc.role)
			rec := httptest.PerformRequest(t, router, http.MethodGet, tc.path, nil, token)
			assert.Equal(t, tc.expect, rec.Code, rec.Body.String())
		})
	}
}
