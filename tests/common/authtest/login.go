//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"qr-seat-reservation/internal/handler/dto/request"
	"qr-seat-reservation/tests/common/dbtest"
	"qr-seat-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginUser(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Username: username, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Extract access token from cookie
	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, username, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, username, role)
	return LoginUser(t, router, username, dbtest.TestUserPassword)
}
