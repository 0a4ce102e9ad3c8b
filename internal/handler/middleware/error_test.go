//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/handler/middleware"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newErrorRouter(h gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("request_id", "req-1")
		c.Next()
	})
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/x", h)
	return r
}

func TestErrorHandler(t *testing.T) {
	t.Run("公開エラーはそのまま返す", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(errs.Detailf(errs.ErrSeatUnavailable, "seat S1 is RESERVED")).
				SetType(gin.ErrorTypePublic).
				SetMeta(httperr.Response{Status: http.StatusConflict})
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("未処理のエラーは500とINTERNAL", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			_ = c.Error(errors.New("boom"))
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, "INTERNAL")
		assert.Contains(t, rec.Body.String(), `"request_id":"req-1"`)
		assert.NotContains(t, rec.Body.String(), "boom")
	})

	t.Run("ステータスのみ設定された場合はボディなし", func(t *testing.T) {
		r := newErrorRouter(func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestCustomRecovery(t *testing.T) {
	r := newErrorRouter(func(c *gin.Context) {
		panic("renderer exploded")
	})

	rec := httptest.PerformRequest(t, r, http.MethodGet, "/x", nil, "")

	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	httptest.AssertErrorCode(t, rec, http.StatusInternalServerError, "INTERNAL")
	assert.NotContains(t, rec.Body.String(), "renderer exploded")
}
