//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abortWith(t *testing.T, err error) (*httptest.ResponseRecorder, httperr.Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { httperr.Abort(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestAbort(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "検証エラーは400で詳細を返す",
			err:        errs.Detailf(errs.ErrValidation, "table name is required"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
			wantMsg:    "table name is required",
		},
		{
			name:       "ラップされた未検出エラーも404",
			err:        errs.Wrap(errs.Detailf(errs.ErrTicketNotFound, "ticket TK0001 not found"), "check in"),
			wantStatus: http.StatusNotFound,
			wantCode:   "TICKET_NOT_FOUND",
			wantMsg:    "TK0001",
		},
		{
			name:       "座席の競合は409",
			err:        errs.Detailf(errs.ErrSeatUnavailable, "seat S1 is RESERVED"),
			wantStatus: http.StatusConflict,
			wantCode:   "SEAT_UNAVAILABLE",
			wantMsg:    "seat S1 is RESERVED",
		},
		{
			name:       "チケット枯渇は409",
			err:        errs.Detailf(errs.ErrTicketPoolExhausted, "need 3 tickets, 1 available"),
			wantStatus: http.StatusConflict,
			wantCode:   "NOT_AVAILABLE",
			wantMsg:    "need 3 tickets",
		},
		{
			name:       "未払いは409",
			err:        errs.Detailf(errs.ErrNotPaid, "reservation RES-0000-0000-0001 is PAYMENT_PENDING"),
			wantStatus: http.StatusConflict,
			wantCode:   "NOT_PAID",
			wantMsg:    "PAYMENT_PENDING",
		},
		{
			name:       "コード空間不足は422",
			err:        errs.Detailf(errs.ErrCapacity, "only 5 codes left"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "CAPACITY",
			wantMsg:    "only 5 codes left",
		},
		{
			name:       "認証失敗は詳細を隠す",
			err:        errs.Mark(errors.New("bcrypt mismatch for admin"), commands.ErrInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
			wantMsg:    "invalid credentials",
		},
		{
			name:       "無効ユーザーは403",
			err:        errs.Wrap(queries.ErrUserInactive, "get current user"),
			wantStatus: http.StatusForbidden,
			wantCode:   "USER_INACTIVE",
			wantMsg:    "user inactive",
		},
		{
			name:       "未知のエラーは500",
			err:        errs.Wrap(errs.ErrDatabaseOperationFailed, "pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
			wantMsg:    "Internal server error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := abortWith(t, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.Contains(t, resp.Error.Message, tc.wantMsg)
		})
	}
}

func TestAbort_HidesCauseOfMappedAuthErrors(t *testing.T) {
	_, resp := abortWith(t, errs.Mark(errors.New("bcrypt mismatch for admin"), commands.ErrInvalidCredentials))
	assert.NotContains(t, resp.Error.Message, "bcrypt")
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Invalid request body", map[string]string{"field": "count"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":{"message":"Invalid request body"},"detail":{"field":"count"}}`, w.Body.String())
}
