package httperr

import (
	"errors"
	"net/http"

	"qr-seat-reservation/internal/pkg/errs"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errors.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type mapping struct {
	sentinel error
	status   int
	code     string
	// expose the detailed error text, which names the seat, code or state involved
	detailed bool
}

var mappings = []mapping{
	{errs.ErrValidation, http.StatusBadRequest, "VALIDATION", true},
	{errs.ErrTableNotFound, http.StatusNotFound, "TABLE_NOT_FOUND", true},
	{errs.ErrSeatNotFound, http.StatusNotFound, "SEAT_NOT_FOUND", true},
	{errs.ErrTicketNotFound, http.StatusNotFound, "TICKET_NOT_FOUND", true},
	{errs.ErrReservationNotFound, http.StatusNotFound, "RESERVATION_NOT_FOUND", true},
	{errs.ErrSellerNotFound, http.StatusNotFound, "SELLER_NOT_FOUND", true},
	{errs.ErrSettingNotFound, http.StatusNotFound, "SETTING_NOT_FOUND", true},
	{errs.ErrSeatUnavailable, http.StatusConflict, "SEAT_UNAVAILABLE", true},
	{errs.ErrSeatInUse, http.StatusConflict, "SEAT_IN_USE", true},
	{errs.ErrTableInUse, http.StatusConflict, "TABLE_IN_USE", true},
	{errs.ErrSellerInUse, http.StatusConflict, "SELLER_IN_USE", true},
	{errs.ErrTicketPoolExhausted, http.StatusConflict, "NOT_AVAILABLE", true},
	{errs.ErrTicketAlreadyUsed, http.StatusConflict, "TICKET_USED", true},
	{errs.ErrNotPaid, http.StatusConflict, "NOT_PAID", true},
	{errs.ErrCapacity, http.StatusUnprocessableEntity, "CAPACITY", true},
	{errs.ErrRender, http.StatusUnprocessableEntity, "RENDER", true},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", false},
	{commands.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE", false},
	{queries.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE", false},
	{queries.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", false},
}

// Abort maps a usecase error onto its HTTP status. Unknown errors become 500
// without leaking their text.
func Abort(c *gin.Context, err error) {
	for _, m := range mappings {
		if errs.Is(err, m.sentinel) {
			msg := m.sentinel.Error()
			if m.detailed {
				msg = err.Error()
			}
			abortWithCode(c, m.status, err, msg, m.code)
			return
		}
	}
	abortWithCode(c, http.StatusInternalServerError, err, "Internal server error", "")
}

func abortWithCode(c *gin.Context, status int, err error, msg, code string) {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
