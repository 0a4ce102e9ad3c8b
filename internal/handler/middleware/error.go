package middleware

import (
	"log/slog"
	"net/http"

	"qr-seat-reservation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const internalErrorCode = "INTERNAL"

// ErrorHandler writes the last public httperr.Response recorded by a
// handler. Anything else that left the response unwritten becomes a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]
			if !err.IsType(gin.ErrorTypePublic) {
				continue
			}
			if resp, ok := err.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			slog.Error("unhandled request error",
				slog.String("request_id", GetRequestID(c)),
				slog.String("path", c.Request.URL.Path),
				slog.String("error", c.Errors.Last().Error()))
		}
		c.JSON(http.StatusInternalServerError, internalError(c))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					slog.String("request_id", GetRequestID(c)),
					slog.Any("error", err),
					slog.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, internalError(c))
			}
		}()
		c.Next()
	}
}

func internalError(c *gin.Context) httperr.Response {
	resp := httperr.Response{Status: http.StatusInternalServerError}
	resp.Error.Message = "Internal server error"
	resp.Error.Code = internalErrorCode
	if id := GetRequestID(c); id != "" {
		resp.Detail = gin.H{"request_id": id}
	}
	return resp
}
