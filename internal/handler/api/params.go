package api

import (
	"net/http"

	"qr-seat-reservation/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathID parses the :id path parameter and aborts with 400 when it is not a UUID.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+what+" ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
