package api

import (
	"net/http"

	reqdto "qr-seat-reservation/internal/handler/dto/request"
	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SellerHandler struct {
	cmds commands.SellerCommands
	q    queries.SellerQueries
}

func NewSellerHandler(cmds commands.SellerCommands, q queries.SellerQueries) *SellerHandler {
	return &SellerHandler{cmds: cmds, q: q}
}

// @Summary Create seller
// @Tags sellers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSellerRequest true "Create seller request"
// @Success 201 {object} queries.SellerView
// @Failure 400 {object} httperr.Response
// @Router /sellers [post]
func (h *SellerHandler) Create(c *gin.Context) {
	var req reqdto.CreateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/sellers/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary List sellers
// @Tags sellers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.SellerView
// @Router /sellers [get]
func (h *SellerHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Delete seller
// @Tags sellers
// @Security BearerAuth
// @Param id path string true "Seller ID"
// @Success 204 "No Content"
// @Failure 409 {object} httperr.Response
// @Router /sellers/{id} [delete]
func (h *SellerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "seller")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
