package api

import (
	"net/http"

	reqdto "qr-seat-reservation/internal/handler/dto/request"
	resdto "qr-seat-reservation/internal/handler/dto/response"
	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	cmds commands.TicketCommands
	q    queries.TicketQueries
}

func NewTicketHandler(cmds commands.TicketCommands, q queries.TicketQueries) *TicketHandler {
	return &TicketHandler{cmds: cmds, q: q}
}

// @Summary Generate tickets
// @Description Generates tickets using the stored settings; count 0 means the configured maximum
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateTicketsRequest true "Generate request"
// @Success 201 {object} resdto.GenerateTicketsResponse
// @Failure 422 {object} httperr.Response
// @Router /tickets/generate [post]
func (h *TicketHandler) Generate(c *gin.Context) {
	var req reqdto.GenerateTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.GenerateFromSettings(c.Request.Context(), req.Count)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromGenerateResult(result))
}

// @Summary Allocate one ticket
// @Description Takes the oldest available ticket out of the pool
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.AllocateTicketResponse
// @Failure 409 {object} httperr.Response
// @Router /tickets/allocate [post]
func (h *TicketHandler) Allocate(c *gin.Context) {
	code, err := h.cmds.AllocateOne(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AllocateTicketResponse{Code: code})
}

// @Summary Ticket pool stats
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.TicketStatsView
// @Router /tickets/stats [get]
func (h *TicketHandler) Stats(c *gin.Context) {
	view, err := h.q.Stats(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Preview ticket layout
// @Description Renders a ticket on the stored base image without touching the pool
// @Tags tickets
// @Accept json
// @Produce image/png
// @Security BearerAuth
// @Param request body reqdto.PreviewTicketRequest true "Geometry"
// @Success 200 {file} binary
// @Failure 422 {object} httperr.Response
// @Router /tickets/preview [post]
func (h *TicketHandler) Preview(c *gin.Context) {
	var req reqdto.PreviewTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	img, err := h.cmds.RenderPreview(c.Request.Context(), req.Geometry(), req.Code)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

// @Summary Get ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param code path string true "Ticket code"
// @Success 200 {object} queries.TicketView
// @Failure 404 {object} httperr.Response
// @Router /tickets/{code} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	view, err := h.q.FindByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Ticket image
// @Tags tickets
// @Produce image/png
// @Security BearerAuth
// @Param code path string true "Ticket code"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /tickets/{code}/image [get]
func (h *TicketHandler) Image(c *gin.Context) {
	code := c.Param("code")
	img, err := h.q.Image(c.Request.Context(), code)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+code+`.png"`)
	c.Data(http.StatusOK, "image/png", img)
}
