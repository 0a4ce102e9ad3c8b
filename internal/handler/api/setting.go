package api

import (
	"net/http"

	reqdto "qr-seat-reservation/internal/handler/dto/request"
	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	cmds commands.SettingCommands
	q    queries.SettingQueries
}

func NewSettingHandler(cmds commands.SettingCommands, q queries.SettingQueries) *SettingHandler {
	return &SettingHandler{cmds: cmds, q: q}
}

// @Summary Get settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.SettingView
// @Failure 404 {object} httperr.Response
// @Router /settings [get]
func (h *SettingHandler) Get(c *gin.Context) {
	view, err := h.q.Get(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update settings
// @Description Partial update; omitted fields keep their stored value
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSettingRequest true "Settings patch"
// @Success 200 {object} queries.SettingView
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /settings [put]
func (h *SettingHandler) Update(c *gin.Context) {
	var req reqdto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.Save(c.Request.Context(), patch)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
