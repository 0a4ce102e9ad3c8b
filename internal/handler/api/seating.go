package api

import (
	"net/http"

	"qr-seat-reservation/internal/domain/seating"
	reqdto "qr-seat-reservation/internal/handler/dto/request"
	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SeatingHandler struct {
	cmds commands.SeatingCommands
	q    queries.SeatingQueries
	resQ queries.ReservationQueries
}

func NewSeatingHandler(cmds commands.SeatingCommands, q queries.SeatingQueries, resQ queries.ReservationQueries) *SeatingHandler {
	return &SeatingHandler{cmds: cmds, q: q, resQ: resQ}
}

// @Summary Create table
// @Description Create a table with seats S1..Sn, available seats first
// @Tags tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTableRequest true "Create table request"
// @Success 201 {object} queries.TableView
// @Failure 400 {object} httperr.Response
// @Router /tables [post]
func (h *SeatingHandler) CreateTable(c *gin.Context) {
	var req reqdto.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.cmds.CreateTable(c.Request.Context(), req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/tables/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary List tables
// @Description List tables with seat counts
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.TableView
// @Router /tables [get]
func (h *SeatingHandler) ListTables(c *gin.Context) {
	views, err := h.q.ListTables(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Venue summary
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.SummaryView
// @Router /tables/summary [get]
func (h *SeatingHandler) Summary(c *gin.Context) {
	view, err := h.q.Summary(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get table
// @Description Get a table with its seats
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 200 {object} queries.TableView
// @Failure 404 {object} httperr.Response
// @Router /tables/{id} [get]
func (h *SeatingHandler) GetTable(c *gin.Context) {
	id, ok := pathID(c, "table")
	if !ok {
		return
	}
	view, err := h.q.GetTable(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete table
// @Tags tables
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /tables/{id} [delete]
func (h *SeatingHandler) DeleteTable(c *gin.Context) {
	id, ok := pathID(c, "table")
	if !ok {
		return
	}
	if err := h.cmds.DeleteTable(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List reservations of a table
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 200 {array} queries.ReservationView
// @Router /tables/{id}/reservations [get]
func (h *SeatingHandler) ListTableReservations(c *gin.Context) {
	id, ok := pathID(c, "table")
	if !ok {
		return
	}
	views, err := h.resQ.ListByTable(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Set seat status
// @Description AVAILABLE releases the seat; UNAVAILABLE blocks it
// @Tags seats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Seat ID"
// @Param request body reqdto.UpdateSeatStatusRequest true "Seat status"
// @Success 200 {object} queries.SeatView
// @Failure 409 {object} httperr.Response
// @Router /seats/{id}/status [put]
func (h *SeatingHandler) UpdateSeatStatus(c *gin.Context) {
	id, ok := pathID(c, "seat")
	if !ok {
		return
	}
	var req reqdto.UpdateSeatStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	status, err := req.ToDomain()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	ctx := c.Request.Context()
	if status == seating.SeatAvailable {
		err = h.cmds.ReleaseSeat(ctx, id)
	} else {
		err = h.cmds.MarkSeat(ctx, id, status)
	}
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.q.GetSeat(ctx, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
