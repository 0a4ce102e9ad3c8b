package api

import (
	"net/http"

	reqdto "qr-seat-reservation/internal/handler/dto/request"
	resdto "qr-seat-reservation/internal/handler/dto/response"
	"qr-seat-reservation/internal/handler/httperr"
	"qr-seat-reservation/internal/handler/middleware"
	"qr-seat-reservation/internal/usecase/commands"
	"qr-seat-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Reserve seats for a seller and allocate one ticket per seat
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} queries.ReservationView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.cmds.Create(c.Request.Context(), req.ToParams(middleware.GetActor(c)))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	middleware.AnnotateLog(c, "reservation_ref", view.ReferenceNo)
	c.Header("Location", "/api/reservations/"+view.ID.String())
	c.JSON(http.StatusCreated, view)
}

// @Summary List reservations
// @Description Newest first, with seats, tables and sellers resolved
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.ReservationView
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "reservation")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Cancel reservation
// @Description Releases the seats and deletes the reservation; tickets are not returned to the pool
// @Tags reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "reservation")
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id, middleware.GetActor(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark reservation paid
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/payment [post]
func (h *ReservationHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c, "reservation")
	if !ok {
		return
	}
	view, err := h.cmds.MarkPaid(c.Request.Context(), id, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Download tickets
// @Description ZIP with one <code>.png per seat
// @Tags reservations
// @Produce application/zip
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {file} binary
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/tickets [get]
func (h *ReservationHandler) ExportTickets(c *gin.Context) {
	id, ok := pathID(c, "reservation")
	if !ok {
		return
	}
	archive, err := h.q.ExportTickets(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+archive.FileName+`"`)
	c.Data(http.StatusOK, "application/zip", archive.Content)
}

// @Summary Check in a ticket
// @Description Scanning an already admitted ticket reports ALREADY_CHECKED_IN
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckInRequest true "Scanned code"
// @Success 200 {object} resdto.CheckInResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /checkins [post]
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	var req reqdto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	middleware.AnnotateLog(c, "ticket_code", req.Code)
	result, err := h.cmds.CheckInByCode(c.Request.Context(), req.Code, middleware.GetActor(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	middleware.AnnotateLog(c, "reservation_ref", result.ReferenceNo)
	middleware.AnnotateLog(c, "checkin_outcome", string(result.Outcome))
	c.JSON(http.StatusOK, resdto.FromCheckInResult(result))
}

// @Summary Find reservation by ticket code
// @Tags checkins
// @Produce json
// @Security BearerAuth
// @Param code path string true "Ticket code"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Router /checkins/{code} [get]
func (h *ReservationHandler) FindByTicketCode(c *gin.Context) {
	view, err := h.q.FindByTicketCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
