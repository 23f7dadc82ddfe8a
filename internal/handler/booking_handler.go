package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shareloop/service-sharing/internal/application"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListForRenter)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.PATCH("/:bookingId", h.ChangeStatus)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !req.End.After(req.Start) {
		response.BadRequest(c, "booking end must be after start")
		return
	}
	if req.Start.Before(time.Now()) {
		response.BadRequest(c, "booking start must not be in the past")
		return
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}

	result, err := h.service.Get(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ChangeStatus handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid booking id")
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.ChangeStatus(c.Request.Context(), bookingID, approved, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListForRenter handles GET /bookings.
func (h *BookingHandler) ListForRenter(c *gin.Context) {
	h.list(c, h.service.ListForRenter)
}

// ListForOwner handles GET /bookings/owner.
func (h *BookingHandler) ListForOwner(c *gin.Context) {
	h.list(c, h.service.ListForOwner)
}

// listFunc is either of the engine's two listing entry points.
type listFunc func(ctx context.Context, callerID int64, state bookingDomain.State, from, size int) ([]bookingDomain.Booking, error)

// list validates the caller, the state literal, and the page parameters,
// then dispatches to the engine. Unrecognized state literals never reach
// the engine.
func (h *BookingHandler) list(c *gin.Context, query listFunc) {
	userID, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "missing or invalid "+sharerHeader+" header")
		return
	}
	state, err := bookingDomain.ParseState(c.DefaultQuery("state", "ALL"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	from, size, ok := pagination(c)
	if !ok {
		response.BadRequest(c, "invalid pagination parameters")
		return
	}

	result, err := query(c.Request.Context(), userID, state, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
