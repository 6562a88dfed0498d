package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yomiyu15/Workingspacebackend/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public booking endpoint on rg and the review
// endpoints on admin, which must already carry the admin guard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, admin *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)

	admin.GET("/bookings", h.ListBookings)
	admin.GET("/bookings/:id", h.GetBooking)
	admin.PUT("/bookings/:id", h.UpdateBooking)
	admin.DELETE("/bookings/:id", h.DeleteBooking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	view, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Workspace not found", "Failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Booking created. Admin will confirm after review.",
		"booking": view,
	})
}

func (h *Handler) ListBookings(c *gin.Context) {
	views, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Booking not found", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, views)
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	view, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Booking not found", "Failed to load booking")
		return
	}
	response.Success(c, http.StatusOK, view)
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body")
		return
	}

	view, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Booking not found", "Failed to update booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Booking updated",
		"booking": view,
	})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	view, err := h.service.DeleteBooking(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Booking not found", "Failed to delete booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Booking deleted",
		"booking": view,
	})
}

// CheckAvailability serves the availability query for the workspace routes.
func (h *Handler) CheckAvailability(c *gin.Context) {
	var q AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "workspace_id must be a number")
		return
	}

	av, err := h.service.CheckAvailability(c.Request.Context(), q)
	if err != nil {
		h.writeError(c, err, "Workspace not found", "Failed to check availability")
		return
	}

	response.Success(c, http.StatusOK, av)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error, notFound, fallback string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		if len(ve.Fields) > 0 {
			response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, ve.Message, ve.Fields)
			return
		}
		response.Error(c, http.StatusBadRequest, response.CodeValidation, ve.Message)

	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, notFound)

	case errors.Is(err, ErrNoAvailability):
		response.Error(c, http.StatusBadRequest, response.CodeNoAvailability, "No availability for the selected dates")

	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, response.CodeInvalidTransition, err.Error())

	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).WithError(err).Error("[BOOKING] request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, fallback)
	}
}
