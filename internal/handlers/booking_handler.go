package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/westcutz/booking-web/internal/api"
	"github.com/westcutz/booking-web/internal/catalog"
	"github.com/westcutz/booking-web/internal/flow"
	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/httpresp"
)

// SessionCookie identifies one customer's booking flow.
const SessionCookie = "westcutz_session"

const cookieMaxAge = 2 * 60 * 60 // matches the flow session TTL

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	sessions *flow.Registry
}

func NewBookingHandler(sessions *flow.Registry) *BookingHandler {
	return &BookingHandler{sessions: sessions}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectDateRequest struct {
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
	BarberID string `json:"barber_id"`
}

type SelectSlotRequest struct {
	Time string `json:"time" binding:"required"` // HH:MM
}

type SetServiceRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

// Submit fields carry no binding tags: the flow's own validation produces
// the field-specific errors the UI needs.
type SubmitRequest struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *BookingHandler) ListServices(c *gin.Context) {
	httpresp.List(c, catalog.Services())
}

func (h *BookingHandler) ListBarbers(c *gin.Context) {
	httpresp.List(c, catalog.Barbers())
}

// ======================================================
// FLOW
// ======================================================

func (h *BookingHandler) StartSession(c *gin.Context) {
	id, ctrl := h.sessions.Create()
	c.SetCookie(SessionCookie, id, cookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusCreated, ctrl.State())
}

func (h *BookingHandler) State(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	httpresp.OK(c, ctrl.State())
}

func (h *BookingHandler) SelectDate(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	snap, err := ctrl.SelectDate(c.Request.Context(), req.Date, req.BarberID)
	if err != nil {
		mapFlowError(c, err)
		return
	}
	httpresp.OK(c, snap)
}

func (h *BookingHandler) SelectSlot(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	snap, err := ctrl.SelectSlot(req.Time)
	if err != nil {
		mapFlowError(c, err)
		return
	}
	httpresp.OK(c, snap)
}

func (h *BookingHandler) SetService(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req SetServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	snap, err := ctrl.SetService(req.ServiceID)
	if err != nil {
		mapFlowError(c, err)
		return
	}
	httpresp.OK(c, snap)
}

func (h *BookingHandler) Back(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	snap, err := ctrl.Back()
	if err != nil {
		mapFlowError(c, err)
		return
	}
	httpresp.OK(c, snap)
}

func (h *BookingHandler) Submit(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	snap, err := ctrl.Submit(c.Request.Context(), flow.Details{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
	})
	if err != nil {
		mapSubmitError(c, err)
		return
	}
	httpresp.OK(c, snap)
}

func (h *BookingHandler) Reset(c *gin.Context) {
	ctrl, ok := h.controller(c)
	if !ok {
		return
	}
	httpresp.OK(c, ctrl.Reset())
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) controller(c *gin.Context) (*flow.Controller, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil {
		httperr.NotFound(c, "session_not_found", "Start a booking session first.")
		return nil, false
	}

	ctrl, ok := h.sessions.Get(id)
	if !ok {
		httperr.NotFound(c, "session_expired", "Booking session expired. Start again.")
		return nil, false
	}
	return ctrl, true
}

func mapFlowError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid date. Use YYYY-MM-DD.")
	case httperr.IsBusiness(err, "barber_not_found"):
		httperr.BadRequest(c, "barber_not_found", "Unknown barber.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Unknown service.")
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.BadRequest(c, "slot_unavailable", "That time is already taken.")
	case httperr.IsBusiness(err, "slot_not_found"):
		httperr.BadRequest(c, "slot_not_found", "Unknown time slot.")
	case httperr.IsBusiness(err, "slots_loading"):
		httperr.BadRequest(c, "slots_loading", "Still loading available times.")
	case httperr.IsBusiness(err, "invalid_step"):
		httperr.BadRequest(c, "invalid_step", "Not allowed at this step.")
	default:
		httperr.Internal(c, "flow_error", "Something went wrong.")
	}
}

// mapSubmitError keeps validation errors field-addressed so the UI can focus
// the offending input, and passes server-provided messages through.
func mapSubmitError(c *gin.Context, err error) {
	type fieldError struct {
		code    string
		field   string
		message string
	}

	for _, fe := range []fieldError{
		{"name_required", "customer_name", "Please enter your name"},
		{"contact_required", "phone", "Please provide either phone number or email"},
		{"invalid_phone", "phone", "That phone number does not look right"},
		{"invalid_email", "email", "That email address does not look right"},
	} {
		if httperr.IsBusiness(err, fe.code) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error_code": fe.code,
				"field":      fe.field,
				"message":    fe.message,
			})
			return
		}
	}

	if httperr.IsBusiness(err, "invalid_step") {
		httperr.BadRequest(c, "invalid_step", "Not allowed at this step.")
		return
	}

	if msg := api.ServerMessage(err); msg != "" {
		httperr.BadGateway(c, "booking_failed", msg)
		return
	}
	httperr.BadGateway(c, "booking_failed", "Failed to create booking")
}
