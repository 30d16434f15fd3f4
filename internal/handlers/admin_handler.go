package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/westcutz/booking-web/internal/absence"
	"github.com/westcutz/booking-web/internal/api"
	"github.com/westcutz/booking-web/internal/audit"
	"github.com/westcutz/booking-web/internal/gate"
	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/httpresp"
	"github.com/westcutz/booking-web/internal/middleware"
	"github.com/westcutz/booking-web/internal/usecase/dashboard"
)

// Admin session cookies live for a month; the gate itself has no expiry and
// only explicit logout ends the session.
const adminCookieMaxAge = 30 * 24 * 60 * 60

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	gate    *gate.Gate
	dash    *dashboard.Dashboard
	absence *absence.Overlay
	audit   *audit.Dispatcher
}

func NewAdminHandler(
	g *gate.Gate,
	dash *dashboard.Dashboard,
	overlay *absence.Overlay,
	auditDispatcher *audit.Dispatcher,
) *AdminHandler {
	return &AdminHandler{
		gate:    g,
		dash:    dash,
		absence: overlay,
		audit:   auditDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type ToggleAbsenceRequest struct {
	BarberID string `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"` // YYYY-MM-DD
}

// ======================================================
// SESSION
// ======================================================

func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Password required.")
		return
	}

	token, err := h.gate.Login(c.Request.Context(), req.Password)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_credentials") || httperr.IsBusiness(err, "password_required") {
			httperr.Unauthorized(c, "invalid_credentials", "Wrong password")
			return
		}
		httperr.BadGateway(c, "login_failed", "Login is unavailable right now. Try again.")
		return
	}

	c.SetCookie(middleware.AdminCookie, token, adminCookieMaxAge, "/", "", false, true)

	h.audit.Dispatch(audit.Event{
		Actor:  "admin",
		Action: "admin_login",
		Entity: "session",
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.gate.Logout(c.Request.Context()); err != nil {
		httperr.Internal(c, "logout_failed", "Could not log out.")
		return
	}

	c.SetCookie(middleware.AdminCookie, "", -1, "/", "", false, true)

	h.audit.Dispatch(audit.Event{
		Actor:  "admin",
		Action: "admin_logout",
		Entity: "session",
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports the gate state so the SPA can decide which view to mount.
func (h *AdminHandler) Session(c *gin.Context) {
	token, _ := c.Cookie(middleware.AdminCookie)
	c.JSON(http.StatusOK, gin.H{
		"logged_in": h.gate.Verify(c.Request.Context(), token),
	})
}

// ======================================================
// BOOKINGS
// ======================================================

// ListByDate serves the per-day view. A fetch failure degrades to an empty
// list with a notice; the dashboard never hard-fails on reads.
func (h *AdminHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = h.dash.Date()
	}

	if err := h.dash.SelectDate(c.Request.Context(), date); err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Invalid date. Use YYYY-MM-DD.")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"mode":     dashboard.ModeByDate,
			"date":     date,
			"bookings": []any{},
			"notice":   "Failed to load bookings",
		})
		return
	}

	bookings := h.dash.Bookings(c.Query("barber"))
	c.JSON(http.StatusOK, gin.H{
		"mode":     dashboard.ModeByDate,
		"date":     date,
		"bookings": bookings,
		"total":    len(bookings),
	})
}

// ListAll serves the all-upcoming view, grouped by date.
func (h *AdminHandler) ListAll(c *gin.Context) {
	if err := h.dash.ShowAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"mode":   dashboard.ModeAll,
			"groups": []any{},
			"notice": "Failed to load bookings",
		})
		return
	}

	filter := c.Query("barber")
	c.JSON(http.StatusOK, gin.H{
		"mode":   dashboard.ModeAll,
		"groups": h.dash.Grouped(filter),
		"total":  len(h.dash.Bookings(filter)),
		"stats":  h.dash.Stats(),
	})
}

// Refresh re-fetches whichever view mode is active.
func (h *AdminHandler) Refresh(c *gin.Context) {
	if err := h.dash.Refresh(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"mode":   h.dash.Mode(),
			"notice": "Failed to load bookings",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": h.dash.Mode()})
}

// Stats serves the dashboard cards over whatever the all-upcoming view last
// fetched, refreshing it first so the numbers are current.
func (h *AdminHandler) Stats(c *gin.Context) {
	if err := h.dash.ShowAll(c.Request.Context()); err != nil {
		httperr.BadGateway(c, "stats_failed", "Could not load bookings.")
		return
	}
	c.JSON(http.StatusOK, h.dash.Stats())
}

func (h *AdminHandler) Cancel(c *gin.Context) {
	id := c.Param("id")

	if err := h.dash.Cancel(c.Request.Context(), id); err != nil {
		if msg := api.ServerMessage(err); msg != "" {
			httperr.BadGateway(c, "cancel_failed", msg)
			return
		}
		httperr.BadGateway(c, "cancel_failed", "Could not cancel booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": id})
}

// ======================================================
// ABSENCE
// ======================================================

func (h *AdminHandler) AbsenceDates(c *gin.Context) {
	dates, err := h.absence.Dates(c.Request.Context(), c.Param("barber"))
	if err != nil {
		if httperr.IsBusiness(err, "barber_not_found") {
			httperr.NotFound(c, "barber_not_found", "Unknown barber.")
			return
		}
		httperr.Internal(c, "absence_failed", "Could not read absence calendar.")
		return
	}

	httpresp.List(c, dates)
}

func (h *AdminHandler) ToggleAbsence(c *gin.Context) {
	var req ToggleAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Barber and date required.")
		return
	}

	absent, err := h.absence.Toggle(c.Request.Context(), req.BarberID, req.Date)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "barber_not_found"):
			httperr.BadRequest(c, "barber_not_found", "Unknown barber.")
		case httperr.IsBusiness(err, "invalid_date"):
			httperr.BadRequest(c, "invalid_date", "Invalid date. Use YYYY-MM-DD.")
		default:
			httperr.Internal(c, "absence_failed", "Could not update absence calendar.")
		}
		return
	}

	action := "absence_cleared"
	if absent {
		action = "absence_set"
	}
	h.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   action,
		Entity:   "absence",
		EntityID: req.BarberID,
		Metadata: gin.H{"date": req.Date},
	})

	c.JSON(http.StatusOK, gin.H{
		"barber_id": req.BarberID,
		"date":      req.Date,
		"absent":    absent,
	})
}

func (h *AdminHandler) ClearAbsence(c *gin.Context) {
	barberID := c.Param("barber")
	date := c.Param("date")

	if err := h.absence.Clear(c.Request.Context(), barberID, date); err != nil {
		httperr.Internal(c, "absence_failed", "Could not update absence calendar.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   "absence_cleared",
		Entity:   "absence",
		EntityID: barberID,
		Metadata: gin.H{"date": date},
	})

	c.JSON(http.StatusOK, gin.H{
		"barber_id": barberID,
		"date":      date,
		"absent":    false,
	})
}
