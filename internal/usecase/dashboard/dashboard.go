// Package dashboard is the admin view over the booking collection: per-day
// and all-upcoming modes, a client-side barber filter, and cancellation.
package dashboard

import (
	"context"
	"sort"
	"sync"

	"github.com/westcutz/booking-web/internal/audit"
	"github.com/westcutz/booking-web/internal/catalog"
	"github.com/westcutz/booking-web/internal/domain/booking"
	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/timezone"
)

type ViewMode string

const (
	ModeByDate ViewMode = "date"
	ModeAll    ViewMode = "all"
)

// FilterAll disables the barber filter.
const FilterAll = "all"

// Flat per-cut rate the revenue cards assume.
const bookingRateNOK = 300

// Client is the slice of the booking API the dashboard needs.
type Client interface {
	ListBookings(ctx context.Context, date string) ([]booking.Booking, error)
	CancelBooking(ctx context.Context, id string) error
}

type DateGroup struct {
	Date     string            `json:"date"`
	Bookings []booking.Booking `json:"bookings"`
}

type Stats struct {
	Today          int `json:"today"`
	TotalActive    int `json:"total_active"`
	PaidRevenue    int `json:"paid_revenue"`
	PendingRevenue int `json:"pending_revenue"`
}

type Dashboard struct {
	client Client
	audit  *audit.Dispatcher

	mu     sync.Mutex
	mode   ViewMode
	date   string
	byDate []booking.Booking
	all    []booking.Booking
}

func New(client Client, auditDispatcher *audit.Dispatcher) *Dashboard {
	return &Dashboard{
		client: client,
		audit:  auditDispatcher,
		mode:   ModeByDate,
		date:   timezone.Today(),
	}
}

// SelectDate switches to the per-day view and fetches that day fresh.
func (d *Dashboard) SelectDate(ctx context.Context, date string) error {
	if _, err := timezone.ParseDate(date); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}

	bookings, err := d.client.ListBookings(ctx, date)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = ModeByDate
	d.date = date
	d.byDate = normalize(bookings)
	return nil
}

// ShowAll switches to the all-upcoming view, sorted by (date, time_slot).
func (d *Dashboard) ShowAll(ctx context.Context) error {
	bookings, err := d.client.ListBookings(ctx, "")
	if err != nil {
		return err
	}

	sorted := normalize(bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].TimeSlot < sorted[j].TimeSlot
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	d.mode = ModeAll
	d.all = sorted
	return nil
}

// Refresh re-fetches whichever view is active.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	mode, date := d.mode, d.date
	d.mu.Unlock()

	if mode == ModeAll {
		return d.ShowAll(ctx)
	}
	return d.SelectDate(ctx, date)
}

// Bookings returns the active collection through the barber filter. The
// filter is pure: it never triggers a fetch. Records without a barber are
// attributed to the default barber, as before barber selection existed.
func (d *Dashboard) Bookings(barberFilter string) []booking.Booking {
	d.mu.Lock()
	defer d.mu.Unlock()

	active := d.byDate
	if d.mode == ModeAll {
		active = d.all
	}

	out := filterByBarber(active, barberFilter)
	if d.mode == ModeByDate {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TimeSlot < out[j].TimeSlot
		})
	}
	return out
}

// Grouped returns the all-upcoming view grouped by date for display.
func (d *Dashboard) Grouped(barberFilter string) []DateGroup {
	d.mu.Lock()
	filtered := filterByBarber(d.all, barberFilter)
	d.mu.Unlock()

	var groups []DateGroup
	for _, b := range filtered {
		if len(groups) == 0 || groups[len(groups)-1].Date != b.Date {
			groups = append(groups, DateGroup{Date: b.Date})
		}
		last := &groups[len(groups)-1]
		last.Bookings = append(last.Bookings, b)
	}
	return groups
}

// Cancel deletes a booking and removes it from both local collections.
// Local removal is idempotent: an id no longer present is a no-op, so a
// double cancel cannot corrupt the views.
func (d *Dashboard) Cancel(ctx context.Context, id string) error {
	if err := d.client.CancelBooking(ctx, id); err != nil {
		return err
	}

	d.mu.Lock()
	d.byDate = removeByID(d.byDate, id)
	d.all = removeByID(d.all, id)
	d.mu.Unlock()

	d.audit.Dispatch(audit.Event{
		Actor:    "admin",
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: id,
	})

	return nil
}

func (d *Dashboard) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := timezone.Today()
	stats := Stats{TotalActive: len(d.all)}

	paid := 0
	for _, b := range d.all {
		if b.Date == today {
			stats.Today++
		}
		if b.PaymentStatus == booking.PaymentPaid {
			paid++
		}
	}

	stats.PaidRevenue = paid * bookingRateNOK
	stats.PendingRevenue = (len(d.all) - paid) * bookingRateNOK
	return stats
}

func (d *Dashboard) Mode() ViewMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

func (d *Dashboard) Date() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.date
}

func filterByBarber(bookings []booking.Booking, barberFilter string) []booking.Booking {
	out := make([]booking.Booking, 0, len(bookings))
	for _, b := range bookings {
		if barberFilter != "" && barberFilter != FilterAll {
			barber := b.BarberID
			if barber == "" {
				barber = catalog.DefaultBarberID
			}
			if barber != barberFilter {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

func removeByID(bookings []booking.Booking, id string) []booking.Booking {
	out := bookings[:0]
	for _, b := range bookings {
		if b.ID != id {
			out = append(out, b)
		}
	}
	return out
}

func normalize(bookings []booking.Booking) []booking.Booking {
	out := make([]booking.Booking, len(bookings))
	copy(out, bookings)
	for i := range out {
		out[i].PaymentStatus = out[i].PaymentStatus.Normalize()
	}
	return out
}
