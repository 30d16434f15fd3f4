// Package flow is the booking step controller: a linear four-step state
// machine driving one customer's booking from date selection to a confirmed
// appointment.
package flow

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/westcutz/booking-web/internal/catalog"
	"github.com/westcutz/booking-web/internal/domain/booking"
	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/timezone"
)

type Step string

const (
	StepSelectDate   Step = "select_date"
	StepSelectTime   Step = "select_time"
	StepEnterDetails Step = "enter_details"
	StepConfirmed    Step = "confirmed"
)

// Client is the slice of the booking API the flow needs.
type Client interface {
	TimeSlots(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error)
	CreateBooking(ctx context.Context, draft booking.Draft) (*booking.Booking, error)
}

// Details holds the contact form. Kept across failed submissions so the
// customer never re-enters data to retry.
type Details struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Snapshot is the full flow state handed to the rendering layer.
type Snapshot struct {
	Step           Step               `json:"step"`
	Date           string             `json:"date,omitempty"`
	BarberID       string             `json:"barber_id,omitempty"`
	Service        catalog.Service    `json:"service"`
	Loading        bool               `json:"loading"`
	Slots          []booking.TimeSlot `json:"slots"`
	NoAvailability bool               `json:"no_availability"`
	Notice         string             `json:"notice,omitempty"`
	SelectedTime   string             `json:"selected_time,omitempty"`
	Details        Details            `json:"details"`
	Confirmation   *booking.Booking   `json:"confirmation,omitempty"`
}

// Controller is one booking session. Safe for concurrent use; availability
// responses are applied last-request-wins by logical selection order, not
// network arrival order.
type Controller struct {
	client Client
	logger zerolog.Logger

	mu           sync.Mutex
	step         Step
	date         string
	barberID     string
	service      catalog.Service
	slots        []booking.TimeSlot
	loading      bool
	fetchFailed  bool
	fetchSeq     uint64
	selectedTime string
	details      Details
	confirmation *booking.Booking
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func NewController(client Client, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: log.Logger,
		step:   StepSelectDate,
	}
	c.service, _ = catalog.ServiceByID("classic-cut")

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetService picks the service context for the booking. Only allowed before
// the contact step.
func (c *Controller) SetService(serviceID string) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepSelectDate && c.step != StepSelectTime {
		return c.snapshotLocked(), httperr.ErrBusiness("invalid_step")
	}

	svc, err := catalog.ServiceByID(serviceID)
	if err != nil {
		return c.snapshotLocked(), err
	}

	c.service = svc
	return c.snapshotLocked(), nil
}

// SelectDate records the date (and optional barber) choice, resets any
// selected time, advances to the time step and fetches availability. A
// newer selection supersedes any fetch still in flight: the response is
// applied only if its inputs still match the current selection.
func (c *Controller) SelectDate(ctx context.Context, date, barberID string) (Snapshot, error) {
	if _, err := timezone.ParseDate(date); err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.snapshotLocked(), httperr.ErrBusiness("invalid_date")
	}
	if barberID != "" && !catalog.IsBarber(barberID) {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.snapshotLocked(), httperr.ErrBusiness("barber_not_found")
	}

	c.mu.Lock()
	if c.step != StepSelectDate && c.step != StepSelectTime {
		defer c.mu.Unlock()
		return c.snapshotLocked(), httperr.ErrBusiness("invalid_step")
	}

	c.date = date
	c.barberID = barberID
	c.selectedTime = ""
	c.step = StepSelectTime
	c.loading = true
	c.fetchFailed = false
	c.slots = nil
	c.fetchSeq++
	seq := c.fetchSeq
	c.mu.Unlock()

	slots, err := c.client.TimeSlots(ctx, date, barberID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.fetchSeq || date != c.date || barberID != c.barberID {
		c.logger.Debug().
			Str("date", date).
			Str("barber_id", barberID).
			Msg("stale availability response discarded")
		return c.snapshotLocked(), nil
	}

	c.loading = false
	if err != nil {
		// Degrade to an empty list plus a notice, never a crash.
		c.slots = nil
		c.fetchFailed = true
		c.logger.Warn().Err(err).Str("date", date).Msg("availability fetch failed")
		return c.snapshotLocked(), nil
	}

	c.slots = slots
	return c.snapshotLocked(), nil
}

// SelectSlot advances to the contact step. Unavailable and unknown slots
// are inert: the error is reported and the step does not change.
func (c *Controller) SelectSlot(slotTime string) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepSelectTime {
		return c.snapshotLocked(), httperr.ErrBusiness("invalid_step")
	}
	if c.loading {
		return c.snapshotLocked(), httperr.ErrBusiness("slots_loading")
	}

	for _, slot := range c.slots {
		if slot.Time != slotTime {
			continue
		}
		if !slot.Available {
			return c.snapshotLocked(), httperr.ErrBusiness("slot_unavailable")
		}
		c.selectedTime = slotTime
		c.step = StepEnterDetails
		return c.snapshotLocked(), nil
	}

	return c.snapshotLocked(), httperr.ErrBusiness("slot_not_found")
}

// Back steps backwards one step without clearing prior choices.
func (c *Controller) Back() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case StepEnterDetails:
		c.step = StepSelectTime
	case StepSelectTime:
		c.step = StepSelectDate
	default:
		return c.snapshotLocked(), httperr.ErrBusiness("invalid_step")
	}
	return c.snapshotLocked(), nil
}

// Submit validates the contact details and posts the booking. Validation
// failures never reach the network and keep the entered fields; a server
// failure keeps the flow at the contact step so the customer can retry.
func (c *Controller) Submit(ctx context.Context, details Details) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepEnterDetails {
		return c.snapshotLocked(), httperr.ErrBusiness("invalid_step")
	}

	c.details = details

	barberName := ""
	if b, err := catalog.BarberByID(c.barberID); err == nil {
		barberName = b.Name
	}

	draft := booking.Draft{
		CustomerName:    details.CustomerName,
		Phone:           details.Phone,
		Email:           details.Email,
		BarberID:        c.barberID,
		BarberName:      barberName,
		Date:            c.date,
		TimeSlot:        c.selectedTime,
		ServiceID:       c.service.ID,
		ServiceName:     c.service.Name,
		ServicePrice:    c.service.Price,
		ServiceDuration: c.service.DurationMin,
	}

	if err := draft.Validate(); err != nil {
		return c.snapshotLocked(), err
	}

	confirmed, err := c.client.CreateBooking(ctx, draft)
	if err != nil {
		return c.snapshotLocked(), err
	}

	c.confirmation = confirmed
	c.step = StepConfirmed

	c.logger.Info().
		Str("booking_id", confirmed.ID).
		Str("date", confirmed.Date).
		Str("time_slot", confirmed.TimeSlot).
		Msg("booking flow confirmed")

	return c.snapshotLocked(), nil
}

// Reset is the "book another" action: back to the date step with all
// transient state cleared.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.step = StepSelectDate
	c.date = ""
	c.barberID = ""
	c.slots = nil
	c.loading = false
	c.fetchFailed = false
	c.selectedTime = ""
	c.details = Details{}
	c.confirmation = nil
	c.service, _ = catalog.ServiceByID("classic-cut")

	return c.snapshotLocked()
}

func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Step:         c.step,
		Date:         c.date,
		BarberID:     c.barberID,
		Service:      c.service,
		Loading:      c.loading,
		Slots:        append([]booking.TimeSlot(nil), c.slots...),
		SelectedTime: c.selectedTime,
		Details:      c.details,
		Confirmation: c.confirmation,
	}

	if c.fetchFailed {
		snap.Notice = "Failed to load available times"
	}

	if c.step == StepSelectTime && !c.loading && !c.fetchFailed {
		snap.NoAvailability = true
		for _, slot := range c.slots {
			if slot.Available {
				snap.NoAvailability = false
				break
			}
		}
	}

	return snap
}
