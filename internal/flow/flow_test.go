package flow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westcutz/booking-web/internal/domain/booking"
	"github.com/westcutz/booking-web/internal/httperr"
)

type stubClient struct {
	timeSlots   func(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error)
	create      func(ctx context.Context, draft booking.Draft) (*booking.Booking, error)
	createCalls int32
}

func (s *stubClient) TimeSlots(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
	if s.timeSlots == nil {
		return nil, nil
	}
	return s.timeSlots(ctx, date, barberID)
}

func (s *stubClient) CreateBooking(ctx context.Context, draft booking.Draft) (*booking.Booking, error) {
	atomic.AddInt32(&s.createCalls, 1)
	if s.create == nil {
		return nil, errors.New("unexpected CreateBooking call")
	}
	return s.create(ctx, draft)
}

func sivertSlots(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
	return []booking.TimeSlot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
	}, nil
}

func TestHappyPath(t *testing.T) {
	ctx := context.Background()
	stub := &stubClient{
		timeSlots: sivertSlots,
		create: func(ctx context.Context, draft booking.Draft) (*booking.Booking, error) {
			assert.Equal(t, "Ola", draft.CustomerName)
			assert.Equal(t, "12345678", draft.Phone)
			assert.Equal(t, "sivert", draft.BarberID)
			assert.Equal(t, "Sivert", draft.BarberName)
			assert.Equal(t, "classic-cut", draft.ServiceID)
			return &booking.Booking{
				ID:           "b-1",
				CustomerName: draft.CustomerName,
				Date:         draft.Date,
				TimeSlot:     draft.TimeSlot,
			}, nil
		},
	}
	ctrl := NewController(stub)

	assert.Equal(t, StepSelectDate, ctrl.State().Step)

	snap, err := ctrl.SelectDate(ctx, "2025-06-10", "sivert")
	require.NoError(t, err)
	assert.Equal(t, StepSelectTime, snap.Step)
	require.Len(t, snap.Slots, 2)
	assert.True(t, snap.Slots[0].Available)
	assert.False(t, snap.Slots[1].Available)
	assert.False(t, snap.NoAvailability)

	snap, err = ctrl.SelectSlot("09:00")
	require.NoError(t, err)
	assert.Equal(t, StepEnterDetails, snap.Step)
	assert.Equal(t, "09:00", snap.SelectedTime)

	snap, err = ctrl.Submit(ctx, Details{CustomerName: "Ola", Phone: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, snap.Step)
	require.NotNil(t, snap.Confirmation)
	assert.Equal(t, "09:00", snap.Confirmation.TimeSlot)
}

func TestUnavailableSlotIsInert(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(&stubClient{timeSlots: sivertSlots})

	_, err := ctrl.SelectDate(ctx, "2025-06-10", "sivert")
	require.NoError(t, err)

	snap, err := ctrl.SelectSlot("09:30")
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	assert.Equal(t, StepSelectTime, snap.Step)
	assert.Empty(t, snap.SelectedTime)

	snap, err = ctrl.SelectSlot("23:45")
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))
	assert.Equal(t, StepSelectTime, snap.Step)
}

func TestNoAvailabilityNotice(t *testing.T) {
	ctx := context.Background()

	t.Run("all slots taken", func(t *testing.T) {
		ctrl := NewController(&stubClient{
			timeSlots: func(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
				return []booking.TimeSlot{
					{Time: "09:00", Available: false},
					{Time: "09:45", Available: false},
				}, nil
			},
		})
		snap, err := ctrl.SelectDate(ctx, "2025-06-10", "")
		require.NoError(t, err)
		assert.True(t, snap.NoAvailability)
	})

	t.Run("empty slot list", func(t *testing.T) {
		ctrl := NewController(&stubClient{
			timeSlots: func(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
				return nil, nil
			},
		})
		snap, err := ctrl.SelectDate(ctx, "2025-06-10", "")
		require.NoError(t, err)
		assert.True(t, snap.NoAvailability)
	})
}

func TestFetchFailureDegradesToNotice(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(&stubClient{
		timeSlots: func(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
			return nil, errors.New("connection refused")
		},
	})

	snap, err := ctrl.SelectDate(ctx, "2025-06-10", "")
	require.NoError(t, err, "fetch failures must not propagate")
	assert.Equal(t, StepSelectTime, snap.Step)
	assert.Empty(t, snap.Slots)
	assert.NotEmpty(t, snap.Notice)
	assert.False(t, snap.NoAvailability)
}

func TestValidationBlocksNetworkCall(t *testing.T) {
	ctx := context.Background()
	stub := &stubClient{timeSlots: sivertSlots}
	ctrl := NewController(stub)

	_, err := ctrl.SelectDate(ctx, "2025-06-10", "sivert")
	require.NoError(t, err)
	_, err = ctrl.SelectSlot("09:00")
	require.NoError(t, err)

	snap, err := ctrl.Submit(ctx, Details{CustomerName: "Ola"})
	assert.True(t, httperr.IsBusiness(err, "contact_required"))
	assert.Equal(t, StepEnterDetails, snap.Step)
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.createCalls), "no request may be sent")

	// entered fields are kept for the retry
	assert.Equal(t, "Ola", snap.Details.CustomerName)
}

func TestServerErrorKeepsDetailsStep(t *testing.T) {
	ctx := context.Background()
	fail := true
	stub := &stubClient{
		timeSlots: sivertSlots,
		create: func(ctx context.Context, draft booking.Draft) (*booking.Booking, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return &booking.Booking{ID: "b-2", TimeSlot: draft.TimeSlot}, nil
		},
	}
	ctrl := NewController(stub)

	_, err := ctrl.SelectDate(ctx, "2025-06-10", "sivert")
	require.NoError(t, err)
	_, err = ctrl.SelectSlot("09:00")
	require.NoError(t, err)

	snap, err := ctrl.Submit(ctx, Details{CustomerName: "Ola", Phone: "12345678"})
	require.Error(t, err)
	assert.Equal(t, StepEnterDetails, snap.Step)

	// retry without re-entering anything
	fail = false
	snap, err = ctrl.Submit(ctx, Details{CustomerName: "Ola", Phone: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, snap.Step)
}

func TestBackKeepsSelections(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(&stubClient{timeSlots: sivertSlots})

	_, err := ctrl.SelectDate(ctx, "2025-06-10", "sivert")
	require.NoError(t, err)
	_, err = ctrl.SelectSlot("09:00")
	require.NoError(t, err)

	snap, err := ctrl.Back()
	require.NoError(t, err)
	assert.Equal(t, StepSelectTime, snap.Step)
	assert.Equal(t, "09:00", snap.SelectedTime)

	snap, err = ctrl.Back()
	require.NoError(t, err)
	assert.Equal(t, StepSelectDate, snap.Step)
	assert.Equal(t, "2025-06-10", snap.Date)

	_, err = ctrl.Back()
	assert.True(t, httperr.IsBusiness(err, "invalid_step"))
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(&stubClient{
		timeSlots: sivertSlots,
		create: func(ctx context.Context, draft booking.Draft) (*booking.Booking, error) {
			return &booking.Booking{ID: "b-3"}, nil
		},
	})

	_, err := ctrl.SelectDate(ctx, "2025-06-10", "sivert")
	require.NoError(t, err)
	_, err = ctrl.SelectSlot("09:00")
	require.NoError(t, err)
	_, err = ctrl.Submit(ctx, Details{CustomerName: "Ola", Phone: "12345678"})
	require.NoError(t, err)

	snap := ctrl.Reset()
	assert.Equal(t, StepSelectDate, snap.Step)
	assert.Empty(t, snap.Date)
	assert.Empty(t, snap.BarberID)
	assert.Empty(t, snap.SelectedTime)
	assert.Empty(t, snap.Slots)
	assert.Equal(t, Details{}, snap.Details)
	assert.Nil(t, snap.Confirmation)
}

func TestInvalidInputs(t *testing.T) {
	ctx := context.Background()
	ctrl := NewController(&stubClient{timeSlots: sivertSlots})

	_, err := ctrl.SelectDate(ctx, "10.06.2025", "")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
	assert.Equal(t, StepSelectDate, ctrl.State().Step)

	_, err = ctrl.SelectDate(ctx, "2025-06-10", "nobody")
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = ctrl.SelectSlot("09:00")
	assert.True(t, httperr.IsBusiness(err, "invalid_step"))
}

// A fetch for selection N must not overwrite the result of selection N+1,
// even when its response arrives later.
func TestLastRequestWins(t *testing.T) {
	ctx := context.Background()

	firstStarted := make(chan struct{})
	release := make(chan struct{})

	stub := &stubClient{
		timeSlots: func(ctx context.Context, date, barberID string) ([]booking.TimeSlot, error) {
			if date == "2025-06-10" {
				close(firstStarted)
				<-release
				return []booking.TimeSlot{{Time: "10:00", Available: true}}, nil
			}
			return []booking.TimeSlot{{Time: "11:00", Available: true}}, nil
		},
	}
	ctrl := NewController(stub)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ctrl.SelectDate(ctx, "2025-06-10", "")
	}()

	<-firstStarted

	snap, err := ctrl.SelectDate(ctx, "2025-06-11", "")
	require.NoError(t, err)
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, "11:00", snap.Slots[0].Time)

	close(release)
	wg.Wait()

	// the late response for 2025-06-10 must have been discarded
	snap = ctrl.State()
	assert.Equal(t, "2025-06-11", snap.Date)
	require.Len(t, snap.Slots, 1)
	assert.Equal(t, "11:00", snap.Slots[0].Time)
	assert.False(t, snap.Loading)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(&stubClient{})

	id, ctrl := reg.Create()
	require.NotEmpty(t, id)
	require.NotNil(t, ctrl)

	got, ok := reg.Get(id)
	assert.True(t, ok)
	assert.Same(t, ctrl, got)

	_, ok = reg.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}
