// Package absence is the barber absence calendar. It lives entirely in the
// local store, has no server counterpart, and is never consulted by the
// booking flow. An admin-facing overlay only.
package absence

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/westcutz/booking-web/internal/catalog"
	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/store"
	"github.com/westcutz/booking-web/internal/timezone"
)

// StorageKey matches the key the old frontend used in localStorage, so an
// exported map can be imported as-is.
const StorageKey = "westcutz_absence_v1"

// calendar maps barber id -> ISO date -> present flag.
type calendar map[string]map[string]bool

type Overlay struct {
	store store.Store
}

func NewOverlay(st store.Store) *Overlay {
	return &Overlay{store: st}
}

// Toggle flips the absence flag for (barberID, date) with an explicit
// read-modify-write cycle, persisting immediately. Returns whether the
// barber is absent after the toggle.
func (o *Overlay) Toggle(ctx context.Context, barberID, date string) (bool, error) {
	if err := validate(barberID, date); err != nil {
		return false, err
	}

	cal, err := o.load(ctx)
	if err != nil {
		return false, err
	}

	absent := false
	if cal[barberID][date] {
		delete(cal[barberID], date)
		if len(cal[barberID]) == 0 {
			delete(cal, barberID)
		}
	} else {
		if cal[barberID] == nil {
			cal[barberID] = make(map[string]bool)
		}
		cal[barberID][date] = true
		absent = true
	}

	if err := o.save(ctx, cal); err != nil {
		return false, err
	}
	return absent, nil
}

func (o *Overlay) IsAbsent(ctx context.Context, barberID, date string) (bool, error) {
	cal, err := o.load(ctx)
	if err != nil {
		return false, err
	}
	return cal[barberID][date], nil
}

// Dates returns the registered absence dates for a barber, ascending.
func (o *Overlay) Dates(ctx context.Context, barberID string) ([]string, error) {
	if !catalog.IsBarber(barberID) {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	cal, err := o.load(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(cal[barberID]))
	for d := range cal[barberID] {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// Clear removes one absence entry. Clearing an absent entry is a no-op.
func (o *Overlay) Clear(ctx context.Context, barberID, date string) error {
	cal, err := o.load(ctx)
	if err != nil {
		return err
	}

	if !cal[barberID][date] {
		return nil
	}

	delete(cal[barberID], date)
	if len(cal[barberID]) == 0 {
		delete(cal, barberID)
	}
	return o.save(ctx, cal)
}

func (o *Overlay) load(ctx context.Context) (calendar, error) {
	raw, ok, err := o.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return calendar{}, nil
	}

	var cal calendar
	if err := json.Unmarshal([]byte(raw), &cal); err != nil {
		// Same stance as the old frontend: unreadable data resets the map.
		return calendar{}, nil
	}
	return cal, nil
}

func (o *Overlay) save(ctx context.Context, cal calendar) error {
	raw, err := json.Marshal(cal)
	if err != nil {
		return err
	}
	return o.store.Set(ctx, StorageKey, string(raw))
}

func validate(barberID, date string) error {
	if !catalog.IsBarber(barberID) {
		return httperr.ErrBusiness("barber_not_found")
	}
	if _, err := timezone.ParseDate(date); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	return nil
}
