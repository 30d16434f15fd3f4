package booking

import (
	"strings"

	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/validators"
)

// Validate enforces the submission invariants before any request is sent:
// a non-empty trimmed name and at least one contact channel. It mutates the
// draft only to trim whitespace, so a rejected draft keeps its fields.
func (d *Draft) Validate() error {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)

	if d.CustomerName == "" {
		return httperr.ErrBusiness("name_required")
	}

	if d.Phone == "" && d.Email == "" {
		return httperr.ErrBusiness("contact_required")
	}

	if d.Phone != "" && !validators.IsPlausiblePhone(d.Phone) {
		return httperr.ErrBusiness("invalid_phone")
	}

	if d.Email != "" && !validators.IsPlausibleEmail(d.Email) {
		return httperr.ErrBusiness("invalid_email")
	}

	return nil
}
