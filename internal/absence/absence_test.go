package absence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/store"
)

func newOverlay(t *testing.T) *Overlay {
	t.Helper()
	fs, err := store.OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return NewOverlay(fs)
}

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	o := newOverlay(t)

	absent, err := o.Toggle(ctx, "marius", "2025-06-10")
	require.NoError(t, err)
	assert.True(t, absent)

	got, err := o.IsAbsent(ctx, "marius", "2025-06-10")
	require.NoError(t, err)
	assert.True(t, got)

	// toggling again returns the map to its original state
	absent, err = o.Toggle(ctx, "marius", "2025-06-10")
	require.NoError(t, err)
	assert.False(t, absent)

	got, err = o.IsAbsent(ctx, "marius", "2025-06-10")
	require.NoError(t, err)
	assert.False(t, got)

	dates, err := o.Dates(ctx, "marius")
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestBarbersAreIndependent(t *testing.T) {
	ctx := context.Background()
	o := newOverlay(t)

	_, err := o.Toggle(ctx, "marius", "2025-06-10")
	require.NoError(t, err)

	got, err := o.IsAbsent(ctx, "sivert", "2025-06-10")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestDatesSorted(t *testing.T) {
	ctx := context.Background()
	o := newOverlay(t)

	for _, d := range []string{"2025-07-01", "2025-06-10", "2025-06-20"} {
		_, err := o.Toggle(ctx, "sivert", d)
		require.NoError(t, err)
	}

	dates, err := o.Dates(ctx, "sivert")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-20", "2025-07-01"}, dates)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	o := newOverlay(t)

	_, err := o.Toggle(ctx, "marius", "2025-06-10")
	require.NoError(t, err)

	require.NoError(t, o.Clear(ctx, "marius", "2025-06-10"))
	got, err := o.IsAbsent(ctx, "marius", "2025-06-10")
	require.NoError(t, err)
	assert.False(t, got)

	// clearing again is a no-op
	require.NoError(t, o.Clear(ctx, "marius", "2025-06-10"))
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	o := newOverlay(t)

	_, err := o.Toggle(ctx, "unknown", "2025-06-10")
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	_, err = o.Toggle(ctx, "marius", "10.06.2025")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = o.Dates(ctx, "all")
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))
}
