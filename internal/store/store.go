// Package store is the local persistence for state the booking API does not
// own: the admin session flag and the absence calendar. It is an explicit
// injected service so a server-backed implementation can be swapped in.
package store

import "context"

type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
