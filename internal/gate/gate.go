// Package gate is the admin session gate: a single LoggedOut/LoggedIn state
// persisted in the store, flipped only by the external login endpoint.
package gate

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/westcutz/booking-web/internal/httperr"
	"github.com/westcutz/booking-web/internal/store"
)

// StorageKey matches the flag key the old frontend kept in localStorage.
const StorageKey = "admin_authenticated"

// LoginClient is the slice of the booking API the gate needs.
type LoginClient interface {
	AdminLogin(ctx context.Context, password string) (bool, error)
}

type Gate struct {
	store  store.Store
	client LoginClient
	secret []byte
}

func New(st store.Store, client LoginClient, secret string) *Gate {
	return &Gate{
		store:  st,
		client: client,
		secret: []byte(secret),
	}
}

// Login verifies the password against the external endpoint. Only a success
// response flips the persisted flag; it then mints the browser session
// token. The token carries no expiry: the gate is explicit-logout only.
func (g *Gate) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", httperr.ErrBusiness("password_required")
	}

	ok, err := g.client.AdminLogin(ctx, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", httperr.ErrBusiness("invalid_credentials")
	}

	if err := g.store.Set(ctx, StorageKey, "true"); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Logout clears the persisted flag, which also invalidates every
// outstanding session token.
func (g *Gate) Logout(ctx context.Context) error {
	return g.store.Delete(ctx, StorageKey)
}

func (g *Gate) LoggedIn(ctx context.Context) bool {
	v, ok, err := g.store.Get(ctx, StorageKey)
	return err == nil && ok && v == "true"
}

// Verify reports whether tokenString is a valid session token and the gate
// is still in the LoggedIn state.
func (g *Gate) Verify(ctx context.Context, tokenString string) bool {
	if tokenString == "" || !g.LoggedIn(ctx) {
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	role, _ := claims["role"].(string)
	return role == "admin"
}
