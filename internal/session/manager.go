package session

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/juicebar/pkg/httpmiddleware"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	// MaxAge of the cookie; zero makes it a browser-session cookie.
	MaxAge time.Duration
}

// Manager binds sessions from a Store to requests through a cookie.
type Manager struct {
	store  Store
	cookie CookieConfig
}

// NewManager creates a Manager over store.
func NewManager(store Store, cookie CookieConfig) *Manager {
	return &Manager{store: store, cookie: cookie}
}

// Get returns the session referenced by the request cookie, or ErrNotFound
// when there is no cookie or the id is unknown.
func (m *Manager) Get(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil || c.Value == "" {
		return nil, ErrNotFound
	}
	return m.store.Get(r.Context(), c.Value)
}

// LoginAdmin starts an authenticated session under a fresh id and drops the
// previous one, if any.
func (m *Manager) LoginAdmin(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	if prev, err := m.Get(r); err == nil {
		if err := m.store.Delete(ctx, prev.ID); err != nil {
			return errors.Wrap(err, "delete previous session")
		}
	}

	s := &Session{ID: uuid.New().String(), Admin: true}
	if err := m.store.Save(ctx, s); err != nil {
		return errors.Wrap(err, "save session")
	}
	http.SetCookie(w, m.newCookie(s.ID))
	return nil
}

// Destroy deletes the request's session and expires its cookie.
func (m *Manager) Destroy(w http.ResponseWriter, r *http.Request) error {
	c, err := r.Cookie(m.cookie.Name)
	if err != nil || c.Value == "" {
		return nil
	}

	expired := m.newCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)

	if err := m.store.Delete(r.Context(), c.Value); err != nil {
		return errors.Wrap(err, "delete session")
	}
	return nil
}

// IsAdmin reports whether the request carries an authenticated session.
// Store failures count as unauthenticated and are logged.
func (m *Manager) IsAdmin(r *http.Request) bool {
	s, err := m.Get(r)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			zctx.From(r.Context()).Warn("Session lookup failed", zap.Error(err))
		}
		return false
	}
	return s.Admin
}

// RequireAdmin returns a middleware redirecting unauthenticated requests to
// loginPath.
func (m *Manager) RequireAdmin(loginPath string) httpmiddleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.IsAdmin(r) {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Manager) newCookie(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     m.cookie.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.cookie.MaxAge > 0 {
		c.MaxAge = int(m.cookie.MaxAge.Seconds())
	}
	return c
}

// Ping checks the backing store when it supports it.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
