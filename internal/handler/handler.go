// Package handler serves the juice bar web pages.
package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/xenking/juicebar/internal/domain/admin"
	"github.com/xenking/juicebar/internal/domain/order"
	"github.com/xenking/juicebar/internal/domain/seed"
	"github.com/xenking/juicebar/internal/session"
	"github.com/xenking/juicebar/pkg/httpmiddleware"
)

const loginPath = "/login"

// Handler renders the order form, login and order listing pages.
type Handler struct {
	orders   *order.Service
	auth     *admin.Authenticator
	seeder   *seed.Seeder
	sessions *session.Manager
	views    views
}

// New constructs a Handler and parses its templates.
func New(
	orders *order.Service,
	auth *admin.Authenticator,
	seeder *seed.Seeder,
	sessions *session.Manager,
) (*Handler, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &Handler{
		orders:   orders,
		auth:     auth,
		seeder:   seeder,
		sessions: sessions,
		views:    v,
	}, nil
}

// Routes returns a router with every page registered. Callers may add
// further routes, such as health probes, to it.
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()
	guard := h.sessions.RequireAdmin(loginPath)

	r.Handle("/", httpmiddleware.Wrap(http.HandlerFunc(h.orderForm), guard)).Methods(http.MethodGet)
	r.HandleFunc("/submitOrder", h.submitOrder).Methods(http.MethodPost)
	r.HandleFunc(loginPath, h.loginForm).Methods(http.MethodGet)
	r.HandleFunc(loginPath, h.login).Methods(http.MethodPost)
	r.Handle("/orders", httpmiddleware.Wrap(http.HandlerFunc(h.listOrders), guard)).Methods(http.MethodGet)
	r.HandleFunc("/logout", h.logout).Methods(http.MethodGet)
	r.HandleFunc("/setup", h.setup).Methods(http.MethodGet)
	r.PathPrefix("/static/").Handler(staticFiles()).Methods(http.MethodGet)
	return r
}
