package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/juicebar/internal/domain/admin"
)

const loginFailedMessage = "An error occurred, please try again."

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageLogin, loginData{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pageLogin, loginData{Error: loginFailedMessage})
		return
	}
	username := r.PostForm.Get("uname")
	lg := zctx.From(r.Context()).With(zap.String("username", username))

	if _, err := h.auth.Login(r.Context(), username, r.PostForm.Get("pass")); err != nil {
		switch {
		case errors.Is(err, admin.ErrUsernameNotFound), errors.Is(err, admin.ErrIncorrectPassword):
			lg.Info("Login rejected", zap.Error(err))
			h.render(w, r, http.StatusUnauthorized, pageLogin, loginData{Error: err.Error()})
		default:
			lg.Error("Login failed", zap.Error(err))
			h.render(w, r, http.StatusInternalServerError, pageLogin, loginData{Error: loginFailedMessage})
		}
		return
	}

	if err := h.sessions.LoginAdmin(w, r); err != nil {
		lg.Error("Start session", zap.Error(err))
		h.render(w, r, http.StatusInternalServerError, pageLogin, loginData{Error: loginFailedMessage})
		return
	}
	lg.Info("Login successful")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		zctx.From(r.Context()).Warn("Destroy session", zap.Error(err))
	}
	http.Redirect(w, r, loginPath, http.StatusFound)
}
