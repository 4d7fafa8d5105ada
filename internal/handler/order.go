package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/juicebar/internal/domain/order"
)

func (h *Handler) orderForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pageOrderForm, orderFormData{})
}

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed form submission")
		return
	}
	form := order.Form{
		Name:        r.PostForm.Get("name"),
		Phone:       r.PostForm.Get("phone"),
		MangoJuices: r.PostForm.Get("mangoJuices"),
		BerryJuices: r.PostForm.Get("berryJuices"),
		AppleJuices: r.PostForm.Get("appleJuices"),
	}

	receipt, err := h.orders.Place(r.Context(), form)
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			h.render(w, r, http.StatusUnprocessableEntity, pageOrderForm, orderFormData{
				Errors: verr.Messages(),
				Data:   form,
			})
			return
		}
		zctx.From(r.Context()).Error("Place order", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "An error occurred while saving your order.")
		return
	}

	h.render(w, r, http.StatusOK, pageConfirmation, confirmationData{
		Order: receipt.Order,
		Quote: receipt.Quote,
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		zctx.From(r.Context()).Error("List orders", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "An error occurred while fetching orders.")
		return
	}
	h.render(w, r, http.StatusOK, pageOrders, ordersData{Orders: orders})
}
