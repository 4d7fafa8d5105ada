package handler

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/juicebar/internal/domain/order"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	pageOrderForm    = "order_form"
	pageConfirmation = "confirmation"
	pageLogin        = "login"
	pageOrders       = "orders"
)

type orderFormData struct {
	Errors []string
	Data   order.Form
}

type confirmationData struct {
	Order *order.Order
	Quote order.Quote
}

type loginData struct {
	Error string
}

type ordersData struct {
	Orders []order.Order
}

// views holds one template set per page, each combined with the layout.
type views map[string]*template.Template

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

func parseViews() (views, error) {
	v := make(views)
	for _, page := range []string{pageOrderForm, pageConfirmation, pageLogin, pageOrders} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.gohtml",
			"templates/"+page+".gohtml",
		)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s template", page)
		}
		v[page] = t
	}
	return v, nil
}

func staticFiles() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

// render executes page into a buffer so a template failure can still
// produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.views[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		zctx.From(r.Context()).Error("Render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
