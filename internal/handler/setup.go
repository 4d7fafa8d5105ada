package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

func (h *Handler) setup(w http.ResponseWriter, r *http.Request) {
	lg := zctx.From(r.Context())

	res, err := h.seeder.Run(r.Context())
	if err != nil {
		lg.Error("Setup failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "Error setting up database")
		return
	}
	lg.Info("Database seeded", zap.String("admin", res.Admin), zap.Int("orders", res.Orders))
	writeText(w, http.StatusOK, "Database setup complete. You can now proceed with your exam.")
}
