package reportshandler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kudos/internal/domain/directory"
	"kudos/internal/domain/reports"
	"kudos/internal/transport/http/api"
	"kudos/internal/transport/http/middleware"
)

type Handler struct {
	Svc *reports.Service
	Dir *directory.Store
}

func NewHandler(svc *reports.Service, dir *directory.Store) *Handler {
	return &Handler{Svc: svc, Dir: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	adminOnly := middleware.RequireRole(h.Dir, directory.RoleAdmin, directory.RoleHR)
	r.With(adminOnly).Get("/reports/activity.pdf", h.handleActivityPDF)
}

func (h *Handler) handleActivityPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.Svc.ActivityPDF(time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="recognition-activity.pdf"`)
	_, _ = w.Write(pdf)
}
