package directoryhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kudos/internal/domain/directory"
	"kudos/internal/transport/http/api"
	"kudos/internal/transport/http/middleware"
)

type Handler struct {
	Dir *directory.Store
}

func NewHandler(dir *directory.Store) *Handler {
	return &Handler{Dir: dir}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	directoryRead := middleware.RequireRole(h.Dir, directory.RoleAdmin, directory.RoleHR, directory.RoleManager)
	r.With(directoryRead).Get("/teams", h.handleListTeams)
	r.With(directoryRead).Get("/employees", h.handleListEmployees)
}

type teamView struct {
	directory.Team
	Members []directory.Employee `json:"members"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employee, ok := h.Dir.FindByEmail(identity.Email)
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unresolved_identity", "no employee record for caller", middleware.GetRequestID(r.Context()))
		return
	}

	payload := map[string]any{"employee": employee}
	if team, ok := h.Dir.TeamByID(employee.TeamID); ok {
		payload["team"] = team
	}
	api.Success(w, payload, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams := h.Dir.Teams()
	views := make([]teamView, 0, len(teams))
	for _, team := range teams {
		views = append(views, teamView{Team: team, Members: h.Dir.EmployeesByTeam(team.ID)})
	}
	api.Success(w, views, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Dir.Employees(), middleware.GetRequestID(r.Context()))
}
