// Package api provides the HTTP handlers for the listing service REST API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"homeboard/internal/authz"
	"homeboard/internal/domain"
	"homeboard/internal/service"
)

var (
	errInvalidBody  = domain.ErrValidation("invalid request body")
	errInvalidLimit = domain.ErrValidation("limit must be a positive integer")
)

// Handler owns the route table. Every route resolves its policy decision
// through the guard before any service call; handlers never inspect roles or
// tokens themselves.
type Handler struct {
	guard  *authz.Guard
	users  *service.UserService
	homes  *service.HomeService
	audit  *service.AuditService
	logger *slog.Logger
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(guard *authz.Guard, users *service.UserService, homes *service.HomeService, audit *service.AuditService, logger *slog.Logger) *Handler {
	return &Handler{guard: guard, users: users, homes: homes, audit: audit, logger: logger}
}

// Routes returns the service's route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/signin", h.signin)
		r.Get("/me", h.whoAmI)
		r.Get("/audit", h.listAudit)

		r.Route("/homes", func(r chi.Router) {
			r.Get("/", h.listHomes)
			r.Post("/", h.createHome)
			r.Route("/{homeID}", func(r chi.Router) {
				r.Get("/", h.getHome)
				r.Put("/", h.updateHome)
				r.Delete("/", h.deleteHome)
				r.Post("/inquiries", h.inquire)
				r.Get("/inquiries", h.listInquiries)
			})
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// authorize runs the guard for the request's operation. The returned
// principal is nil for public operations.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, op authz.Operation) (*domain.Principal, bool) {
	principal, err := h.guard.Authorize(r.Context(), authz.BearerToken(r), op)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return principal, true
}

// homeIDParam parses the {homeID} path segment.
func homeIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "homeID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrValidation("invalid home id %q", raw)
	}
	return id, nil
}
