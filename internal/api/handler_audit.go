package api

import (
	"net/http"
	"strconv"
	"time"

	"homeboard/internal/authz"
)

type auditEntryResponse struct {
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// listAudit returns the caller's own activity trail, newest first.
func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.authorize(w, r, authz.OpListAudit)
	if !ok {
		return
	}

	var limit int64
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			writeError(w, errInvalidLimit)
			return
		}
		limit = n
	}

	entries, err := h.audit.List(r.Context(), principal, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditEntryResponse{
			Action:    e.Action,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
