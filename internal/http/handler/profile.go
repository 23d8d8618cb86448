package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Aaryan1901/Gigyasa-backend/internal/audit"
	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
)

type ProfileHandler struct {
	Svc   *auth.Service
	Audit audit.Sink
}

// User returns the stored record behind the token's id claim. The
// token can outlive the record, so "User not found" with a valid
// token is a real case, not a bug.
func (h *ProfileHandler) User(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	u, err := h.Svc.Profile(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			errorJSON(w, http.StatusBadRequest, "User not found")
			return
		}
		slog.Error("profile lookup failed", "err", err)
		errorJSON(w, http.StatusInternalServerError, "An error occurred while fetching the user")
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *ProfileHandler) Activity(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())

	uid, err := auth.ParseUserID(claims.UserID)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "User not found")
		return
	}

	limit := 20
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	events, err := h.Audit.RecentByUser(r.Context(), uid, limit)
	if err != nil {
		slog.Error("activity lookup failed", "err", err)
		errorJSON(w, http.StatusInternalServerError, "An error occurred while fetching activity")
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}
