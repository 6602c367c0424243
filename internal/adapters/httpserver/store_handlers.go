package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marcosvidal/storeadmin/internal/adapters/auth"
)

type storePayload struct {
	Name string `json:"name"`
}

func (s *Server) createStore(w http.ResponseWriter, r *http.Request) {
	var in storePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	store, err := s.deps.Stores.Create(r.Context(), callerID(r), in.Name)
	if err != nil {
		respondError(w, "stores.create", err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

func (s *Server) listStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.deps.Stores.ListByOwner(r.Context(), callerID(r))
	if err != nil {
		respondError(w, "stores.list", err)
		return
	}
	writeJSON(w, http.StatusOK, stores)
}

func (s *Server) updateStore(w http.ResponseWriter, r *http.Request) {
	var in storePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	store, err := s.deps.Stores.Update(r.Context(), callerID(r), pathID(r, "storeID"), in.Name)
	if err != nil {
		respondError(w, "stores.update", err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

func (s *Server) deleteStore(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.deps.Stores.Delete(r.Context(), callerID(r), pathID(r, "storeID"))
	if err != nil {
		respondError(w, "stores.delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// handleIssueToken is the ops-side token exchange: a valid admin API key buys
// a short-lived bearer token for the given user id.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	if s.deps.AdminAPIKey == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "token issuing not configured"})
		return
	}
	if key := r.Header.Get("X-Admin-Key"); key == "" || !auth.SecureCompare(key, s.deps.AdminAPIKey) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		return
	}
	var in struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User id is required"})
		return
	}
	tok, exp, err := s.deps.Auth.Issue(in.UserID, 12*time.Hour)
	if err != nil {
		respondError(w, "auth.token", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "exp": exp.Unix(), "userId": in.UserID})
}
