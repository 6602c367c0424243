package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.deps.Orders.ListByStore(r.Context(), callerID(r), pathID(r, "storeID"))
	if err != nil {
		respondError(w, "orders.list", err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) startCheckout(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProductIDs []string `json:"productIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	ids := make([]uuid.UUID, 0, len(in.ProductIDs))
	for _, raw := range in.ProductIDs {
		if id := parseID(raw); id != uuid.Nil {
			ids = append(ids, id)
		}
	}
	sess, err := s.deps.Checkout.Start(r.Context(), pathID(r, "storeID"), ids)
	if err != nil {
		respondError(w, "checkout.start", err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// handleWebhook is the gateway boundary. Signature failures are 400; a
// processing failure is 500 so the provider redelivers; everything else,
// including ignored event types, acks with 200.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body"})
		return
	}
	evt, err := s.deps.Webhooks.ParseEvent(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		log.Warn().Err(err).Msg("webhook rejected")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid signature"})
		return
	}
	if evt == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	if err := s.deps.Fulfillment.HandlePaymentCompleted(r.Context(), *evt); err != nil {
		log.Error().Err(err).Str("op", "webhook.fulfill").Str("event_id", evt.ID).Msg("fulfillment failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	w.WriteHeader(http.StatusOK)
}
