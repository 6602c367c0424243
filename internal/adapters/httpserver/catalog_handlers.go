package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marcosvidal/storeadmin/internal/usecase"
)

// catalogHandler serves one entity kind. The five kinds share this handler
// the same way they share the usecase template.
type catalogHandler[T any] struct {
	op string
	uc *usecase.Catalog[T]
}

func mountCatalog[T any](r chi.Router, path, op string, uc *usecase.Catalog[T]) {
	h := &catalogHandler[T]{op: op, uc: uc}
	r.Route("/"+path, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *catalogHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.List(r.Context(), pathID(r, "storeID"))
	if err != nil {
		respondError(w, h.op+".list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *catalogHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.uc.Get(r.Context(), pathID(r, "id"))
	if err != nil {
		respondError(w, h.op+".get", err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *catalogHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	out, err := h.uc.Create(r.Context(), callerID(r), pathID(r, "storeID"), &in)
	if err != nil {
		respondError(w, h.op+".create", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *catalogHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	var in T
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	out, err := h.uc.Update(r.Context(), callerID(r), pathID(r, "storeID"), pathID(r, "id"), &in)
	if err != nil {
		respondError(w, h.op+".update", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *catalogHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.uc.Delete(r.Context(), callerID(r), pathID(r, "storeID"), pathID(r, "id"))
	if err != nil {
		respondError(w, h.op+".delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
