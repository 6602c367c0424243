package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcosvidal/storeadmin/internal/domain"
	"github.com/marcosvidal/storeadmin/internal/usecase"
)

// Reference ids arrive as strings so a malformed id reports the same
// field-specific 400 as a missing one.
type productPayload struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"categoryId"`
	ColorID    string          `json:"colorId"`
	SizeID     string          `json:"sizeId"`
	Images     []struct {
		URL string `json:"url"`
	} `json:"images"`
	IsFeatured bool `json:"isFeatured"`
	IsArchived bool `json:"isArchived"`
}

func (p productPayload) toInput() usecase.ProductInput {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return usecase.ProductInput{
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: parseID(p.CategoryID),
		SizeID:     parseID(p.SizeID),
		ColorID:    parseID(p.ColorID),
		ImageURLs:  urls,
		IsFeatured: p.IsFeatured,
		IsArchived: p.IsArchived,
	}
}

func parseID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.ProductFilter{}
	// A present filter always applies. A malformed id parses to Nil, which no
	// product carries, so it matches nothing rather than widening the listing.
	if raw := q.Get("categoryId"); raw != "" {
		id := parseID(raw)
		f.CategoryID = &id
	}
	if raw := q.Get("colorId"); raw != "" {
		id := parseID(raw)
		f.ColorID = &id
	}
	if raw := q.Get("sizeId"); raw != "" {
		id := parseID(raw)
		f.SizeID = &id
	}
	// Presence alone means "featured only"; the literal value is ignored.
	if _, ok := q["isFeatured"]; ok {
		f.FeaturedOnly = true
	}
	items, err := s.deps.Products.List(r.Context(), pathID(r, "storeID"), f)
	if err != nil {
		respondError(w, "products.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.deps.Products.Get(r.Context(), pathID(r, "id"))
	if err != nil {
		respondError(w, "products.get", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var in productPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := s.deps.Products.Create(r.Context(), callerID(r), pathID(r, "storeID"), in.toInput())
	if err != nil {
		respondError(w, "products.create", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	var in productPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := s.deps.Products.Update(r.Context(), callerID(r), pathID(r, "storeID"), pathID(r, "id"), in.toInput())
	if err != nil {
		respondError(w, "products.update", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.deps.Products.Delete(r.Context(), callerID(r), pathID(r, "storeID"), pathID(r, "id"))
	if err != nil {
		respondError(w, "products.delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
