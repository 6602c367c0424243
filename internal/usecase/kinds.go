package usecase

import (
	"strings"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

func NewBillboards(repo domain.CatalogRepo[domain.Billboard], guard *Guard) *Catalog[domain.Billboard] {
	return NewCatalog(Descriptor[domain.Billboard]{
		Kind: "Billboard",
		Required: []Check[domain.Billboard]{
			{Message: "Label is required", Missing: func(b *domain.Billboard) bool { return strings.TrimSpace(b.Label) == "" }},
			{Message: "Image URL is required", Missing: func(b *domain.Billboard) bool { return strings.TrimSpace(b.ImageURL) == "" }},
		},
		Stamp: func(b *domain.Billboard, id, storeID uuid.UUID) { b.ID = id; b.StoreID = storeID },
	}, repo, guard)
}

func NewCategories(repo domain.CatalogRepo[domain.Category], guard *Guard) *Catalog[domain.Category] {
	return NewCatalog(Descriptor[domain.Category]{
		Kind: "Category",
		Required: []Check[domain.Category]{
			{Message: "Name is required", Missing: func(c *domain.Category) bool { return strings.TrimSpace(c.Name) == "" }},
			{Message: "Billboard id is required", Missing: func(c *domain.Category) bool { return c.BillboardID == uuid.Nil }},
		},
		Stamp: func(c *domain.Category, id, storeID uuid.UUID) { c.ID = id; c.StoreID = storeID },
	}, repo, guard)
}

func NewSizes(repo domain.CatalogRepo[domain.Size], guard *Guard) *Catalog[domain.Size] {
	return NewCatalog(Descriptor[domain.Size]{
		Kind: "Size",
		Required: []Check[domain.Size]{
			{Message: "Name is required", Missing: func(s *domain.Size) bool { return strings.TrimSpace(s.Name) == "" }},
			{Message: "Value is required", Missing: func(s *domain.Size) bool { return strings.TrimSpace(s.Value) == "" }},
		},
		Stamp: func(s *domain.Size, id, storeID uuid.UUID) { s.ID = id; s.StoreID = storeID },
	}, repo, guard)
}

func NewColors(repo domain.CatalogRepo[domain.Color], guard *Guard) *Catalog[domain.Color] {
	return NewCatalog(Descriptor[domain.Color]{
		Kind: "Color",
		Required: []Check[domain.Color]{
			{Message: "Name is required", Missing: func(c *domain.Color) bool { return strings.TrimSpace(c.Name) == "" }},
			{Message: "Value is required", Missing: func(c *domain.Color) bool { return strings.TrimSpace(c.Value) == "" }},
		},
		Validate: func(c *domain.Color) error {
			if len(c.Value) < 4 || !strings.HasPrefix(c.Value, "#") {
				return domain.Invalid("Value must be a hex color code")
			}
			return nil
		},
		Stamp: func(c *domain.Color, id, storeID uuid.UUID) { c.ID = id; c.StoreID = storeID },
	}, repo, guard)
}
