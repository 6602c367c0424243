package httpserver

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// exportProducts streams the store's full product list (archived included)
// as an xlsx download. Owner-gated: the listing behind it is the admin view.
func (s *Server) exportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.deps.Products.Export(r.Context(), callerID(r), pathID(r, "storeID"))
	if err != nil {
		respondError(w, "products.export", err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Products"
	_ = f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Price", "Category", "Size", "Color", "Featured", "Archived", "Images"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range products {
		category, size, color := "", "", ""
		if p.Category != nil {
			category = p.Category.Name
		}
		if p.Size != nil {
			size = p.Size.Name
		}
		if p.Color != nil {
			color = p.Color.Name
		}
		urls := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			urls = append(urls, img.URL)
		}
		values := []any{
			p.ID.String(), p.Name, p.Price.StringFixed(2),
			category, size, color,
			p.IsFeatured, p.IsArchived, strings.Join(urls, " "),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Str("op", "products.export").Msg("write workbook")
	}
}
