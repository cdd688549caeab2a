package services

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/motoshop/motoshop-api/models"
)

// CatalogPDFFilename is the fixed download name for the exported catalog
const CatalogPDFFilename = "catalogo_motos_motoshop.pdf"

// Layout constants for the catalog table, in millimeters on a Letter page.
const (
	pageMargin  = 12.7
	colImageW   = 30.0
	colInfoW    = 52.0
	colPriceW   = 26.0
	colDescW    = 82.0
	rowHeight   = 23.0
	thumbWidth  = 25.4
	thumbHeight = 19.0
	pageBottom  = 279.4 - pageMargin
)

// resolvedImage is an image that passed existence and decode checks and is
// ready to be embedded in the document.
type resolvedImage struct {
	data   []byte
	format string // gofpdf image type: PNG, JPG or GIF
}

// imageResolver attempts one strategy for finding a row's image. Resolution
// walks an ordered list of these; the first success wins.
type imageResolver func(m models.Motorcycle) (*resolvedImage, bool)

// catalogImageResolvers builds the fallback chain: the item's own image
// first, then the global placeholder. A caller that exhausts the chain
// renders a textual marker instead.
func catalogImageResolvers(store ImageStore, placeholderKey string) []imageResolver {
	return []imageResolver{
		func(m models.Motorcycle) (*resolvedImage, bool) {
			if m.ImagePath == "" {
				return nil, false
			}
			return loadStoredImage(store, m.ImagePath)
		},
		func(m models.Motorcycle) (*resolvedImage, bool) {
			if placeholderKey == "" {
				return nil, false
			}
			return loadStoredImage(store, placeholderKey)
		},
	}
}

// loadStoredImage reads an image from the store and verifies it decodes.
// A missing, unreadable or corrupt file is reported as a miss, never an
// error; the caller degrades to the next resolution tier.
func loadStoredImage(store ImageStore, key string) (*resolvedImage, bool) {
	if store == nil || !store.Exists(key) {
		return nil, false
	}
	data, err := store.Read(key)
	if err != nil {
		log.Printf("catalog pdf: failed to read image %q: %v", key, err)
		return nil, false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Printf("catalog pdf: failed to decode image %q: %v", key, err)
		return nil, false
	}
	var pdfType string
	switch format {
	case "png":
		pdfType = "PNG"
	case "jpeg":
		pdfType = "JPG"
	case "gif":
		pdfType = "GIF"
	default:
		return nil, false
	}
	return &resolvedImage{data: data, format: pdfType}, true
}

// GroupByBrand partitions the inventory into per-brand groups, preserving
// the order of items within each group, and returns the brand keys in
// ascending alphabetical order. Only brands with at least one item appear.
func GroupByBrand(items []models.Motorcycle) (map[string][]models.Motorcycle, []string) {
	groups := make(map[string][]models.Motorcycle)
	for _, m := range items {
		groups[m.Brand] = append(groups[m.Brand], m)
	}
	brands := make([]string, 0, len(groups))
	for brand := range groups {
		brands = append(brands, brand)
	}
	sort.Strings(brands)
	return groups, brands
}

// GenerateCatalogPDF renders the full inventory as a paginated PDF document,
// grouped by brand with per-row image resolution. The whole document is
// built in one synchronous pass; either the complete byte stream is returned
// or an error and nothing else.
func GenerateCatalogPDF(items []models.Motorcycle, store ImageStore, placeholderKey string) ([]byte, error) {
	sorted := make([]models.Motorcycle, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Brand != sorted[j].Brand {
			return sorted[i].Brand < sorted[j].Brand
		}
		return sorted[i].Model < sorted[j].Model
	})

	groups, brands := GroupByBrand(sorted)
	resolvers := catalogImageResolvers(store, placeholderKey)

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	// Title block, emitted once
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 14, tr("Catálogo Completo de Motocicletas"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "I", 14)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 8, tr("Presentado por MotoShop - Su fuente de pasión sobre ruedas"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	imageCount := 0
	for _, brand := range brands {
		if pdf.GetY()+18+rowHeight > pageBottom {
			pdf.AddPage()
		}
		pdf.SetFont("Helvetica", "BI", 22)
		pdf.SetTextColor(231, 76, 60)
		pdf.CellFormat(0, 10, tr("Marca: "+brand), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		writeTableHeader(pdf, tr)
		for _, m := range groups[brand] {
			if pdf.GetY()+rowHeight > pageBottom {
				pdf.AddPage()
				writeTableHeader(pdf, tr)
			}
			writeCatalogRow(pdf, tr, m, resolvers, &imageCount)
		}
		pdf.Ln(10)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to build catalog pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *gofpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(245, 245, 245)
	pdf.SetFillColor(52, 152, 219)
	pdf.CellFormat(colImageW, 8, tr("Imagen"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colInfoW, 8, tr("Moto (Marca / Modelo / Año)"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colPriceW, 8, tr("Precio"), "1", 0, "C", true, 0, "")
	pdf.CellFormat(colDescW, 8, tr("Descripción"), "1", 1, "C", true, 0, "")
}

func writeCatalogRow(pdf *gofpdf.Fpdf, tr func(string) string, m models.Motorcycle, resolvers []imageResolver, imageCount *int) {
	x0 := pageMargin
	y0 := pdf.GetY()

	// Cell borders
	pdf.SetDrawColor(189, 195, 199)
	pdf.Rect(x0, y0, colImageW, rowHeight, "D")
	pdf.Rect(x0+colImageW, y0, colInfoW, rowHeight, "D")
	pdf.Rect(x0+colImageW+colInfoW, y0, colPriceW, rowHeight, "D")
	pdf.Rect(x0+colImageW+colInfoW+colPriceW, y0, colDescW, rowHeight, "D")

	// Image cell: first resolver that succeeds wins, otherwise a text marker
	var img *resolvedImage
	for _, resolve := range resolvers {
		if resolved, ok := resolve(m); ok {
			img = resolved
			break
		}
	}
	if img != nil {
		*imageCount++
		name := fmt.Sprintf("catalog-img-%d", *imageCount)
		opts := gofpdf.ImageOptions{ImageType: img.format}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.data))
		pdf.ImageOptions(name,
			x0+(colImageW-thumbWidth)/2, y0+(rowHeight-thumbHeight)/2,
			thumbWidth, thumbHeight, false, opts, 0, "")
	} else {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(x0, y0+rowHeight/2-2)
		pdf.CellFormat(colImageW, 4, "No image", "", 0, "C", false, 0, "")
	}

	// Identity cell: brand emphasized, model and year on their own lines
	infoX := x0 + colImageW + 2
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(infoX, y0+3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colInfoW-4, 5, tr(m.Brand), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(infoX, y0+8.5)
	pdf.CellFormat(colInfoW-4, 5, tr(m.Model), "", 0, "L", false, 0, "")
	pdf.SetXY(infoX, y0+14)
	pdf.CellFormat(colInfoW-4, 5, tr(fmt.Sprintf("Año: %d", m.Year)), "", 0, "L", false, 0, "")

	// Price cell, right-aligned with grouped thousands
	pdf.SetXY(x0+colImageW+colInfoW, y0+3)
	pdf.CellFormat(colPriceW-2, 5, FormatPrice(m.Price), "", 0, "R", false, 0, "")

	// Description cell, clipped to the row. SplitText works on UTF-8, so the
	// raw text is split first and each line translated only when written.
	desc := m.Description
	if desc == "" {
		desc = "Sin descripción."
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(52, 73, 94)
	descX := x0 + colImageW + colInfoW + colPriceW + 2
	lines := pdf.SplitText(desc, colDescW-4)
	const maxLines = 5
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += "..."
	}
	for i, line := range lines {
		pdf.SetXY(descX, y0+3+float64(i)*4)
		pdf.CellFormat(colDescW-4, 4, tr(line), "", 0, "L", false, 0, "")
	}

	pdf.SetXY(x0, y0+rowHeight)
}

// FormatPrice renders a price as dollars with comma-grouped thousands and
// exactly two decimal places, e.g. 12999 -> "$12,999.00".
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}
	return "$" + grouped.String() + "." + parts[1]
}
