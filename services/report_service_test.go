package services

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/motoshop/motoshop-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyPNG returns a small valid PNG for embedding in test documents
func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func reportInventory() []models.Motorcycle {
	return []models.Motorcycle{
		{ID: 1, Brand: "Honda", Model: "CB1000R", Year: 2024, Price: 12999, Description: "Neo Sports Café.", ImagePath: "honda-cb1000r.png"},
		{ID: 2, Brand: "Honda", Model: "CB500F", Year: 2023, Price: 6999},
		{ID: 3, Brand: "Ducati", Model: "Panigale V4 R", Year: 2024, Price: 42995, ImagePath: "missing.png"},
		{ID: 4, Brand: "Yamaha", Model: "YZF-R1M", Year: 2024, Price: 26999, Description: "Telemetría avanzada."},
	}
}

func TestGenerateCatalogPDF_ProducesDocument(t *testing.T) {
	store := NewMockImageStore()
	require.NoError(t, store.Save(tinyPNG(t), "honda-cb1000r.png"))
	require.NoError(t, store.Save(tinyPNG(t), "placeholder.jpg"))

	pdf, err := GenerateCatalogPDF(reportInventory(), store, "placeholder.jpg")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF document")
}

func TestGenerateCatalogPDF_EmptyCatalog(t *testing.T) {
	pdf, err := GenerateCatalogPDF(nil, NewMockImageStore(), "placeholder.jpg")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateCatalogPDF_MissingImagesStillComplete(t *testing.T) {
	// No stored images at all, no placeholder: every row degrades to the
	// textual marker and generation still completes
	pdf, err := GenerateCatalogPDF(reportInventory(), NewMockImageStore(), "placeholder.jpg")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateCatalogPDF_CorruptImageFallsBack(t *testing.T) {
	store := NewMockImageStore()
	require.NoError(t, store.Save([]byte("not an image"), "honda-cb1000r.png"))
	require.NoError(t, store.Save(tinyPNG(t), "placeholder.jpg"))

	pdf, err := GenerateCatalogPDF(reportInventory(), store, "placeholder.jpg")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateCatalogPDF_UnreadableStore(t *testing.T) {
	store := NewMockImageStore()
	require.NoError(t, store.Save(tinyPNG(t), "honda-cb1000r.png"))
	store.FailReads = true

	pdf, err := GenerateCatalogPDF(reportInventory(), store, "placeholder.jpg")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGenerateCatalogPDF_AccentedDescriptions(t *testing.T) {
	// Spanish text exercises the non-ASCII path both in long descriptions
	// that wrap across several lines and in the empty-description fallback
	// ("Sin descripción.").
	inventory := []models.Motorcycle{
		{ID: 1, Brand: "Ducati", Model: "Panigale V4 R", Year: 2024, Price: 42995,
			Description: "La expresión máxima de la deportividad: motor de 998 cc derivado de MotoGP, " +
				"aerodinámica de competición, electrónica de última generación y una posición de conducción " +
				"pensada únicamente para la máxima eficacia en circuito, vuelta tras vuelta, sin concesión alguna."},
		{ID: 2, Brand: "Vespa", Model: "GTS 300", Year: 2024, Price: 8500},
	}

	pdf, err := GenerateCatalogPDF(inventory, NewMockImageStore(), "placeholder.jpg")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestGroupByBrand(t *testing.T) {
	groups, brands := GroupByBrand(reportInventory())

	// Brands in ascending alphabetical order, only brands with stock
	assert.Equal(t, []string{"Ducati", "Honda", "Yamaha"}, brands)

	// Every item lands in exactly one group
	total := 0
	for _, brand := range brands {
		for _, m := range groups[brand] {
			assert.Equal(t, brand, m.Brand)
			total++
		}
	}
	assert.Equal(t, len(reportInventory()), total)
	assert.Len(t, groups["Honda"], 2)
}

func TestLoadStoredImage(t *testing.T) {
	store := NewMockImageStore()
	require.NoError(t, store.Save(tinyPNG(t), "good.png"))
	require.NoError(t, store.Save([]byte("garbage"), "bad.png"))

	img, ok := loadStoredImage(store, "good.png")
	require.True(t, ok)
	assert.Equal(t, "PNG", img.format)

	_, ok = loadStoredImage(store, "bad.png")
	assert.False(t, ok, "corrupt file must be reported as a miss")

	_, ok = loadStoredImage(store, "absent.png")
	assert.False(t, ok)

	_, ok = loadStoredImage(nil, "good.png")
	assert.False(t, ok)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{12999, "$12,999.00"},
		{999.5, "$999.50"},
		{42995.00, "$42,995.00"},
		{1234567.89, "$1,234,567.89"},
		{0.01, "$0.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatPrice(tt.value))
	}
}
