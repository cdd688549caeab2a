package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/motoshop/motoshop-api/models"
)

// PageSize is the fixed number of catalog items per page
const PageSize = 9

// AllAvailableBrands is the full brand list offered by the catalog filter.
// It is deliberately a fixed catalog-wide list, not derived from current
// inventory, so the filter always offers every brand the shop deals in.
var AllAvailableBrands = []string{
	"BMW", "Benelli", "CFMoto", "Ducati", "Harley-Davidson", "Hero", "Honda",
	"KTM", "Kawasaki", "Keeway", "Motomel", "Royal Enfield", "Serna",
	"Super Soco", "Suzuki", "TVS", "Triumph", "UM", "Vespa", "Yamaha",
}

// CatalogFilter carries the raw, unvalidated filter criteria for a catalog
// query. Empty strings and nil pointers mean "no constraint".
type CatalogFilter struct {
	Search   string
	Brand    string
	Year     string
	PriceMin *float64
	PriceMax *float64
	Page     int
}

// CatalogPage is one page of filtered catalog results plus the metadata
// needed to render filter and pager controls.
type CatalogPage struct {
	Items           []models.Motorcycle `json:"items"`
	Page            int                 `json:"page"`
	TotalPages      int                 `json:"total_pages"`
	TotalCount      int                 `json:"total_count"`
	AvailableBrands []string            `json:"available_brands"`
	AvailableYears  []int               `json:"available_years"`
}

// FilterCatalog applies the filter criteria to the full inventory snapshot
// and slices the result into the requested page. It is a pure function: it
// never errors, ignores a non-numeric year filter, and clamps out-of-range
// page numbers instead of rejecting them.
func FilterCatalog(inventory []models.Motorcycle, filter CatalogFilter) CatalogPage {
	filtered := make([]models.Motorcycle, 0, len(inventory))

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	brand := strings.TrimSpace(filter.Brand)
	year, yearOK := parseYearFilter(filter.Year)

	for _, m := range inventory {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Brand), search) &&
			!strings.Contains(strings.ToLower(m.Model), search) {
			continue
		}
		if brand != "" && m.Brand != brand {
			continue
		}
		if yearOK && m.Year != year {
			continue
		}
		if filter.PriceMin != nil && m.Price < *filter.PriceMin {
			continue
		}
		if filter.PriceMax != nil && m.Price > *filter.PriceMax {
			continue
		}
		filtered = append(filtered, m)
	}

	totalCount := len(filtered)
	totalPages := (totalCount + PageSize - 1) / PageSize
	if totalPages == 0 {
		// Empty result set still renders as a single empty page
		totalPages = 1
	}

	page := filter.Page
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > totalCount {
		start = totalCount
	}
	if end > totalCount {
		end = totalCount
	}

	return CatalogPage{
		Items:           filtered[start:end],
		Page:            page,
		TotalPages:      totalPages,
		TotalCount:      totalCount,
		AvailableBrands: AllAvailableBrands,
		AvailableYears:  distinctYearsDesc(inventory),
	}
}

// parseYearFilter accepts only plain digit strings; signs, spaces or any
// other character disable the year constraint entirely.
func parseYearFilter(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return year, true
}

// distinctYearsDesc returns the distinct years present across the whole
// inventory, newest first. The year dropdown reflects actual stock, unlike
// the fixed brand list.
func distinctYearsDesc(inventory []models.Motorcycle) []int {
	seen := make(map[int]bool, len(inventory))
	years := make([]int, 0, len(inventory))
	for _, m := range inventory {
		if !seen[m.Year] {
			seen[m.Year] = true
			years = append(years, m.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
