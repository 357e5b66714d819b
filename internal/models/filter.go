// internal/models/filter.go
package models

type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "priceAsc"
	SortPriceDesc SortMode = "priceDesc"
	SortRating    SortMode = "rating"
)

// ParseSortMode falls back to relevance for anything it does not recognize.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortRating:
		return SortMode(s)
	default:
		return SortRelevance
	}
}

// FilterSpec is the complete, shareable set of search, filter and sort choices.
type FilterSpec struct {
	Query       string   `json:"q"`
	Brands      []string `json:"brands"`
	MinPrice    int      `json:"min_price"`
	MaxPrice    int      `json:"max_price"`
	InStockOnly bool     `json:"in_stock_only"`
	Sort        SortMode `json:"sort"`
	SiteLabel   string   `json:"site_label"`
}

// HasBrand reports whether brand is selected.
func (f FilterSpec) HasBrand(brand string) bool {
	for _, b := range f.Brands {
		if b == brand {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with f.
func (f FilterSpec) Clone() FilterSpec {
	out := f
	if f.Brands != nil {
		out.Brands = append([]string(nil), f.Brands...)
	}
	return out
}
