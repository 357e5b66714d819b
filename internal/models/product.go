// internal/models/product.go
package models

// Product is one catalog entry. Field names match the persisted snapshot format.
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Brand    string   `json:"brand"`
	Price    int      `json:"price"`
	Rating   *float64 `json:"rating,omitempty"`
	Reviews  *int     `json:"reviews,omitempty"`
	Colors   []string `json:"colors"`
	Sizes    []string `json:"sizes"`
	Tags     []string `json:"tags"`
	Image    string   `json:"image"`
	InStock  *bool    `json:"inStock,omitempty"`
	Merchant string   `json:"merchant"`
	URL      string   `json:"url,omitempty"`
}

// RatingOrZero treats an absent rating as 0.
func (p Product) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// IsInStock reports false only when the flag is explicitly false.
func (p Product) IsInStock() bool {
	return p.InStock == nil || *p.InStock
}

// BrandFacet is one entry of the brand filter panel.
type BrandFacet struct {
	Brand    string `json:"brand"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// CatalogView is what the presentation layer renders for one filter spec.
type CatalogView struct {
	Products []Product    `json:"products"`
	Total    int          `json:"total"`
	Brands   []BrandFacet `json:"brands"`
	Spec     FilterSpec   `json:"spec"`
	Query    string       `json:"query"`
	Location string       `json:"location"`
}
