// internal/search/query.go
package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/javajoker/dress-catalog/internal/models"
)

// Relevance weights.
const (
	ratingWeight = 10
	titleBonus   = 5
	tagBonus     = 3
	brandBonus   = 2
)

// Query runs the text, brand, price and in-stock filters, in that order, then sorts.
// The input slice is never modified.
func Query(catalog []models.Product, spec models.FilterSpec) []models.Product {
	needle := Needle(spec.Query)

	list := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if !matchesText(p, needle) {
			continue
		}
		if len(spec.Brands) > 0 && !spec.HasBrand(p.Brand) {
			continue
		}
		if p.Price < spec.MinPrice || p.Price > spec.MaxPrice {
			continue
		}
		if spec.InStockOnly && !p.IsInStock() {
			continue
		}
		list = append(list, p)
	}

	sortProducts(list, spec.Sort, needle)
	return list
}

// Needle is the trimmed, case-folded form of a free-text query.
func Needle(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Score is the relevance of p for an already folded needle.
func Score(p models.Product, needle string) float64 {
	s := p.RatingOrZero() * ratingWeight
	if needle == "" {
		return s
	}
	if titleMatches(p, needle) {
		s += titleBonus
	}
	if tagMatches(p, needle) {
		s += tagBonus
	}
	if brandMatches(p, needle) {
		s += brandBonus
	}
	return s
}

func sortProducts(list []models.Product, mode models.SortMode, needle string) {
	switch mode {
	case models.SortPriceAsc:
		slices.SortStableFunc(list, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case models.SortPriceDesc:
		slices.SortStableFunc(list, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case models.SortRating:
		slices.SortStableFunc(list, func(a, b models.Product) int {
			return cmp.Compare(b.RatingOrZero(), a.RatingOrZero())
		})
	default:
		scored := make([]scoredProduct, len(list))
		for i, p := range list {
			scored[i] = scoredProduct{product: p, score: Score(p, needle)}
		}
		slices.SortStableFunc(scored, func(a, b scoredProduct) int {
			return cmp.Compare(b.score, a.score)
		})
		for i := range scored {
			list[i] = scored[i].product
		}
	}
}

type scoredProduct struct {
	product models.Product
	score   float64
}

func matchesText(p models.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return titleMatches(p, needle) || tagMatches(p, needle) || brandMatches(p, needle)
}

func titleMatches(p models.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Title), needle)
}

func tagMatches(p models.Product, needle string) bool {
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func brandMatches(p models.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Brand), needle)
}
