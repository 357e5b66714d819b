// internal/search/facets.go
package search

import "github.com/javajoker/dress-catalog/internal/models"

// AllBrands lists each brand once, in order of first appearance.
func AllBrands(catalog []models.Product) []string {
	seen := make(map[string]struct{}, len(catalog))
	brands := make([]string, 0)
	for _, p := range catalog {
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	return brands
}

// BrandCounts counts results per brand. Every brand in allBrands is present, possibly with 0.
func BrandCounts(allBrands []string, results []models.Product) map[string]int {
	counts := make(map[string]int, len(allBrands))
	for _, b := range allBrands {
		counts[b] = 0
	}
	for _, p := range results {
		counts[p.Brand]++
	}
	return counts
}

// Facets joins AllBrands and BrandCounts into the ordered list the filter panel renders.
func Facets(catalog, results []models.Product, spec models.FilterSpec) []models.BrandFacet {
	brands := AllBrands(catalog)
	counts := BrandCounts(brands, results)

	facets := make([]models.BrandFacet, 0, len(brands))
	for _, b := range brands {
		facets = append(facets, models.BrandFacet{
			Brand:    b,
			Count:    counts[b],
			Selected: spec.HasBrand(b),
		})
	}
	return facets
}
