// internal/catalog/seed.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/javajoker/dress-catalog/internal/models"
)

// SeedProvider supplies the baseline catalog.
type SeedProvider interface {
	Baseline() ([]models.Product, error)
}

// BuiltinSeed is the demo baseline shipped with the service.
type BuiltinSeed struct{}

func (BuiltinSeed) Baseline() ([]models.Product, error) {
	return DefaultBaseline(), nil
}

// FileSeed reads the baseline from a JSON array of products.
type FileSeed struct {
	Path string
}

func (f FileSeed) Baseline() ([]models.Product, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	if err := checkUniqueIDs(products); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", f.Path, err)
	}
	return products, nil
}

// NewSeedProvider picks the file seed when a path is configured.
func NewSeedProvider(path string) SeedProvider {
	if path == "" {
		return BuiltinSeed{}
	}
	return FileSeed{Path: path}
}

func checkUniqueIDs(products []models.Product) error {
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		if p.ID == "" {
			return fmt.Errorf("product %q has no id", p.Title)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("duplicate product id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func DefaultBaseline() []models.Product {
	return []models.Product{
		{
			ID:       "p1",
			Title:    "Ribbed Bodycon Mini Dress",
			Brand:    "Velora",
			Price:    1799,
			Rating:   float64Ptr(4.4),
			Reviews:  intPtr(312),
			Colors:   []string{"Black", "Red", "Olive"},
			Sizes:    []string{"XS", "S", "M", "L"},
			Tags:     []string{"mini", "party", "bodycon", "sleek"},
			Image:    "https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?q=80&w=900&auto=format&fit=crop",
			InStock:  boolPtr(true),
			Merchant: "DressHub",
		},
		{
			ID:       "p2",
			Title:    "Cut-out Satin Slip Dress",
			Brand:    "Atria",
			Price:    2499,
			Rating:   float64Ptr(4.6),
			Reviews:  intPtr(118),
			Colors:   []string{"Emerald", "Black"},
			Sizes:    []string{"S", "M", "L"},
			Tags:     []string{"midi", "satin", "evening", "cutout"},
			Image:    "https://images.unsplash.com/photo-1490481651871-ab68de25d43d?q=80&w=900&auto=format&fit=crop",
			InStock:  boolPtr(true),
			Merchant: "GlamKart",
		},
	}
}

func float64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int             { return &i }
func boolPtr(b bool) *bool          { return &b }
