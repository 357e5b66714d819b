// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/javajoker/dress-catalog/internal/catalog"
	"github.com/javajoker/dress-catalog/internal/models"
	"github.com/javajoker/dress-catalog/internal/search"
	"github.com/javajoker/dress-catalog/internal/urlstate"
	"github.com/javajoker/dress-catalog/internal/utils"
)

type CatalogService struct {
	store    *catalog.Store
	defaults urlstate.Defaults
}

type AddProductRequest struct {
	Title   string            `json:"title" validate:"max=255"`
	Brand   string            `json:"brand" validate:"max=100"`
	Price   utils.LooseNumber `json:"price"`
	Rating  utils.LooseNumber `json:"rating"`
	Reviews utils.LooseNumber `json:"reviews"`
	Image   string            `json:"image" validate:"omitempty,image_ref"`
	InStock *bool             `json:"inStock,omitempty"`
	URL     string            `json:"url" validate:"omitempty,url"`
	Tags    []string          `json:"tags" validate:"max=20,dive,max=50"`
	Colors  []string          `json:"colors" validate:"max=20,dive,max=50"`
	Sizes   []string          `json:"sizes" validate:"max=20,dive,max=20"`
}

// numbers holds the coerced numeric fields so the validator can range-check them.
type numbers struct {
	Price   int      `validate:"gte=0"`
	Rating  *float64 `validate:"omitempty,gte=0,lte=5"`
	Reviews *int     `validate:"omitempty,gte=0"`
}

func NewCatalogService(store *catalog.Store, defaults urlstate.Defaults) *CatalogService {
	return &CatalogService{
		store:    store,
		defaults: defaults,
	}
}

func (s *CatalogService) Defaults() urlstate.Defaults {
	return s.defaults
}

// View runs the query for spec over the current merged catalog.
func (s *CatalogService) View(spec models.FilterSpec, path string) models.CatalogView {
	spec = spec.Clone()
	if spec.Brands == nil {
		spec.Brands = []string{}
	}

	all := s.store.All()
	results := search.Query(all, spec)

	return models.CatalogView{
		Products: results,
		Total:    len(results),
		Brands:   search.Facets(all, results, spec),
		Spec:     spec,
		Query:    urlstate.Encode(spec, s.defaults),
		Location: urlstate.Location(path, spec, s.defaults),
	}
}

// ViewFromQuery decodes the spec from URL parameters, the way a fresh page load does.
func (s *CatalogService) ViewFromQuery(values url.Values, path string) models.CatalogView {
	return s.View(urlstate.Decode(values, s.defaults), path)
}

// BrandSummary counts every brand over the whole, unfiltered catalog.
func (s *CatalogService) BrandSummary() []models.BrandFacet {
	all := s.store.All()
	return search.Facets(all, all, models.FilterSpec{})
}

// AddProduct returns added=false without error when title or image is missing. Range and
// format problems come back as validator errors.
func (s *CatalogService) AddProduct(ctx context.Context, req *AddProductRequest) (*models.Product, bool, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Image) == "" {
		return nil, false, nil
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, false, fmt.Errorf("validation failed: %w", err)
	}

	n := numbers{Price: req.Price.Int(), Rating: req.Rating.Float()}
	if req.Reviews.IsSet() {
		reviews := req.Reviews.Int()
		n.Reviews = &reviews
	}
	if err := utils.ValidateStruct(&n); err != nil {
		return nil, false, fmt.Errorf("validation failed: %w", err)
	}

	product, added := s.store.Add(ctx, catalog.NewProduct{
		Title:   req.Title,
		Brand:   req.Brand,
		Price:   n.Price,
		Rating:  n.Rating,
		Reviews: n.Reviews,
		Image:   req.Image,
		InStock: req.InStock,
		URL:     req.URL,
		Tags:    req.Tags,
		Colors:  req.Colors,
		Sizes:   req.Sizes,
	})
	if !added {
		return nil, false, nil
	}
	return &product, true, nil
}
