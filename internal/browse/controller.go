// internal/browse/controller.go
package browse

import (
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/javajoker/dress-catalog/internal/models"
	"github.com/javajoker/dress-catalog/internal/urlstate"
)

// Location is the address bar of one browsing context. Replace overwrites the current
// entry and never adds history.
type Location interface {
	Replace(location string)
	Current() string
}

// MemoryLocation is a Location held in memory.
type MemoryLocation struct {
	mu      sync.RWMutex
	current string
}

func NewMemoryLocation(initial string) *MemoryLocation {
	return &MemoryLocation{current: initial}
}

func (l *MemoryLocation) Replace(location string) {
	l.mu.Lock()
	l.current = location
	l.mu.Unlock()
}

func (l *MemoryLocation) Current() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Update is a partial change; nil fields are left alone.
type Update struct {
	Query       *string   `json:"q,omitempty"`
	Brands      *[]string `json:"brands,omitempty"`
	MinPrice    *int      `json:"min_price,omitempty"`
	MaxPrice    *int      `json:"max_price,omitempty"`
	InStockOnly *bool     `json:"in_stock_only,omitempty"`
	Sort        *string   `json:"sort,omitempty"`
	SiteLabel   *string   `json:"site_label,omitempty"`
}

// Controller owns one FilterSpec. Every mutating method rewrites the location before it
// returns.
type Controller struct {
	mu       sync.Mutex
	spec     models.FilterSpec
	path     string
	defaults urlstate.Defaults
	location Location
	onChange []func(models.FilterSpec)
}

// NewController reads the initial spec from the location's query string. This is the only
// place the location flows into the spec.
func NewController(location Location, defaults urlstate.Defaults) *Controller {
	path, rawQuery, _ := strings.Cut(location.Current(), "?")
	if path == "" {
		path = "/"
	}

	values, _ := url.ParseQuery(rawQuery)
	return &Controller{
		spec:     urlstate.Decode(values, defaults),
		path:     path,
		defaults: defaults,
		location: location,
	}
}

// OnChange registers a hook that runs after the location is rewritten.
func (c *Controller) OnChange(fn func(models.FilterSpec)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = append(c.onChange, fn)
}

// Spec returns a copy of the current spec.
func (c *Controller) Spec() models.FilterSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.spec.Clone()
}

func (c *Controller) Defaults() urlstate.Defaults {
	return c.defaults
}

func (c *Controller) Location() string {
	return c.location.Current()
}

func (c *Controller) SetQuery(q string) {
	c.mutate(func(s *models.FilterSpec) { s.Query = q })
}

// SelectBrand adds brand to the selection, keeping selection order.
func (c *Controller) SelectBrand(brand string) {
	c.mutate(func(s *models.FilterSpec) {
		if brand != "" && !s.HasBrand(brand) {
			s.Brands = append(s.Brands, brand)
		}
	})
}

func (c *Controller) DeselectBrand(brand string) {
	c.mutate(func(s *models.FilterSpec) {
		var kept []string
		for _, b := range s.Brands {
			if b != brand {
				kept = append(kept, b)
			}
		}
		s.Brands = kept
	})
}

func (c *Controller) SetBrands(brands []string) {
	c.mutate(func(s *models.FilterSpec) { s.Brands = dedupe(brands) })
}

func (c *Controller) ClearBrands() {
	c.mutate(func(s *models.FilterSpec) { s.Brands = nil })
}

func (c *Controller) SetMinPrice(p int) {
	c.mutate(func(s *models.FilterSpec) { s.MinPrice = p })
}

func (c *Controller) SetMaxPrice(p int) {
	c.mutate(func(s *models.FilterSpec) { s.MaxPrice = p })
}

func (c *Controller) SetInStockOnly(v bool) {
	c.mutate(func(s *models.FilterSpec) { s.InStockOnly = v })
}

func (c *Controller) SetSort(mode models.SortMode) {
	c.mutate(func(s *models.FilterSpec) { s.Sort = models.ParseSortMode(string(mode)) })
}

func (c *Controller) SetSiteLabel(label string) {
	c.mutate(func(s *models.FilterSpec) { s.SiteLabel = label })
}

// Apply makes all changes in u as a single event.
func (c *Controller) Apply(u Update) {
	c.mutate(func(s *models.FilterSpec) {
		if u.Query != nil {
			s.Query = *u.Query
		}
		if u.Brands != nil {
			s.Brands = dedupe(*u.Brands)
		}
		if u.MinPrice != nil {
			s.MinPrice = *u.MinPrice
		}
		if u.MaxPrice != nil {
			s.MaxPrice = *u.MaxPrice
		}
		if u.InStockOnly != nil {
			s.InStockOnly = *u.InStockOnly
		}
		if u.Sort != nil {
			s.Sort = models.ParseSortMode(*u.Sort)
		}
		if u.SiteLabel != nil {
			s.SiteLabel = *u.SiteLabel
		}
	})
}

func (c *Controller) mutate(fn func(*models.FilterSpec)) {
	c.mu.Lock()
	fn(&c.spec)
	spec := c.spec.Clone()
	hooks := slices.Clone(c.onChange)
	c.location.Replace(urlstate.Location(c.path, spec, c.defaults))
	c.mu.Unlock()

	for _, hook := range hooks {
		hook(spec)
	}
}

func dedupe(brands []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(brands))
	for _, b := range brands {
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
