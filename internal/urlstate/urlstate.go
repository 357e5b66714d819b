// internal/urlstate/urlstate.go

// Package urlstate maps a FilterSpec to and from the query string of a shareable link.
// Only values that differ from Defaults are written, so the default view has a bare URL.
package urlstate

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/javajoker/dress-catalog/internal/models"
	"github.com/javajoker/dress-catalog/internal/utils"
)

// Query parameter names.
const (
	ParamQuery     = "q"
	ParamBrands    = "brands"
	ParamMinPrice  = "minP"
	ParamMaxPrice  = "maxP"
	ParamInStock   = "inStock"
	ParamSort      = "sort"
	ParamSiteLabel = "brand"
)

// Defaults are the configured values a missing parameter falls back to.
type Defaults struct {
	MinPrice  int
	MaxPrice  int
	SiteLabel string
}

// Spec is the filter spec of a fresh, untouched view.
func (d Defaults) Spec() models.FilterSpec {
	return models.FilterSpec{
		MinPrice:  d.MinPrice,
		MaxPrice:  d.MaxPrice,
		Sort:      models.SortRelevance,
		SiteLabel: d.SiteLabel,
	}
}

// Decode builds a FilterSpec from query parameters.
func Decode(values url.Values, d Defaults) models.FilterSpec {
	spec := d.Spec()

	spec.Query = values.Get(ParamQuery)
	spec.Brands = SplitBrands(values.Get(ParamBrands))

	if v := values.Get(ParamMinPrice); v != "" {
		spec.MinPrice = ParsePrice(v)
	}
	if v := values.Get(ParamMaxPrice); v != "" {
		spec.MaxPrice = ParsePrice(v)
	}

	spec.InStockOnly = values.Get(ParamInStock) == "1"

	if v := values.Get(ParamSort); v != "" {
		spec.Sort = models.ParseSortMode(v)
	}
	if v := values.Get(ParamSiteLabel); v != "" {
		spec.SiteLabel = v
	}

	return spec
}

// DecodeQuery is Decode over a raw query string. A malformed string decodes as far as it parses.
func DecodeQuery(rawQuery string, d Defaults) models.FilterSpec {
	values, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return Decode(values, d)
}

// Encode writes the deviations of spec from d, always in the same parameter order.
func Encode(spec models.FilterSpec, d Defaults) string {
	var params []string
	add := func(key, value string) {
		params = append(params, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	if spec.Query != "" {
		add(ParamQuery, spec.Query)
	}
	if len(spec.Brands) > 0 {
		add(ParamBrands, strings.Join(spec.Brands, ","))
	}
	if spec.MinPrice != d.MinPrice {
		add(ParamMinPrice, strconv.Itoa(spec.MinPrice))
	}
	if spec.MaxPrice != d.MaxPrice {
		add(ParamMaxPrice, strconv.Itoa(spec.MaxPrice))
	}
	if spec.InStockOnly {
		add(ParamInStock, "1")
	}
	if spec.Sort != "" && spec.Sort != models.SortRelevance {
		add(ParamSort, string(spec.Sort))
	}
	if spec.SiteLabel != d.SiteLabel {
		add(ParamSiteLabel, spec.SiteLabel)
	}

	return strings.Join(params, "&")
}

// Location is the path plus encoded query, or the bare path for a default spec.
func Location(path string, spec models.FilterSpec, d Defaults) string {
	if qs := Encode(spec, d); qs != "" {
		return path + "?" + qs
	}
	return path
}

// SplitBrands splits a comma-joined list, dropping empty segments.
func SplitBrands(s string) []string {
	var brands []string
	for _, b := range strings.Split(s, ",") {
		if b != "" {
			brands = append(brands, b)
		}
	}
	return brands
}

// ParsePrice reads a whole or fractional number, truncating fractions. Anything else is 0.
func ParsePrice(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return utils.TruncateInt(f)
	}
	return 0
}
