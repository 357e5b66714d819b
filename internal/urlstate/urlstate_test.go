package urlstate

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/dress-catalog/internal/models"
)

var testDefaults = Defaults{MinPrice: 0, MaxPrice: 5000, SiteLabel: "Jyoti's World"}

func TestDecode_MissingParamsUseDefaults(t *testing.T) {
	spec := Decode(url.Values{}, testDefaults)

	assert.Equal(t, testDefaults.Spec(), spec)
	assert.Empty(t, spec.Brands)
	assert.False(t, spec.InStockOnly)
}

func TestDecode_AllParams(t *testing.T) {
	spec := DecodeQuery("?q=satin+slip&brands=Atria,,Velora,&minP=100&maxP=2000&inStock=1&sort=priceDesc&brand=Dress+Hub", testDefaults)

	assert.Equal(t, models.FilterSpec{
		Query:       "satin slip",
		Brands:      []string{"Atria", "Velora"},
		MinPrice:    100,
		MaxPrice:    2000,
		InStockOnly: true,
		Sort:        models.SortPriceDesc,
		SiteLabel:   "Dress Hub",
	}, spec)
}

func TestDecode_LenientValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, spec models.FilterSpec)
	}{
		{"garbage price coerces to zero", "maxP=abc", func(t *testing.T, spec models.FilterSpec) {
			assert.Equal(t, 0, spec.MaxPrice)
		}},
		{"fractional price truncates", "minP=99.9", func(t *testing.T, spec models.FilterSpec) {
			assert.Equal(t, 99, spec.MinPrice)
		}},
		{"inStock other than 1 is false", "inStock=true", func(t *testing.T, spec models.FilterSpec) {
			assert.False(t, spec.InStockOnly)
		}},
		{"unknown sort is relevance", "sort=newest", func(t *testing.T, spec models.FilterSpec) {
			assert.Equal(t, models.SortRelevance, spec.Sort)
		}},
		{"empty site label keeps default", "brand=", func(t *testing.T, spec models.FilterSpec) {
			assert.Equal(t, testDefaults.SiteLabel, spec.SiteLabel)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DecodeQuery(tt.query, testDefaults))
		})
	}
}

func TestEncode_DefaultSpecIsEmpty(t *testing.T) {
	assert.Equal(t, "", Encode(testDefaults.Spec(), testDefaults))
	assert.Equal(t, "/", Location("/", testDefaults.Spec(), testDefaults))
}

func TestEncode_OnlyDeviationsInFixedOrder(t *testing.T) {
	spec := testDefaults.Spec()
	spec.SiteLabel = "My Shop"
	spec.Sort = models.SortRating
	spec.MaxPrice = 3000
	spec.Query = "mini"

	assert.Equal(t, "q=mini&maxP=3000&sort=rating&brand=My+Shop", Encode(spec, testDefaults))
	assert.Equal(t, "/shop?q=mini&maxP=3000&sort=rating&brand=My+Shop", Location("/shop", spec, testDefaults))
}

func TestEncode_BrandsCommaJoined(t *testing.T) {
	spec := testDefaults.Spec()
	spec.Brands = []string{"Atria", "Velora"}

	values, err := url.ParseQuery(Encode(spec, testDefaults))
	require.NoError(t, err)
	assert.Equal(t, "Atria,Velora", values.Get(ParamBrands))
}

func TestRoundTrip(t *testing.T) {
	specs := []models.FilterSpec{
		testDefaults.Spec(),
		{
			Query:       "cut-out & satin",
			Brands:      []string{"Atria", "Velora Co"},
			MinPrice:    250,
			MaxPrice:    4999,
			InStockOnly: true,
			Sort:        models.SortPriceAsc,
			SiteLabel:   "Jyoti's World",
		},
		{
			Query:     "émeraude",
			MinPrice:  0,
			MaxPrice:  5000,
			Sort:      models.SortRating,
			SiteLabel: "Another Label",
		},
	}

	for _, spec := range specs {
		got := DecodeQuery(Encode(spec, testDefaults), testDefaults)
		assert.Equal(t, spec, got)
	}
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 1500, ParsePrice("1500"))
	assert.Equal(t, 1500, ParsePrice(" 1500 "))
	assert.Equal(t, 0, ParsePrice("NaN"))
	assert.Equal(t, 0, ParsePrice(""))
	assert.Equal(t, math.MaxInt, ParsePrice("1e20"))
	assert.Equal(t, math.MaxInt, ParsePrice("99999999999999999999"))
	assert.Equal(t, math.MinInt, ParsePrice("-1e20"))
}

func TestDecode_HugeMaxPriceKeepsEverything(t *testing.T) {
	d := Defaults{MinPrice: 0, MaxPrice: 5000, SiteLabel: "x"}
	spec := Decode(url.Values{"maxP": {"1e20"}}, d)

	assert.Equal(t, math.MaxInt, spec.MaxPrice)
	assert.Equal(t, "maxP="+strconv.Itoa(math.MaxInt), Encode(spec, d))
}
