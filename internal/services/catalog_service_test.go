package services

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/dress-catalog/internal/catalog"
	"github.com/javajoker/dress-catalog/internal/kvstore"
	"github.com/javajoker/dress-catalog/internal/models"
	"github.com/javajoker/dress-catalog/internal/urlstate"
	"github.com/javajoker/dress-catalog/internal/utils"
)

var testDefaults = urlstate.Defaults{MinPrice: 0, MaxPrice: 5000, SiteLabel: "Jyoti's World"}

func newTestCatalogService(kv kvstore.Store) *CatalogService {
	store := catalog.NewStore(catalog.DefaultBaseline(), kv, catalog.Options{
		DefaultBrand: "Custom",
		Merchant:     testDefaults.SiteLabel,
	})
	store.Load(context.Background())
	return NewCatalogService(store, testDefaults)
}

type CatalogServiceTestSuite struct {
	suite.Suite
	kv      *kvstore.MemoryStore
	service *CatalogService
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.kv = kvstore.NewMemoryStore()
	suite.service = newTestCatalogService(suite.kv)
}

func (suite *CatalogServiceTestSuite) decodeRequest(body string) *AddProductRequest {
	var req AddProductRequest
	suite.Require().NoError(json.Unmarshal([]byte(body), &req))
	return &req
}

func (suite *CatalogServiceTestSuite) TestViewFromQuery() {
	view := suite.service.ViewFromQuery(url.Values{"maxP": {"2000"}, "sort": {"priceAsc"}}, "/")

	suite.Equal(1, view.Total)
	suite.Equal("p1", view.Products[0].ID)
	suite.Equal("maxP=2000&sort=priceAsc", view.Query)
	suite.Equal("/?maxP=2000&sort=priceAsc", view.Location)
	suite.Equal([]models.BrandFacet{
		{Brand: "Velora", Count: 1},
		{Brand: "Atria", Count: 0},
	}, view.Brands)
}

func (suite *CatalogServiceTestSuite) TestDefaultViewHasBareLocation() {
	view := suite.service.View(testDefaults.Spec(), "/")

	suite.Equal(2, view.Total)
	suite.Equal("", view.Query)
	suite.Equal("/", view.Location)
	suite.NotNil(view.Products)
}

func (suite *CatalogServiceTestSuite) TestViewBrandsIsNeverNull() {
	view := suite.service.View(testDefaults.Spec(), "/")
	suite.Require().NotNil(view.Spec.Brands)

	data, err := json.Marshal(view)
	suite.Require().NoError(err)
	suite.Contains(string(data), `"brands":[]`)
	suite.NotContains(string(data), `"brands":null`)
}

func (suite *CatalogServiceTestSuite) TestAddProductCoercesNumbers() {
	req := suite.decodeRequest(`{"title":"Tiered Maxi","brand":"","price":"abc","rating":"4.2","image":"https://img.example.com/m.jpg"}`)

	p, added, err := suite.service.AddProduct(context.Background(), req)
	suite.Require().NoError(err)
	suite.Require().True(added)
	suite.Equal(0, p.Price)
	suite.Require().NotNil(p.Rating)
	suite.InDelta(4.2, *p.Rating, 1e-9)
	suite.Equal("Custom", p.Brand)
	suite.Equal("Jyoti's World", p.Merchant)

	view := suite.service.View(testDefaults.Spec(), "/")
	suite.Equal(3, view.Total)
}

func (suite *CatalogServiceTestSuite) TestAddProductHugePriceSaturates() {
	req := suite.decodeRequest(`{"title":"Couture Gown","price":1e20,"image":"https://img.example.com/g.jpg"}`)

	p, added, err := suite.service.AddProduct(context.Background(), req)
	suite.Require().NoError(err)
	suite.Require().True(added)
	suite.Equal(math.MaxInt, p.Price)
}

func (suite *CatalogServiceTestSuite) TestAddProductMissingFieldsIsSilent() {
	for _, body := range []string{
		`{"title":"","image":"https://img.example.com/m.jpg"}`,
		`{"title":"Maxi","image":""}`,
		`{"title":"Maxi","image":"   ","rating":9}`,
	} {
		p, added, err := suite.service.AddProduct(context.Background(), suite.decodeRequest(body))
		suite.NoError(err, body)
		suite.False(added, body)
		suite.Nil(p, body)
	}

	_, err := suite.kv.Get(context.Background(), catalog.StorageKey)
	suite.ErrorIs(err, kvstore.ErrNotFound)
}

func (suite *CatalogServiceTestSuite) TestAddProductValidation() {
	cases := map[string]string{
		"rating": `{"title":"Maxi","image":"https://img.example.com/m.jpg","rating":7}`,
		"price":  `{"title":"Maxi","image":"https://img.example.com/m.jpg","price":-10}`,
		"image":  `{"title":"Maxi","image":"blob:http://localhost/123"}`,
		"url":    `{"title":"Maxi","image":"https://img.example.com/m.jpg","url":"nope"}`,
	}

	for field, body := range cases {
		_, added, err := suite.service.AddProduct(context.Background(), suite.decodeRequest(body))
		suite.Error(err, field)
		suite.False(added)

		errs := utils.GetValidationErrors(err)
		suite.Require().Len(errs, 1, field)
		suite.Equal(field, errs[0].Field)
	}
}

func (suite *CatalogServiceTestSuite) TestBrandSummaryCountsWholeCatalog() {
	_, added, err := suite.service.AddProduct(context.Background(),
		suite.decodeRequest(`{"title":"Slip","brand":"Atria","price":100,"image":"/uploads/products/a.png"}`))
	suite.Require().NoError(err)
	suite.Require().True(added)

	suite.Equal([]models.BrandFacet{
		{Brand: "Velora", Count: 1},
		{Brand: "Atria", Count: 2},
	}, suite.service.BrandSummary())
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func TestAddProductPersistsAcrossRestart(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	service := newTestCatalogService(kv)

	var req AddProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Wrap","image":"https://img.example.com/w.jpg","price":1500}`), &req))
	p, added, err := service.AddProduct(context.Background(), &req)
	require.NoError(t, err)
	require.True(t, added)

	restarted := newTestCatalogService(kv)
	view := restarted.View(testDefaults.Spec(), "/")
	assert.Equal(t, 3, view.Total)

	spec := testDefaults.Spec()
	spec.Query = "wrap"
	found := restarted.View(spec, "/")
	require.Equal(t, 1, found.Total)
	assert.Equal(t, p.ID, found.Products[0].ID)
}
