package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/dress-catalog/internal/catalog"
	"github.com/javajoker/dress-catalog/internal/config"
	"github.com/javajoker/dress-catalog/internal/kvstore"
	"github.com/javajoker/dress-catalog/internal/middleware"
	"github.com/javajoker/dress-catalog/internal/services"
	"github.com/javajoker/dress-catalog/internal/urlstate"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Catalog:  config.CatalogConfig{UploadDir: t.TempDir(), MaxUploadBytes: 1 << 20},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:5173"},
	}

	store := catalog.NewStore(catalog.DefaultBaseline(), kvstore.NewMemoryStore(), catalog.Options{DefaultBrand: "Custom"})
	store.Load(context.Background())
	catalogService := services.NewCatalogService(store, urlstate.Defaults{MaxPrice: 5000, SiteLabel: "Jyoti's World"})

	return Initialize(cfg, Services{
		Catalog:  catalogService,
		Sessions: services.NewSessionService(catalogService, time.Minute),
		Storage:  services.NewLocalStorageService(cfg.Catalog.UploadDir, cfg.Catalog.MaxUploadBytes),
	}, middleware.NewLimiters())
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","version":"1.0.0","sessions":0}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSAllowsFrontendOrigin(t *testing.T) {
	r := newTestRouter(t)

	req, _ := http.NewRequest("GET", "/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req, _ = http.NewRequest("GET", "/v1/products", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUploadedImageIsServed(t *testing.T) {
	r := newTestRouter(t)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 1, 2, 3, 4}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "dress.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/v1/products/upload-image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response struct {
		Data services.UploadResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	req, _ = http.NewRequest("GET", response.Data.URL, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, png, w.Body.Bytes())
}
