// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/dress-catalog/internal/config"
	"github.com/javajoker/dress-catalog/internal/handlers"
	"github.com/javajoker/dress-catalog/internal/middleware"
	"github.com/javajoker/dress-catalog/internal/services"
)

// Services are the collaborators the HTTP layer is built on.
type Services struct {
	Catalog  *services.CatalogService
	Sessions *services.SessionService
	Storage  *services.StorageService
}

func Initialize(cfg *config.Config, svc Services, limiters *middleware.Limiters) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(svc.Catalog, svc.Storage)
	sessionHandler := handlers.NewSessionHandler(svc.Sessions)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend))
	r.Use(limiters.General.Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"version":  "1.0.0",
			"sessions": svc.Sessions.Count(),
		})
	})

	if !svc.Storage.UsesS3() {
		r.Static(services.LocalUploadPrefix, cfg.Catalog.UploadDir)
	}

	// API v1 routes
	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", limiters.Write.Middleware(), productHandler.AddProduct)
			products.POST("/upload-image", limiters.Upload.Middleware(), productHandler.UploadProductImage)
		}

		v1.GET("/brands", productHandler.GetBrands)

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", limiters.Write.Middleware(), sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.PATCH("/:id", sessionHandler.UpdateSession)
			sessions.PUT("/:id/brands/:brand", sessionHandler.SelectBrand)
			sessions.DELETE("/:id/brands/:brand", sessionHandler.DeselectBrand)
			sessions.DELETE("/:id/brands", sessionHandler.ClearBrands)
		}
	}

	return r
}
