// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/dress-catalog/internal/services"
	"github.com/javajoker/dress-catalog/internal/utils"
)

// catalogPath is the page the browse location points at.
const catalogPath = "/"

type ProductHandler struct {
	catalogService *services.CatalogService
	storageService *services.StorageService
}

func NewProductHandler(catalogService *services.CatalogService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	view := h.catalogService.ViewFromQuery(c.Request.URL.Query(), catalogPath)
	utils.ViewResponse(c, view)
}

// POST /products
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req services.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid product input", err.Error())
		return
	}

	product, added, err := h.catalogService.AddProduct(c.Request.Context(), &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		logrus.WithError(err).Error("Failed to add product")
		utils.InternalErrorResponse(c, "")
		return
	}

	if !added {
		utils.SuccessResponse(c, gin.H{"added": false})
		return
	}

	utils.CreatedResponse(c, gin.H{
		"added":   true,
		"product": product,
	})
}

// POST /products/upload-image
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "No image uploaded", err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header)
	if err != nil {
		logrus.WithError(err).WithField("filename", header.Filename).Warn("Rejected product image")
		utils.BadRequestResponse(c, "Image upload failed", err.Error())
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /brands
func (h *ProductHandler) GetBrands(c *gin.Context) {
	utils.SuccessResponse(c, h.catalogService.BrandSummary())
}
