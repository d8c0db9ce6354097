package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/catalog"
)

type ProductHandler struct {
	Catalog *catalog.Store
}

// 🟢 GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, h.Catalog.GetByCategory(category))
		return
	}
	c.JSON(http.StatusOK, h.Catalog.List())
}

// 🟢 GET /api/products/featured
func (h *ProductHandler) ListFeatured(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.ListFeatured())
}

// 🟢 GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.Catalog.GetByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}
