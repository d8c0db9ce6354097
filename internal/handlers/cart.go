package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/cart"
)

type CartHandler struct {
	Carts *cart.Manager
}

// 🟢 GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	items, err := h.Carts.Items(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// 🟢 POST /api/cart/add
func (h *CartHandler) AddToCart(c *gin.Context) {
	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	items, err := h.Carts.AddItem(c.Request.Context(), c.GetString("user_id"), input.ProductID, input.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// 🟢 PUT /api/cart/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	items, err := h.Carts.UpdateQuantity(c.Request.Context(), c.GetString("user_id"), c.Param("productId"), input.Quantity)
	if err != nil {
		h.cartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// 🟢 DELETE /api/cart/:productId
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	items, err := h.Carts.RemoveItem(c.Request.Context(), c.GetString("user_id"), c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// 🟢 DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.Carts.Clear(c.Request.Context(), c.GetString("user_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé"})
}

func (h *CartHandler) cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
	case errors.Is(err, cart.ErrItemNotInCart):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article absent du panier"})
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, cart.ErrCartFull):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
	}
}
