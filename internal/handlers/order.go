package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/cart"
	"storefront_back_end/internal/checkout"
	"storefront_back_end/internal/models"
)

type OrderHandler struct {
	Orders *checkout.Engine
	Carts  *cart.Manager
}

// 🟢 POST /api/checkout
// Fige le panier courant en commande puis le vide. Le vidage appartient
// à cette couche : le moteur de commandes ne touche jamais au panier.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ShippingAddress *models.Address `json:"shippingAddress"`
		ShippingMethod  string          `json:"shippingMethod"`
		PaymentMethod   string          `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	items, err := h.Carts.Items(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	order, err := h.Orders.CreateOrder(userID, items, input.ShippingAddress, input.ShippingMethod, input.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		case errors.Is(err, checkout.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		}
		return
	}

	if err := h.Carts.Clear(c.Request.Context(), userID); err != nil {
		// La commande est créée, on ne la perd pas pour un panier mal vidé
		log.Printf("⚠️ Panier %s non vidé après la commande %s: %v", userID, order.ID, err)
	}

	c.JSON(http.StatusCreated, order)
}

// 🟢 GET /api/orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	orders := h.Orders.GetOrdersByUserID(c.GetString("user_id"))

	// Affichage antichronologique
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// 🟢 GET /api/orders/:id
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, ok := h.Orders.GetOrderByID(c.Param("id"))
	// On vérifie que la commande appartient bien à l'utilisateur
	if !ok || order.UserID != c.GetString("user_id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// 🟢 PUT /api/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	h.updateStatus(c, h.Orders.UpdateOrderStatus)
}

// 🟢 PUT /api/orders/:id/payment-status
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	h.updateStatus(c, h.Orders.UpdatePaymentStatus)
}

func (h *OrderHandler) updateStatus(c *gin.Context, update func(string, string) (models.Order, error)) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	order, err := update(c.Param("id"), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		case errors.Is(err, checkout.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Transition de statut invalide"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		}
		return
	}
	c.JSON(http.StatusOK, order)
}
