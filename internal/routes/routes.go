package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/middleware"
	"storefront_back_end/internal/session"
)

// Deps rassemble les handlers et le gestionnaire de sessions nécessaires
// au montage des routes.
type Deps struct {
	Sessions *session.Manager
	Products *handlers.ProductHandler
	Auth     *handlers.AuthHandler
	Cart     *handlers.CartHandler
	Orders   *handlers.OrderHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")

	// Catalogue (public)
	api.GET("/products", d.Products.ListProducts)
	api.GET("/products/featured", d.Products.ListFeatured)
	api.GET("/products/:id", d.Products.GetProduct)

	// Auth
	api.POST("/auth/register", d.Auth.Register)
	api.POST("/auth/login", d.Auth.Login)

	// Routes protégées par session
	auth := api.Group("")
	auth.Use(middleware.AuthRequired(d.Sessions))

	auth.POST("/auth/logout", d.Auth.Logout)
	auth.GET("/auth/me", d.Auth.Me)

	auth.GET("/cart", d.Cart.GetCart)
	auth.POST("/cart/add", d.Cart.AddToCart)
	auth.PUT("/cart/:productId", d.Cart.UpdateQuantity)
	auth.DELETE("/cart/:productId", d.Cart.RemoveFromCart)
	auth.DELETE("/cart", d.Cart.ClearCart)

	auth.POST("/checkout", d.Orders.Checkout)
	auth.GET("/orders", d.Orders.GetMyOrders)
	auth.GET("/orders/:id", d.Orders.GetOrderByID)
	auth.PUT("/orders/:id/status", d.Orders.UpdateOrderStatus)
	auth.PUT("/orders/:id/payment-status", d.Orders.UpdatePaymentStatus)
}
