package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_back_end/internal/cart"
	"storefront_back_end/internal/catalog"
	"storefront_back_end/internal/checkout"
	"storefront_back_end/internal/config"
	"storefront_back_end/internal/database"
	"storefront_back_end/internal/handlers"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/registry"
	"storefront_back_end/internal/routes"
	"storefront_back_end/internal/session"
	"storefront_back_end/internal/utils"
)

func main() {
	cfg := config.Load()

	// Registres multi-valeurs, une instance par usage
	productSlot := registry.NewSlot[models.Product]()
	userSlot := registry.NewSlot[*models.User]()
	orderSlot := registry.NewSlot[models.Order]()

	catalogStore := catalog.NewStore(productSlot, cfg.EnableFeaturedProducts)
	sessions := session.NewManager(userSlot, cfg.User)

	cartStore := buildCartStore(cfg)
	carts := cart.NewManager(catalogStore, cartStore, cfg.Cart)

	orders := checkout.NewEngine(sessions, orderSlot, cfg.Checkout)

	seedCatalog(catalogStore)
	seedDemoUser(sessions)

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Sessions: sessions,
		Products: &handlers.ProductHandler{Catalog: catalogStore},
		Auth:     &handlers.AuthHandler{Sessions: sessions},
		Cart:     &handlers.CartHandler{Carts: carts},
		Orders:   &handlers.OrderHandler{Orders: orders, Carts: carts},
	})

	log.Println("🚀 Serveur storefront lancé sur le port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Serveur arrêté: %v", err)
	}
}

// buildCartStore choisit la persistance des paniers : Redis si activée et
// joignable, mémoire sinon.
func buildCartStore(cfg *config.Config) cart.Store {
	if !cfg.EnableCartPersistence {
		return cart.NewMemoryStore()
	}

	client, err := database.InitRedis(cfg.RedisHost, cfg.RedisPassword)
	if err != nil {
		log.Printf("⚠️ Persistance panier indisponible (%v) — repli en mémoire", err)
		return cart.NewMemoryStore()
	}
	return cart.NewRedisStore(client)
}

// seedCatalog enregistre les produits de démonstration.
func seedCatalog(store *catalog.Store) {
	store.Register(
		models.Product{
			ID:          "prod-1",
			Name:        "Smartphone X",
			Description: "Latest model with advanced features",
			Price:       79999,
			ImageURL:    "https://example.com/smartphone-x.jpg",
			Category:    "Electronics",
			StockCount:  100,
			IsFeatured:  true,
		},
		models.Product{
			ID:          "prod-2",
			Name:        "Laptop Pro",
			Description: "Powerful laptop for professionals",
			Price:       129999,
			ImageURL:    "https://example.com/laptop-pro.jpg",
			Category:    "Electronics",
			StockCount:  50,
			IsFeatured:  true,
		},
		models.Product{
			ID:          "prod-3",
			Name:        "Bluetooth Headphones",
			Description: "Noise canceling wireless headphones",
			Price:       24999,
			ImageURL:    "https://example.com/headphones.jpg",
			Category:    "Audio",
			StockCount:  200,
		},
	)
	log.Printf("✅ Catalogue initialisé (%d produits)", len(store.List()))
}

// seedDemoUser crée le compte de démonstration.
func seedDemoUser(sessions *session.Manager) {
	password := os.Getenv("DEMO_USER_PASSWORD")
	if password == "" {
		password = "demo1234"
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("⚠️ Compte démo non créé: %v", err)
		return
	}

	user := &models.User{
		ID:       "user-1",
		Email:    "john.doe@example.com",
		Name:     "John Doe",
		Password: hash,
		Addresses: []models.Address{
			{
				Street:     "123 Main St",
				City:       "Anytown",
				State:      "CA",
				PostalCode: "12345",
				Country:    "USA",
			},
		},
		PreferredCurrency: "USD",
		CreatedAt:         time.Now(),
	}

	if err := sessions.RegisterUser(user); err != nil {
		// Inscriptions désactivées ou compte déjà présent
		log.Printf("⚠️ Compte démo non créé: %v", err)
		return
	}
	log.Println("✅ Compte démo enregistré:", user.Email)
}
