package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"storefront_back_end/internal/cart"
	"storefront_back_end/internal/checkout"
	"storefront_back_end/internal/session"
)

// Config regroupe les réglages du storefront. Les valeurs par défaut
// reproduisent la configuration de démonstration d'origine.
type Config struct {
	Port          string
	RedisHost     string
	RedisPassword string

	EnableFeaturedProducts bool
	EnableCartPersistence  bool

	User     session.Config
	Cart     cart.Config
	Checkout checkout.Config
}

// Load charge le fichier .env puis lit la configuration depuis les
// variables d'environnement.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	return &Config{
		Port:          envString("PORT", "8080"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		EnableFeaturedProducts: envBool("ENABLE_FEATURED_PRODUCTS", true),
		EnableCartPersistence:  envBool("ENABLE_CART_PERSISTENCE", false),

		User: session.Config{
			EnableRegistration:    envBool("ENABLE_REGISTRATION", true),
			SessionTimeoutMinutes: envInt("SESSION_TIMEOUT_MINUTES", 60),
		},
		Cart: cart.Config{
			MaxCartItems:     envInt("MAX_CART_ITEMS", 20),
			StrictValidation: envBool("STRICT_CART_VALIDATION", false),
		},
		Checkout: checkout.Config{
			// 850 points de base = 8,50 %
			TaxRateBasisPoints: int64(envInt("TAX_RATE_BASIS_POINTS", 850)),
			EnableShipping:     envBool("ENABLE_SHIPPING", true),
			ShippingFlatCost:   int64(envInt("SHIPPING_FLAT_COST", 999)),
			StrictTransitions:  envBool("STRICT_ORDER_TRANSITIONS", false),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("⚠️  Valeur invalide pour %s (%q), on garde %v", key, v, fallback)
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Valeur invalide pour %s (%q), on garde %d", key, v, fallback)
		return fallback
	}
	return parsed
}
