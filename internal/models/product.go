package models

// Product représente un produit du catalogue.
// Le prix est exprimé dans la plus petite unité monétaire (centimes).
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
	StockCount  int    `json:"stock_count"`
	IsFeatured  bool   `json:"is_featured,omitempty"`
}
