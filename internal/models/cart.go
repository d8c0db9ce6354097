package models

// CartItem associe un produit du catalogue à une quantité.
// Le produit est une vue empruntée au catalogue, pas une copie maîtresse.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// StoredCartItem est le format de persistance d'une ligne de panier :
// uniquement l'id produit et la quantité. Le produit est re-résolu
// via le catalogue à la relecture.
type StoredCartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
