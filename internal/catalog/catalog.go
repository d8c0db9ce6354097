// Package catalog expose le catalogue produits : enregistrement en
// append-only via un slot partagé, lectures par id, catégorie ou mise
// en avant.
package catalog

import (
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/registry"
)

type Store struct {
	slot            *registry.Slot[models.Product]
	featuredEnabled bool
}

func NewStore(slot *registry.Slot[models.Product], featuredEnabled bool) *Store {
	return &Store{
		slot:            slot,
		featuredEnabled: featuredEnabled,
	}
}

// Register ajoute des produits au catalogue. Les ids en doublon ne sont
// pas dédupliqués : GetByID renvoie la première occurrence.
func (s *Store) Register(products ...models.Product) {
	s.slot.Register(products)
}

// List renvoie tous les produits dans l'ordre d'enregistrement.
func (s *Store) List() []models.Product {
	return s.slot.FlatValues()
}

// GetByID renvoie le premier produit portant cet id. L'absence n'est pas
// une erreur : le booléen fait foi.
func (s *Store) GetByID(id string) (models.Product, bool) {
	for _, p := range s.slot.FlatValues() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// GetByCategory renvoie les produits de la catégorie, dans l'ordre
// d'enregistrement.
func (s *Store) GetByCategory(category string) []models.Product {
	out := []models.Product{}
	for _, p := range s.slot.FlatValues() {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ListFeatured renvoie les produits mis en avant, ou une liste vide si
// la fonctionnalité est désactivée.
func (s *Store) ListFeatured() []models.Product {
	out := []models.Product{}
	if !s.featuredEnabled {
		return out
	}
	for _, p := range s.slot.FlatValues() {
		if p.IsFeatured {
			out = append(out, p)
		}
	}
	return out
}
