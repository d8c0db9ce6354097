package cart

import (
	"context"
	"sync"

	"storefront_back_end/internal/models"
)

// Store persiste le contenu d'un panier. Le seul format externe est la
// séquence de paires (productId, quantity), restituée telle quelle.
type Store interface {
	Load(ctx context.Context, ownerID string) ([]models.StoredCartItem, error)
	Save(ctx context.Context, ownerID string, items []models.StoredCartItem) error
	Delete(ctx context.Context, ownerID string) error
}

// MemoryStore garde les paniers dans le processus. Utilisé quand la
// persistance Redis est désactivée, et dans les tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]models.StoredCartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.StoredCartItem)}
}

func (s *MemoryStore) Load(_ context.Context, ownerID string) ([]models.StoredCartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.StoredCartItem, len(s.carts[ownerID]))
	copy(items, s.carts[ownerID])
	return items, nil
}

func (s *MemoryStore) Save(_ context.Context, ownerID string, items []models.StoredCartItem) error {
	stored := make([]models.StoredCartItem, len(items))
	copy(stored, items)

	s.mu.Lock()
	s.carts[ownerID] = stored
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ownerID string) error {
	s.mu.Lock()
	delete(s.carts, ownerID)
	s.mu.Unlock()
	return nil
}
