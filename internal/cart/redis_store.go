package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront_back_end/internal/models"
)

// CartTTL : un panier inactif disparaît de Redis au bout de 30 jours.
const CartTTL = 30 * 24 * time.Hour

// RedisStore persiste les paniers en JSON sous les clés "cart:<ownerID>".
// C'est la seule couche de stockage externe du storefront : un panier
// survit ainsi au redémarrage du serveur.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, ownerID string) ([]models.StoredCartItem, error) {
	data, err := s.client.Get(ctx, "cart:"+ownerID).Result()
	if err == redis.Nil {
		return []models.StoredCartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.StoredCartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, ownerID string, items []models.StoredCartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "cart:"+ownerID, data, CartTTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, ownerID string) error {
	return s.client.Del(ctx, "cart:"+ownerID).Err()
}
