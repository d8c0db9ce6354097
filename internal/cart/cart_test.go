package cart

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront_back_end/internal/catalog"
	"storefront_back_end/internal/models"
	"storefront_back_end/internal/registry"
)

func newTestCatalog(products ...models.Product) *catalog.Store {
	store := catalog.NewStore(registry.NewSlot[models.Product](), true)
	store.Register(products...)
	return store
}

func newTestManager(cfg Config, products ...models.Product) *Manager {
	return NewManager(newTestCatalog(products...), NewMemoryStore(), cfg)
}

func TestAddItemAppendsThenIncrements(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{},
		models.Product{ID: "p1", Price: 1000},
		models.Product{ID: "p2", Price: 500},
	)

	items, err := m.AddItem(ctx, "owner", "p1", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)

	items, err = m.AddItem(ctx, "owner", "p2", 1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Même produit : la ligne existante est incrémentée, jamais dupliquée
	items, err = m.AddItem(ctx, "owner", "p1", 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	m := newTestManager(Config{})
	_, err := m.AddItem(context.Background(), "owner", "fantome", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestNoDuplicateProductLines(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{},
		models.Product{ID: "p1"},
		models.Product{ID: "p2"},
	)

	_, err := m.AddItem(ctx, "owner", "p1", 1)
	require.NoError(t, err)
	_, err = m.AddItem(ctx, "owner", "p2", 1)
	require.NoError(t, err)
	_, err = m.AddItem(ctx, "owner", "p1", 1)
	require.NoError(t, err)
	_, err = m.UpdateQuantity(ctx, "owner", "p2", 4)
	require.NoError(t, err)
	items, err := m.RemoveItem(ctx, "owner", "p1")
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, item := range items {
		assert.False(t, seen[item.Product.ID], "ligne dupliquée pour %s", item.Product.ID)
		seen[item.Product.ID] = true
	}
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{}, models.Product{ID: "p1"})

	_, err := m.UpdateQuantity(ctx, "owner", "p1", 3)
	assert.ErrorIs(t, err, ErrItemNotInCart)

	_, err = m.AddItem(ctx, "owner", "p1", 1)
	require.NoError(t, err)

	items, err := m.UpdateQuantity(ctx, "owner", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, items[0].Quantity)

	// Mode parité : une quantité < 1 est acceptée telle quelle
	items, err = m.UpdateQuantity(ctx, "owner", "p1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, items[0].Quantity)
}

func TestStrictValidation(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{MaxCartItems: 1, StrictValidation: true},
		models.Product{ID: "p1"},
		models.Product{ID: "p2"},
	)

	_, err := m.AddItem(ctx, "owner", "p1", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = m.AddItem(ctx, "owner", "p1", 1)
	require.NoError(t, err)

	_, err = m.UpdateQuantity(ctx, "owner", "p1", -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Plafond atteint : une nouvelle ligne est refusée, l'incrément passe
	_, err = m.AddItem(ctx, "owner", "p2", 1)
	assert.ErrorIs(t, err, ErrCartFull)
	items, err := m.AddItem(ctx, "owner", "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{}, models.Product{ID: "p1"})

	_, err := m.AddItem(ctx, "owner", "p1", 1)
	require.NoError(t, err)

	items, err := m.RemoveItem(ctx, "owner", "p1")
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = m.RemoveItem(ctx, "owner", "p1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{}, models.Product{ID: "p1"})

	_, err := m.AddItem(ctx, "owner", "p1", 2)
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx, "owner"))

	items, err := m.Items(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreScopedPerOwner(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{}, models.Product{ID: "p1"})

	_, err := m.AddItem(ctx, "alice", "p1", 2)
	require.NoError(t, err)

	items, err := m.Items(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestConcurrentMutationsStayAtomicPerOwner(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(Config{}, models.Product{ID: "p1"})

	// Deux paniers disputés chacun par plusieurs goroutines
	const goroutines, iterations = 8, 25

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		owner := "owner-" + strconv.Itoa(g%2)
		wg.Add(1)
		go func(owner string) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if _, err := m.AddItem(ctx, owner, "p1", 1); err != nil {
					t.Errorf("ajout au panier %s: %v", owner, err)
				}
			}
		}(owner)
	}
	wg.Wait()

	// Aucun incrément perdu, aucune fuite entre paniers
	for _, owner := range []string{"owner-0", "owner-1"} {
		items, err := m.Items(ctx, owner)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, goroutines/2*iterations, items[0].Quantity)
	}
}

func TestRehydrationDropsUnresolvableProducts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(newTestCatalog(models.Product{ID: "p1", Price: 1000}), store, Config{})

	// Panier sérialisé par un autre processus : p2 n'existe plus au catalogue
	require.NoError(t, store.Save(ctx, "owner", []models.StoredCartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	}))

	items, err := m.Items(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestStoredFormatRoundTrips(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	stored := []models.StoredCartItem{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p9", Quantity: 1},
	}
	require.NoError(t, store.Save(ctx, "owner", stored))

	got, err := store.Load(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
