// Package cart gère les paniers par contexte (utilisateur ou navigateur) :
// une ligne au plus par produit, ordre d'insertion conservé, contenu
// persisté sous forme de paires (productId, quantity) et re-résolu via le
// catalogue à la lecture.
package cart

import (
	"context"
	"errors"
	"sync"

	"storefront_back_end/internal/catalog"
	"storefront_back_end/internal/models"
)

var (
	ErrProductNotFound = errors.New("produit introuvable")
	ErrItemNotInCart   = errors.New("article absent du panier")
	ErrInvalidQuantity = errors.New("quantité invalide")
	ErrCartFull        = errors.New("nombre maximum d'articles atteint")
)

// Config du gestionnaire de paniers. StrictValidation active la couche de
// garde optionnelle (quantité >= 1, plafond d'articles) ; désactivée par
// défaut pour rester compatible avec le comportement historique.
type Config struct {
	MaxCartItems     int
	StrictValidation bool
}

// Manager applique les mutations de panier au-dessus d'un Store. Chaque
// panier appartient à un seul contexte appelant ; deux contextes ne
// partagent jamais leurs lignes.
//
// Un verrou par panier : la lecture-modification-écriture d'un contexte
// reste atomique sans sérialiser les contextes entre eux.
type Manager struct {
	mu       sync.Mutex // protège locks
	locks    map[string]*sync.Mutex
	catalog  *catalog.Store
	store    Store
	maxItems int
	strict   bool
}

func NewManager(cat *catalog.Store, store Store, cfg Config) *Manager {
	return &Manager{
		locks:    make(map[string]*sync.Mutex),
		catalog:  cat,
		store:    store,
		maxItems: cfg.MaxCartItems,
		strict:   cfg.StrictValidation,
	}
}

// ownerLock rend le verrou du panier, créé au premier accès. Les entrées
// vivent aussi longtemps que le processus.
func (m *Manager) ownerLock(ownerID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[ownerID] = lock
	}
	return lock
}

// AddItem ajoute quantity exemplaires du produit au panier. Si le produit
// a déjà une ligne, la quantité existante est incrémentée ; sinon une
// ligne est ajoutée en fin de panier.
func (m *Manager) AddItem(ctx context.Context, ownerID, productID string, quantity int) ([]models.CartItem, error) {
	if m.strict && quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if _, ok := m.catalog.GetByID(productID); !ok {
		return nil, ErrProductNotFound
	}

	lock := m.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range stored {
		if stored[i].ProductID == productID {
			stored[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		if m.strict && m.maxItems > 0 && len(stored) >= m.maxItems {
			return nil, ErrCartFull
		}
		stored = append(stored, models.StoredCartItem{ProductID: productID, Quantity: quantity})
	}

	if err := m.store.Save(ctx, ownerID, stored); err != nil {
		return nil, err
	}
	return m.resolve(stored), nil
}

// UpdateQuantity remplace la quantité de la ligne, telle quelle. La borne
// quantity >= 1 n'est contrôlée qu'en mode strict.
func (m *Manager) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) ([]models.CartItem, error) {
	if m.strict && quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	lock := m.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range stored {
		if stored[i].ProductID == productID {
			stored[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotInCart
	}

	if err := m.store.Save(ctx, ownerID, stored); err != nil {
		return nil, err
	}
	return m.resolve(stored), nil
}

// RemoveItem retire la ligne du produit. Idempotent : aucun effet si la
// ligne est absente.
func (m *Manager) RemoveItem(ctx context.Context, ownerID, productID string) ([]models.CartItem, error) {
	lock := m.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.StoredCartItem, 0, len(stored))
	for _, item := range stored {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := m.store.Save(ctx, ownerID, kept); err != nil {
		return nil, err
	}
	return m.resolve(kept), nil
}

// Clear vide le panier. Appelé par le checkout après création de la
// commande.
func (m *Manager) Clear(ctx context.Context, ownerID string) error {
	lock := m.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()
	return m.store.Delete(ctx, ownerID)
}

// Items renvoie l'instantané ordonné du panier, produits résolus via le
// catalogue. Les lignes dont le produit ne se résout plus sont écartées
// silencieusement.
func (m *Manager) Items(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	lock := m.ownerLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return m.resolve(stored), nil
}

func (m *Manager) resolve(stored []models.StoredCartItem) []models.CartItem {
	items := []models.CartItem{}
	for _, line := range stored {
		product, ok := m.catalog.GetByID(line.ProductID)
		if !ok {
			continue
		}
		items = append(items, models.CartItem{Product: product, Quantity: line.Quantity})
	}
	return items
}
