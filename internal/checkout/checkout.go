// Package checkout transforme un instantané de panier en commande figée :
// calcul des montants en unités monétaires entières, attribution d'un id
// opaque, puis progression des statuts de commande et de paiement.
package checkout

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/registry"
)

var (
	ErrUserNotFound      = errors.New("utilisateur introuvable")
	ErrEmptyCart         = errors.New("panier vide")
	ErrOrderNotFound     = errors.New("commande introuvable")
	ErrInvalidTransition = errors.New("transition de statut invalide")
)

// Config du moteur de commandes. Le taux de taxe est en points de base
// (850 = 8,50 %) pour rester en arithmétique entière. StrictTransitions
// active la validation de la machine à états ; désactivée par défaut, les
// statuts sont alors écrasés sans contrôle comme historiquement.
type Config struct {
	TaxRateBasisPoints int64
	EnableShipping     bool
	ShippingFlatCost   int64
	StrictTransitions  bool
}

// UserDirectory est la vue dont le moteur a besoin sur les comptes.
// session.Manager la satisfait.
type UserDirectory interface {
	GetUserByID(id string) (models.User, bool)
}

// Transitions permises quand StrictTransitions est actif.
var orderTransitions = map[string][]string{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

var paymentTransitions = map[string][]string{
	models.PaymentStatusPending:    {models.PaymentStatusProcessing, models.PaymentStatusFailed},
	models.PaymentStatusProcessing: {models.PaymentStatusCompleted, models.PaymentStatusFailed},
	models.PaymentStatusCompleted:  {models.PaymentStatusRefunded},
}

// Engine détient toutes les commandes du processus. Le moteur est seul
// propriétaire d'une commande après sa création ; le vidage du panier
// d'origine reste la responsabilité de l'appelant.
//
// Toutes les méthodes rendent des copies détachées, jamais la commande
// interne : une lecture reste un instantané cohérent même si un statut
// change juste après. Les items, figés à la création, peuvent être
// partagés entre copies sans risque.
type Engine struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	byAge  []string
	slot   *registry.Slot[models.Order]
	users  UserDirectory
	cfg    Config

	// Now est remplaçable dans les tests.
	Now func() time.Time
}

func NewEngine(users UserDirectory, slot *registry.Slot[models.Order], cfg Config) *Engine {
	return &Engine{
		orders: make(map[string]*models.Order),
		slot:   slot,
		users:  users,
		cfg:    cfg,
		Now:    time.Now,
	}
}

// CreateOrder fige l'instantané du panier en commande. Montants :
// subtotal = somme des prix × quantités, taxe arrondie au plus proche
// (demi-centime vers le haut), frais de port forfaitaires si la livraison
// est activée. Les deux statuts démarrent à "pending".
func (e *Engine) CreateOrder(userID string, items []models.CartItem, shippingAddress *models.Address, shippingMethod, paymentMethod string) (models.Order, error) {
	if _, ok := e.users.GetUserByID(userID); !ok {
		return models.Order{}, ErrUserNotFound
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.Product.Price * int64(item.Quantity)
	}
	tax := (subtotal*e.cfg.TaxRateBasisPoints + 5000) / 10000

	var shippingCost int64
	if e.cfg.EnableShipping {
		shippingCost = e.cfg.ShippingFlatCost
	}

	// Copie indépendante : les mutations ultérieures du panier vivant
	// ne touchent pas la commande.
	snapshot := make([]models.CartItem, len(items))
	copy(snapshot, items)

	now := e.Now()
	order := &models.Order{
		ID:              "order-" + uuid.NewString(),
		UserID:          userID,
		Items:           snapshot,
		ShippingAddress: shippingAddress,
		ShippingMethod:  shippingMethod,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   models.PaymentStatusPending,
		OrderStatus:     models.OrderStatusPending,
		Subtotal:        subtotal,
		Tax:             tax,
		ShippingCost:    shippingCost,
		Total:           subtotal + tax + shippingCost,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	e.mu.Lock()
	e.orders[order.ID] = order
	e.byAge = append(e.byAge, order.ID)
	e.mu.Unlock()

	// Le registre reçoit l'instantané de création, pas l'objet vivant
	e.slot.Register([]models.Order{*order})
	return *order, nil
}

// GetOrderByID renvoie une copie de la commande portant cet id. L'absence
// n'est pas une erreur : le booléen fait foi.
func (e *Engine) GetOrderByID(orderID string) (models.Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[orderID]
	if !ok {
		return models.Order{}, false
	}
	return *order, true
}

// GetOrdersByUserID renvoie les commandes de l'utilisateur dans l'ordre
// de création. Le tri antichronologique de l'affichage est du ressort de
// l'appelant.
func (e *Engine) GetOrdersByUserID(userID string) []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := []models.Order{}
	for _, id := range e.byAge {
		if order := e.orders[id]; order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out
}

// UpdateOrderStatus remplace le statut de commande et date la mise à
// jour. En mode strict, seules les transitions de la machine à états sont
// acceptées (cancelled depuis pending/processing uniquement, terminal).
func (e *Engine) UpdateOrderStatus(orderID, status string) (models.Order, error) {
	return e.updateStatus(orderID, status, orderTransitions, func(o *models.Order) *string {
		return &o.OrderStatus
	})
}

// UpdatePaymentStatus remplace le statut de paiement, machine à états
// indépendante de celle de la commande.
func (e *Engine) UpdatePaymentStatus(orderID, status string) (models.Order, error) {
	return e.updateStatus(orderID, status, paymentTransitions, func(o *models.Order) *string {
		return &o.PaymentStatus
	})
}

func (e *Engine) updateStatus(orderID, status string, transitions map[string][]string, field func(*models.Order) *string) (models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	order, ok := e.orders[orderID]
	if !ok {
		return models.Order{}, ErrOrderNotFound
	}

	current := field(order)
	if e.cfg.StrictTransitions && !allowed(transitions, *current, status) {
		return models.Order{}, ErrInvalidTransition
	}

	*current = status
	order.UpdatedAt = e.Now()
	return *order, nil
}

func allowed(transitions map[string][]string, from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
