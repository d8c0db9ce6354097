// Package registry fournit le registre multi-valeurs utilisé par les
// composants du storefront : chaque contributeur enregistre des lots de
// valeurs, la lecture renvoie la séquence aplatie dans l'ordre d'insertion.
package registry

import "sync"

// Slot est un registre append-only. Une instance par usage (produits,
// utilisateurs, commandes), passée explicitement aux composants —
// jamais de singleton global.
type Slot[T any] struct {
	mu      sync.RWMutex
	batches [][]T
}

func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Register ajoute un lot de valeurs au registre. Les lots ne sont jamais
// retirés ni dédupliqués.
func (s *Slot[T]) Register(values []T) {
	batch := make([]T, len(values))
	copy(batch, values)

	s.mu.Lock()
	s.batches = append(s.batches, batch)
	s.mu.Unlock()
}

// FlatValues renvoie toutes les valeurs enregistrées, aplaties dans
// l'ordre d'insertion des lots.
func (s *Slot[T]) FlatValues() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, batch := range s.batches {
		out = append(out, batch...)
	}
	return out
}

// Len renvoie le nombre total de valeurs enregistrées.
func (s *Slot[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, batch := range s.batches {
		n += len(batch)
	}
	return n
}
