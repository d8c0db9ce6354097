// Package session gère les comptes utilisateurs et le cycle de vie des
// sessions : émission d'un token opaque, validation avec purge paresseuse
// des sessions expirées, révocation explicite au logout.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/registry"
)

var (
	ErrRegistrationDisabled = errors.New("inscription désactivée")
	ErrEmailTaken           = errors.New("un compte avec cet email existe déjà")
	ErrUserNotFound         = errors.New("utilisateur introuvable")
)

// Config du gestionnaire de sessions, alimentée depuis l'environnement.
type Config struct {
	EnableRegistration    bool
	SessionTimeoutMinutes int
}

// Manager détient l'état des sessions du processus. Une seule session par
// token ; plusieurs sessions simultanées par utilisateur sont permises.
// Aucune persistance : un redémarrage déconnecte tout le monde.
//
// Les lectures renvoient des copies détachées : l'état interne mutable
// (dernière connexion notamment) n'est jamais exposé par pointeur.
type Manager struct {
	mu       sync.Mutex
	users    *registry.Slot[*models.User]
	sessions map[string]models.UserSession
	timeout  time.Duration
	enabled  bool

	// Now est remplaçable dans les tests pour contrôler l'expiration.
	Now func() time.Time
}

func NewManager(users *registry.Slot[*models.User], cfg Config) *Manager {
	return &Manager{
		users:    users,
		sessions: make(map[string]models.UserSession),
		timeout:  time.Duration(cfg.SessionTimeoutMinutes) * time.Minute,
		enabled:  cfg.EnableRegistration,
		Now:      time.Now,
	}
}

// RegisterUser enregistre un nouveau compte. Refuse si l'inscription est
// désactivée ou si l'email est déjà pris (le premier compte reste valable).
// Le Manager devient propriétaire du compte enregistré.
func (m *Manager) RegisterUser(user *models.User) error {
	if !m.enabled {
		return ErrRegistrationDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.userByEmail(user.Email); ok {
		return ErrEmailTaken
	}
	m.users.Register([]*models.User{user})
	return nil
}

// ListUsers renvoie une copie de tous les comptes dans l'ordre
// d'enregistrement.
func (m *Manager) ListUsers() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.User{}
	for _, u := range m.users.FlatValues() {
		out = append(out, *u)
	}
	return out
}

// GetUserByID renvoie une copie du compte portant cet id. L'absence n'est
// pas une erreur : le booléen fait foi.
func (m *Manager) GetUserByID(id string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.userByID(id)
	if !ok {
		return models.User{}, false
	}
	return *user, true
}

// GetUserByEmail renvoie une copie du premier compte portant cet email.
func (m *Manager) GetUserByEmail(email string) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.userByEmail(email)
	if !ok {
		return models.User{}, false
	}
	return *user, true
}

func (m *Manager) userByID(id string) (*models.User, bool) {
	for _, u := range m.users.FlatValues() {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

func (m *Manager) userByEmail(email string) (*models.User, bool) {
	for _, u := range m.users.FlatValues() {
		if u.Email == email {
			return u, true
		}
	}
	return nil, false
}

// CreateSession ouvre une session pour l'utilisateur : token opaque de
// 256 bits encodé en hexadécimal, expiration absolue à now + timeout.
// Met à jour la date de dernière connexion du compte.
func (m *Manager) CreateSession(userID string) (models.UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.userByID(userID)
	if !ok {
		return models.UserSession{}, ErrUserNotFound
	}

	now := m.Now()
	user.LastLoginAt = &now

	sess := models.UserSession{
		UserID:    userID,
		Token:     generateToken(),
		ExpiresAt: now.Add(m.timeout),
	}
	m.sessions[sess.Token] = sess
	return sess, nil
}

// ValidateSession renvoie une copie de l'utilisateur associé au token tant
// que la session n'est pas expirée. Une session expirée est supprimée au
// passage. L'absence de session renvoie nil, jamais une erreur.
func (m *Manager) ValidateSession(token string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return nil
	}
	if !m.Now().Before(sess.ExpiresAt) {
		delete(m.sessions, token)
		return nil
	}

	user, ok := m.userByID(sess.UserID)
	if !ok {
		return nil
	}
	cp := *user
	return &cp
}

// RemoveSession supprime la session (logout). Idempotent : aucun effet si
// le token est inconnu.
func (m *Manager) RemoveSession(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

// SessionCount renvoie le nombre de sessions encore en mémoire, expirées
// non purgées comprises.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func generateToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand ne tombe pas en panne sur les plateformes supportées
		panic(err)
	}
	return hex.EncodeToString(buf)
}
