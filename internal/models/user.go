package models

import "time"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Name              string     `json:"name,omitempty"`
	Password          string     `json:"-"`
	Addresses         []Address  `json:"addresses,omitempty"`
	PreferredCurrency string     `json:"preferredCurrency,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
}

// UserSession représente une session authentifiée.
// Le token est une chaîne opaque transportée par le client (header Authorization).
type UserSession struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
