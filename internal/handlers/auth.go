package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront_back_end/internal/models"
	"storefront_back_end/internal/session"
	"storefront_back_end/internal/utils"
)

type AuthHandler struct {
	Sessions *session.Manager
}

// 🟢 POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name              string           `json:"name"`
		Email             string           `json:"email" binding:"required,email"`
		Password          string           `json:"password" binding:"required,min=8"`
		Addresses         []models.Address `json:"addresses"`
		PreferredCurrency string           `json:"preferredCurrency"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := &models.User{
		ID:                "user-" + uuid.NewString(),
		Email:             input.Email,
		Name:              input.Name,
		Password:          hashedPassword,
		Addresses:         input.Addresses,
		PreferredCurrency: input.PreferredCurrency,
		CreatedAt:         time.Now(),
	}

	if err := h.Sessions.RegisterUser(user); err != nil {
		switch {
		case errors.Is(err, session.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		case errors.Is(err, session.ErrRegistrationDisabled):
			c.JSON(http.StatusForbidden, gin.H{"error": "Les inscriptions sont désactivées"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		}
		return
	}

	sess, err := h.Sessions.CreateSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
		"userId":    user.ID,
		"email":     user.Email,
		"name":      user.Name,
	})
}

// 🟢 POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	user, ok := h.Sessions.GetUserByEmail(input.Email)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	valid, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	sess, err := h.Sessions.CreateSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     sess.Token,
		"expiresAt": sess.ExpiresAt,
		"userId":    user.ID,
		"email":     user.Email,
		"name":      user.Name,
	})
}

// 🟢 POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.RemoveSession(c.GetString("session_token"))
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// 🟢 GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.Sessions.GetUserByID(c.GetString("user_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	c.JSON(http.StatusOK, user)
}
