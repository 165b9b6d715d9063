package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freshmart_api/internal/cache"
	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
	"freshmart_api/internal/utils"
)

// FindUserByEmail recherche un utilisateur via la table users_by_email.
func FindUserByEmail(email string) (models.User, error) {
	var userID string
	if err := database.GetPreparedGetUserIDByEmail().Bind(email).Scan(&userID); err != nil {
		return models.User{}, err
	}
	return FindUserByID(userID)
}

// FindUserByID charge un utilisateur par son identifiant.
func FindUserByID(userID string) (models.User, error) {
	u := models.User{ID: userID}
	err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&u.Email, &u.Password, &u.Name, &u.Role, &u.Provider, &u.ProviderID,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// InsertUser insère l'utilisateur dans users et users_by_email.
func InsertUser(u models.User) error {
	if err := database.GetPreparedInsertUser().Bind(
		u.ID, u.Email, u.Password, u.Name, u.Role, u.Provider, u.ProviderID,
		u.CreatedAt, u.UpdatedAt).Exec(); err != nil {
		return err
	}
	return database.GetPreparedInsertUserByEmail().Bind(u.Email, u.ID).Exec()
}

func issueTokens(c *gin.Context, u models.User, status int) {
	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	refresh, err := utils.GenerateOpaqueToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}
	if err := cache.StoreRefreshToken(context.Background(), u.ID, refresh); err != nil {
		log.Printf("⚠️ Stockage refresh token impossible: %v", err)
	}

	c.JSON(status, gin.H{
		"token":         token,
		"refresh_token": refresh,
		"userId":        u.ID,
		"email":         u.Email,
		"name":          u.Name,
		"role":          u.Role,
	})
}

// 🟢 POST /api/auth/signup
func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// email déjà pris ?
	if _, err := FindUserByEmail(email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	now := time.Now()
	u := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     email,
		Password:  hashed,
		Role:      "customer",
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := InsertUser(u); err != nil {
		log.Printf("❌ Erreur insertion utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	log.Printf("✅ Nouveau compte: %s", email)
	issueTokens(c, u, http.StatusCreated)
}

// 🟢 POST /api/auth/login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := FindUserByEmail(email)
	if err != nil || u.Provider != "local" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, u.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	issueTokens(c, u, http.StatusOK)
}

// 🟢 POST /api/auth/refresh
func Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := context.Background()
	userID, err := cache.GetRefreshTokenUser(ctx, input.RefreshToken)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide ou expiré"})
		return
	}

	u, err := FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	// Rotation : l'ancien token est révoqué
	cache.RevokeRefreshToken(ctx, input.RefreshToken)
	issueTokens(c, u, http.StatusOK)
}

// 🟢 POST /api/auth/logout
func Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&input)

	if input.RefreshToken != "" {
		cache.RevokeRefreshToken(context.Background(), input.RefreshToken)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// 🟢 GET /api/auth/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	u, err := FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	c.JSON(http.StatusOK, u)
}
