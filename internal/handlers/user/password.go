package user

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"freshmart_api/internal/cache"
	"freshmart_api/internal/database"
	"freshmart_api/internal/utils"
)

// 🟢 POST /api/auth/forgot-password
// La réponse est identique que le compte existe ou non, pour ne pas
// divulguer les adresses inscrites.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	reply := gin.H{"message": "Si un compte existe pour cet email, un lien de réinitialisation a été envoyé"}

	u, err := FindUserByEmail(email)
	if err != nil || u.Provider != "local" {
		c.JSON(http.StatusOK, reply)
		return
	}

	token, err := utils.GenerateOpaqueToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := cache.StoreResetToken(context.Background(), token, u.ID); err != nil {
		log.Printf("❌ Stockage token reset impossible: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}
	resetURL := fmt.Sprintf("%s/forgot-password?token=%s", frontend, token)

	go func() {
		if err := utils.SendPasswordResetEmail(u.Email, resetURL); err != nil {
			log.Printf("⚠️ Envoi email reset impossible à %s: %v", u.Email, err)
		}
	}()

	c.JSON(http.StatusOK, reply)
}

// 🟢 POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	ctx := context.Background()
	userID, err := cache.ConsumeResetToken(ctx, input.Token)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Lien invalide ou expiré"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if err := database.GetPreparedUpdatePassword().Bind(hashed, time.Now(), userID).Exec(); err != nil {
		log.Printf("❌ Mise à jour mot de passe impossible: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	log.Printf("✅ Mot de passe réinitialisé pour %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe mis à jour"})
}
