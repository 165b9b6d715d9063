package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"

	"freshmart_api/internal/handlers/user"
	"freshmart_api/internal/models"
	"freshmart_api/internal/utils"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

// 🟢 GET /api/auth/oauth/:provider
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// 🟢 GET /api/auth/oauth/:provider/callback
// Upsert de l'utilisateur OAuth puis redirection vers le front avec le JWT.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := user.FindUserByEmail(gothUser.Email)
	if err != nil {
		// Premier login OAuth : création du compte
		now := time.Now()
		u = models.User{
			ID:         uuid.NewString(),
			Name:       gothUser.Name,
			Email:      gothUser.Email,
			Role:       "customer",
			Provider:   gothUser.Provider,
			ProviderID: gothUser.UserID,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := user.InsertUser(u); err != nil {
			log.Printf("❌ Erreur création utilisateur OAuth: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}
		log.Printf("✅ Compte %s créé via %s", u.Email, gothUser.Provider)
	}

	token, err := utils.GenerateJWT(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	c.Redirect(http.StatusTemporaryRedirect,
		fmt.Sprintf("%s/login?token=%s", frontend, url.QueryEscape(token)))
}
