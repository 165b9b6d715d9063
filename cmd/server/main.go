package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"freshmart_api/internal/config"
	"freshmart_api/internal/database"
	"freshmart_api/internal/handlers"
	"freshmart_api/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/facebook"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/twitterv2"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY manquant : paiement par carte désactivé")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()

	// ✅ Initialiser les prepared statements pour améliorer les performances
	database.InitPreparedStatements()

	initOAuthProviders()

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendOrigin()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur FreshMart lancé sur le port", port)
	r.Run(":" + port)
}

func frontendOrigin() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}

func initOAuthProviders() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	// ✅ Configuration du store
	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}

	gothic.Store = store

	// ✅ Le provider vient du chemin /api/auth/oauth/:provider, pas de la query
	gothic.GetProviderName = func(req *http.Request) (string, error) {
		if provider, ok := req.Context().Value(handlers.ProviderKey).(string); ok && provider != "" {
			return provider, nil
		}
		if provider := req.URL.Query().Get("provider"); provider != "" {
			return provider, nil
		}
		return "", errors.New("provider not found")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	type oauthConfig struct {
		name, idEnv, secretEnv string
		build                  func(id, secret, callback string) goth.Provider
	}

	configs := []oauthConfig{
		{"google", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
			func(id, secret, cb string) goth.Provider { return google.New(id, secret, cb) }},
		{"facebook", "FACEBOOK_CLIENT_ID", "FACEBOOK_CLIENT_SECRET",
			func(id, secret, cb string) goth.Provider { return facebook.New(id, secret, cb) }},
		{"twitterv2", "TWITTER_CLIENT_ID", "TWITTER_CLIENT_SECRET",
			func(id, secret, cb string) goth.Provider { return twitterv2.New(id, secret, cb) }},
	}

	var providers []goth.Provider
	for _, cfg := range configs {
		id := os.Getenv(cfg.idEnv)
		secret := os.Getenv(cfg.secretEnv)
		if id == "" || secret == "" {
			continue
		}
		callback := baseURL + "/api/auth/oauth/" + cfg.name + "/callback"
		providers = append(providers, cfg.build(id, secret, callback))
		log.Printf("✅ OAuth %s activé", cfg.name)
	}

	if len(providers) == 0 {
		log.Println("⚠️ Aucun provider OAuth configuré")
		return
	}

	goth.UseProviders(providers...)
	log.Printf("✅ %d OAuth provider(s) initialisé(s)", len(providers))
}
