package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"freshmart_api/internal/database"
)

const (
	LoginMaxAttempts          = 5
	SignupMaxAttempts         = 3
	ForgotPasswordMaxAttempts = 3

	LoginCooldown          = 15 * time.Minute
	SignupCooldown         = 30 * time.Minute
	ForgotPasswordCooldown = 10 * time.Minute
)

// EmailRateLimit limite les tentatives par e-mail sur un endpoint d'auth.
// Les compteurs vivent dans Redis ; au-delà du seuil, cooldown imposé.
func EmailRateLimit(name string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		cooldownKey := fmt.Sprintf("%s_cooldown:%s", name, input.Email)
		attemptsKey := fmt.Sprintf("%s_attempts:%s", name, input.Email)

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts := database.Redis.Incr(ctx, attemptsKey).Val()
		if attempts == 1 {
			database.Redis.Expire(ctx, attemptsKey, cooldown)
		}

		if attempts > int64(maxAttempts) {
			database.Redis.Set(ctx, cooldownKey, "1", cooldown)
			database.Redis.Del(ctx, attemptsKey)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(cooldown.Minutes())),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func LoginRateLimit() gin.HandlerFunc {
	return EmailRateLimit("login", LoginMaxAttempts, LoginCooldown)
}

func SignupRateLimit() gin.HandlerFunc {
	return EmailRateLimit("signup", SignupMaxAttempts, SignupCooldown)
}

func ForgotPasswordRateLimit() gin.HandlerFunc {
	return EmailRateLimit("forgot", ForgotPasswordMaxAttempts, ForgotPasswordCooldown)
}
