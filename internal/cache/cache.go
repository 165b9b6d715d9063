// Package cache regroupe l'état de session volatil stocké dans Redis :
// refresh tokens et tokens de réinitialisation de mot de passe.
package cache

import (
	"context"
	"fmt"
	"time"

	"freshmart_api/internal/database"
)

const (
	RefreshTokenTTL = 30 * 24 * time.Hour
	ResetTokenTTL   = 15 * time.Minute
)

// --- Refresh Tokens ---

// StoreRefreshToken stocke un refresh token pour un utilisateur.
func StoreRefreshToken(ctx context.Context, userID, refreshToken string) error {
	key := fmt.Sprintf("refresh:%s", refreshToken)
	return database.Redis.Set(ctx, key, userID, RefreshTokenTTL).Err()
}

// GetRefreshTokenUser retourne l'utilisateur associé à un refresh token.
func GetRefreshTokenUser(ctx context.Context, refreshToken string) (string, error) {
	key := fmt.Sprintf("refresh:%s", refreshToken)
	return database.Redis.Get(ctx, key).Result()
}

// RevokeRefreshToken invalide un refresh token (logout, reset password).
func RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	key := fmt.Sprintf("refresh:%s", refreshToken)
	return database.Redis.Del(ctx, key).Err()
}

// --- Reset Password Tokens ---

// StoreResetToken stocke un token de réinitialisation (15 min).
func StoreResetToken(ctx context.Context, token, userID string) error {
	key := fmt.Sprintf("reset:%s", token)
	return database.Redis.Set(ctx, key, userID, ResetTokenTTL).Err()
}

// ConsumeResetToken retourne l'utilisateur du token puis l'invalide.
// Un token ne sert qu'une fois.
func ConsumeResetToken(ctx context.Context, token string) (string, error) {
	key := fmt.Sprintf("reset:%s", token)
	userID, err := database.Redis.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}
	database.Redis.Del(ctx, key)
	return userID, nil
}
