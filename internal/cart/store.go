package cart

import (
	"context"
	"encoding/json"
	"time"

	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
)

// Le panier et le bon sélectionné vivent dans Redis, par utilisateur.
const TTL = 30 * 24 * time.Hour

func cartKey(userID string) string    { return "cart:" + userID }
func voucherKey(userID string) string { return "voucher:" + userID }

// Load récupère le panier depuis Redis. Un panier absent est un panier vide.
func Load(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := database.Redis.Get(ctx, cartKey(userID)).Result()
	if err != nil || data == "" {
		return []models.CartItem{}, nil
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Save persiste le panier dans Redis avec le TTL de session.
func Save(ctx context.Context, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, cartKey(userID), data, TTL).Err()
}

// Clear vide le panier et le bon sélectionné.
func Clear(ctx context.Context, userID string) error {
	if err := database.Redis.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	return database.Redis.Del(ctx, voucherKey(userID)).Err()
}

// SelectVoucher remplace le bon actuellement sélectionné (au plus un par panier).
func SelectVoucher(ctx context.Context, userID string, v models.Voucher) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return database.Redis.Set(ctx, voucherKey(userID), data, TTL).Err()
}

// SelectedVoucher retourne le bon sélectionné, ou nil si aucun.
func SelectedVoucher(ctx context.Context, userID string) (*models.Voucher, error) {
	data, err := database.Redis.Get(ctx, voucherKey(userID)).Result()
	if err != nil || data == "" {
		return nil, nil
	}

	var v models.Voucher
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, err
	}

	// Le catalogue fait foi : un code retiré du catalogue n'est plus appliqué.
	if _, ok := models.FindVoucher(v.Code); !ok {
		database.Redis.Del(ctx, voucherKey(userID))
		return nil, nil
	}
	return &v, nil
}

// ClearVoucher retire le bon sélectionné.
func ClearVoucher(ctx context.Context, userID string) error {
	return database.Redis.Del(ctx, voucherKey(userID)).Err()
}
