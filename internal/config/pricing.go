package config

import (
	"log"
	"os"
	"strconv"
)

// Un seul taux de TVA pour tout le parcours : panier et checkout doivent
// afficher le même total.
const (
	DefaultTaxRate     = 0.10
	DefaultShippingFee = 5.99
)

type PricingConfig struct {
	TaxRate     float64 `json:"tax_rate"`
	ShippingFee float64 `json:"shipping_fee"`
}

// Pricing lit la configuration tarifaire depuis l'environnement.
func Pricing() PricingConfig {
	return PricingConfig{
		TaxRate:     envFloat("TAX_RATE", DefaultTaxRate),
		ShippingFee: envFloat("SHIPPING_FEE", DefaultShippingFee),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("⚠️ Valeur invalide pour %s (%q), on garde %.2f", key, raw, fallback)
		return fallback
	}
	return v
}
