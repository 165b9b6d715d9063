// Package pricing calcule le détail d'un panier : sous-total, livraison,
// TVA, réduction et total. Fonctions pures, recalculées à chaque demande.
package pricing

import (
	"freshmart_api/internal/config"
	"freshmart_api/internal/models"
)

type Breakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Subtotal = Σ(prix unitaire × quantité) sur tous les articles.
func Subtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Quote calcule le détail complet du panier. voucher peut être nil.
// La réduction est plafonnée à subtotal+shipping+tax : un bon fixe ne peut
// jamais rendre le total négatif.
func Quote(items []models.CartItem, voucher *models.Voucher, cfg config.PricingConfig) Breakdown {
	b := Breakdown{Subtotal: Subtotal(items)}

	// Pas de frais de port sur un panier vide
	if len(items) > 0 {
		b.Shipping = cfg.ShippingFee
	}
	b.Tax = b.Subtotal * cfg.TaxRate

	b.Discount = Discount(b.Subtotal, b.Shipping, b.Tax, voucher)
	b.Total = b.Subtotal + b.Shipping + b.Tax - b.Discount
	return b
}

// Discount calcule la réduction d'un bon : V% du sous-total pour un bon en
// pourcentage, montant fixe sinon, plafonnée au montant dû.
func Discount(subtotal, shipping, tax float64, voucher *models.Voucher) float64 {
	if voucher == nil {
		return 0
	}

	var discount float64
	switch voucher.Type {
	case models.VoucherPercentage:
		discount = subtotal * voucher.Value / 100
	case models.VoucherFixed:
		discount = voucher.Value
	default:
		return 0
	}

	if due := subtotal + shipping + tax; discount > due {
		discount = due
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}
