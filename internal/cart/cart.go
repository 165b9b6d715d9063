// Package cart contient les règles de mutation du panier. Les opérations
// sont pures (elles retournent la nouvelle liste) ; la persistance Redis
// est dans store.go.
package cart

import "freshmart_api/internal/models"

// Add fusionne un article dans le panier : si le produit est déjà présent,
// sa quantité est incrémentée, sinon l'article est ajouté en fin de liste.
func Add(items []models.CartItem, item models.CartItem) []models.CartItem {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			// On rafraîchit les infos produit (prix serveur autoritaire)
			items[i].Name = item.Name
			items[i].Price = item.Price
			items[i].ImageURL = item.ImageURL
			return items
		}
	}
	return append(items, item)
}

// Remove supprime l'article correspondant au produit. Pas d'erreur si absent.
func Remove(items []models.CartItem, productID string) []models.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// UpdateQuantity applique un delta (positif ou négatif) à la quantité d'un
// article. La quantité résultante est max(0, q+delta) ; à 0 l'article est
// retiré du panier — aucun article ne persiste avec une quantité nulle.
func UpdateQuantity(items []models.CartItem, productID string, delta int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			q := items[i].Quantity + delta
			if q <= 0 {
				return Remove(items, productID)
			}
			items[i].Quantity = q
			return items
		}
	}
	return items
}

// Quantity retourne la quantité d'un produit dans le panier (0 si absent).
func Quantity(items []models.CartItem, productID string) int {
	for _, it := range items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}
