package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshmart_api/internal/models"
)

func item(id string, price float64, qty int) models.CartItem {
	return models.CartItem{ProductID: id, Name: "item-" + id, Price: price, Quantity: qty}
}

func TestAdd(t *testing.T) {
	t.Run("nouveau produit ajouté en fin de liste", func(t *testing.T) {
		items := Add(nil, item("p1", 2.99, 1))
		items = Add(items, item("p2", 1.99, 1))

		require.Len(t, items, 2)
		assert.Equal(t, "p1", items[0].ProductID)
		assert.Equal(t, "p2", items[1].ProductID)
		assert.Equal(t, 1, items[1].Quantity)
	})

	t.Run("produit existant incrémente la quantité", func(t *testing.T) {
		items := Add(nil, item("p1", 2.99, 1))
		items = Add(items, item("p1", 2.99, 1))

		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("le prix serveur remplace l'ancien prix", func(t *testing.T) {
		items := Add(nil, item("p1", 2.99, 1))
		items = Add(items, item("p1", 3.49, 1))

		require.Len(t, items, 1)
		assert.Equal(t, 3.49, items[0].Price)
	})

	t.Run("quantité nulle ou négative vaut 1", func(t *testing.T) {
		items := Add(nil, item("p1", 2.99, 0))
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})
}

func TestRemove(t *testing.T) {
	items := []models.CartItem{item("p1", 2.99, 2), item("p2", 1.99, 1)}

	items = Remove(items, "p1")
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	// Supprimer un produit absent n'est pas une erreur
	items = Remove(items, "inconnu")
	assert.Len(t, items, 1)
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("delta positif", func(t *testing.T) {
		items := []models.CartItem{item("p1", 2.99, 1)}
		items = UpdateQuantity(items, "p1", 2)
		assert.Equal(t, 3, Quantity(items, "p1"))
	})

	t.Run("delta négatif", func(t *testing.T) {
		items := []models.CartItem{item("p1", 2.99, 3)}
		items = UpdateQuantity(items, "p1", -2)
		assert.Equal(t, 1, Quantity(items, "p1"))
	})

	t.Run("quantité tombée à zéro retire l'article", func(t *testing.T) {
		items := []models.CartItem{item("p1", 2.99, 2), item("p2", 1.99, 1)}
		items = UpdateQuantity(items, "p1", -2)

		require.Len(t, items, 1)
		assert.Equal(t, 0, Quantity(items, "p1"))
	})

	t.Run("delta sous zéro retire aussi l'article", func(t *testing.T) {
		items := []models.CartItem{item("p1", 2.99, 1)}
		items = UpdateQuantity(items, "p1", -5)
		assert.Empty(t, items)
	})

	t.Run("produit absent est un no-op", func(t *testing.T) {
		items := []models.CartItem{item("p1", 2.99, 1)}
		items = UpdateQuantity(items, "inconnu", 1)
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})
}
