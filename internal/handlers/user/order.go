package user

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
)

const OrderColumns = `order_id, user_id, items_json, subtotal, shipping, tax, discount, total,
	voucher_code, payment_method, payment_ref, address_id, status, created_at, updated_at`

// NextOrder lit la ligne suivante d'un itérateur sur la table orders.
func NextOrder(iter *gocql.Iter) (models.Order, bool) {
	var o models.Order
	var itemsJSON string
	if !iter.Scan(&o.ID, &o.UserID, &itemsJSON, &o.Subtotal, &o.Shipping, &o.Tax,
		&o.Discount, &o.Total, &o.VoucherCode, &o.PaymentMethod, &o.PaymentRef,
		&o.AddressID, &o.Status, &o.CreatedAt, &o.UpdatedAt) {
		return o, false
	}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("⚠️ Décodage items commande %s impossible: %v", o.ID, err)
		}
	}
	return o, true
}

// 🟢 GET /api/orders/mine — commandes de l'utilisateur, la plus récente d'abord
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT "+OrderColumns+" FROM orders WHERE user_id = ? ALLOW FILTERING", userID).Iter()

	var orders []models.Order
	for {
		o, ok := NextOrder(iter)
		if !ok {
			break
		}
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// 🟢 GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT "+OrderColumns+" FROM orders WHERE order_id = ?", gocql.UUID(orderID)).Iter()
	o, ok := NextOrder(iter)
	iter.Close()

	// Sécurité : la commande doit appartenir à l'utilisateur
	if !ok || o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, o)
}
