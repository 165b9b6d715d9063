// Gestion des commandes côté back-office : suivi et changement de statut.
package admin

import (
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/database"
	"freshmart_api/internal/handlers/user"
	"freshmart_api/internal/models"
)

// 🟢 GET /api/admin/orders?status=... (admin)
func ListOrders(c *gin.Context) {
	statusFilter := c.Query("status")
	if statusFilter != "" && !models.IsOrderStatus(statusFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + statusFilter})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var iter *gocql.Iter
	if statusFilter != "" {
		iter = session.Query("SELECT "+user.OrderColumns+" FROM orders WHERE status = ? ALLOW FILTERING",
			statusFilter).Iter()
	} else {
		iter = session.Query("SELECT " + user.OrderColumns + " FROM orders").Iter()
	}

	var orders []models.Order
	for {
		o, ok := user.NextOrder(iter)
		if !ok {
			break
		}
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération commandes admin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
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

// 🟢 PATCH /api/admin/orders/:id/status (admin)
// Seules les transitions du cycle de vie sont acceptées :
// processing → shipped|cancelled, shipped → delivered.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if !models.IsOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + req.Status})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var currentStatus string
	if err := session.Query("SELECT status FROM orders WHERE order_id = ?",
		gocql.UUID(orderID)).Scan(&currentStatus); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if !models.CanTransition(currentStatus, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Transition de statut non autorisée",
			"current_status": currentStatus,
		})
		return
	}

	if err := session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
		req.Status, time.Now(), gocql.UUID(orderID)).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour statut commande %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	log.Printf("✅ Commande %s: %s → %s", orderID, currentStatus, req.Status)
	c.JSON(http.StatusOK, gin.H{
		"message": "Statut mis à jour",
		"status":  req.Status,
	})
}
