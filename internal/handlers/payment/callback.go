package payment

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
)

// 🟢 GET|POST /api/checkout/callback/:gateway?order_id=...&status=success|failure
// Retour de la passerelle après paiement. En cas d'échec la commande est annulée ;
// en cas de succès elle reste en préparation.
func PaymentCallback(c *gin.Context) {
	gateway := c.Param("gateway")
	if !IsSupportedMethod(gateway) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Passerelle inconnue"})
		return
	}

	orderID, err := uuid.Parse(c.Query("order_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}
	status := c.Query("status")

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

	if status == "success" {
		log.Printf("✅ Paiement %s confirmé pour la commande %s", gateway, orderID)
		c.Redirect(http.StatusFound, frontendURL()+"/orders/"+orderID.String()+"?payment=success")
		return
	}

	// Échec ou abandon : annulation si la commande est encore en préparation
	if models.CanTransition(currentStatus, models.OrderCancelled) {
		if err := session.Query("UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?",
			models.OrderCancelled, time.Now(), gocql.UUID(orderID)).Exec(); err != nil {
			log.Printf("❌ Annulation commande %s impossible: %v", orderID, err)
		} else {
			log.Printf("⚠️ Paiement %s échoué, commande %s annulée", gateway, orderID)
		}
	}

	c.Redirect(http.StatusFound, frontendURL()+"/orders/"+orderID.String()+"?payment=failure")
}
