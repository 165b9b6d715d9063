package payment

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/cart"
	"freshmart_api/internal/config"
	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
	"freshmart_api/internal/pricing"
	"freshmart_api/internal/utils"
)

// 🟢 POST /api/checkout
// Vérifie le panier et le stock, initie le paiement auprès de la passerelle
// choisie puis enregistre la commande et vide le panier.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var req struct {
		AddressID     string `json:"address_id" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if !IsSupportedMethod(req.PaymentMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement non supporté: " + req.PaymentMethod})
		return
	}

	addressID, err := uuid.Parse(req.AddressID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID adresse invalide"})
		return
	}

	ctx := c.Request.Context()

	// 1. Panier non vide
	items, err := cart.Load(ctx, userID)
	if err != nil {
		log.Printf("❌ Erreur lecture panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le panier est vide"})
		return
	}

	// 2. L'adresse de livraison appartient à l'utilisateur
	usersSession, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}
	var addressOwner string
	if err := usersSession.Query("SELECT user_id FROM addresses WHERE address_id = ?",
		gocql.UUID(addressID)).Scan(&addressOwner); err != nil || addressOwner != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Adresse introuvable"})
		return
	}

	// 3. Prix et stock relus côté serveur au moment du paiement
	productsSession, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	type stockIssue struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Requested int    `json:"requested"`
		Available int    `json:"available"`
	}
	var issues []stockIssue
	stocks := make(map[string]int, len(items))

	for i, item := range items {
		productUUID, err := uuid.Parse(item.ProductID)
		if err != nil {
			issues = append(issues, stockIssue{
				ProductID: item.ProductID,
				Name:      item.Name,
				Requested: item.Quantity,
			})
			continue
		}

		var name string
		var price float64
		var stock int
		var isActive bool
		err = productsSession.Query(
			"SELECT name, price, stock, is_active FROM products WHERE product_id = ?",
			gocql.UUID(productUUID)).Scan(&name, &price, &stock, &isActive)
		if err != nil || !isActive {
			issues = append(issues, stockIssue{
				ProductID: item.ProductID,
				Name:      item.Name,
				Requested: item.Quantity,
				Available: 0,
			})
			continue
		}
		if stock < item.Quantity {
			issues = append(issues, stockIssue{
				ProductID: item.ProductID,
				Name:      name,
				Requested: item.Quantity,
				Available: stock,
			})
			continue
		}
		items[i].Name = name
		items[i].Price = price
		stocks[item.ProductID] = stock
	}

	if len(issues) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Stock insuffisant pour certains articles",
			"articles": issues,
		})
		return
	}

	// 4. Montants recalculés avec le bon de réduction sélectionné
	voucher, err := cart.SelectedVoucher(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Lecture bon de réduction impossible: %v", err)
	}
	quote := pricing.Quote(items, voucher, config.Pricing())

	order := models.Order{
		ID:            gocql.TimeUUID(),
		UserID:        userID,
		Items:         items,
		Subtotal:      quote.Subtotal,
		Shipping:      quote.Shipping,
		Tax:           quote.Tax,
		Discount:      quote.Discount,
		Total:         quote.Total,
		PaymentMethod: req.PaymentMethod,
		AddressID:     gocql.UUID(addressID),
		Status:        models.OrderProcessing,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if voucher != nil {
		order.VoucherCode = voucher.Code
	}

	// 5. Initiation du paiement
	result, err := initiatePayment(req.PaymentMethod, order, email)
	if err != nil {
		log.Printf("❌ Initiation paiement %s échouée: %v", req.PaymentMethod, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Initiation du paiement échouée"})
		return
	}
	order.PaymentRef = result.Reference

	// 6. Enregistrement de la commande
	ordersSession, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	itemsJSON, _ := json.Marshal(order.Items)
	err = ordersSession.Query(`INSERT INTO orders (`+OrderColumnsInsert+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, string(itemsJSON), order.Subtotal, order.Shipping,
		order.Tax, order.Discount, order.Total, order.VoucherCode, order.PaymentMethod,
		order.PaymentRef, order.AddressID, order.Status, order.CreatedAt, order.UpdatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur enregistrement commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'enregistrement de la commande"})
		return
	}

	// 7. Décrément du stock
	for _, item := range order.Items {
		productUUID, _ := uuid.Parse(item.ProductID)
		newStock := stocks[item.ProductID] - item.Quantity
		if err := productsSession.Query("UPDATE products SET stock = ? WHERE product_id = ?",
			newStock, gocql.UUID(productUUID)).Exec(); err != nil {
			log.Printf("⚠️ Décrément stock %s impossible: %v", item.ProductID, err)
		}
	}

	// 8. Le panier et le bon sont consommés
	if err := cart.Clear(ctx, userID); err != nil {
		log.Printf("⚠️ Vidage panier impossible: %v", err)
	}
	if err := cart.ClearVoucher(ctx, userID); err != nil {
		log.Printf("⚠️ Suppression bon de réduction impossible: %v", err)
	}

	// 9. Confirmation par email avec facture PDF (asynchrone)
	go utils.SendOrderConfirmation(order, email)

	log.Printf("✅ Commande %s créée (%s, %.2f)", order.ID, order.PaymentMethod, order.Total)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande créée avec succès",
		"order":   order,
		"payment": result,
	})
}

const OrderColumnsInsert = `order_id, user_id, items_json, subtotal, shipping, tax, discount, total,
	voucher_code, payment_method, payment_ref, address_id, status, created_at, updated_at`
