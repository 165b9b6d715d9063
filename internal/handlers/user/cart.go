package user

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/cart"
	"freshmart_api/internal/config"
	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
	"freshmart_api/internal/pricing"
)

// cartReply renvoie le panier avec son détail de prix recalculé.
// Le détail est recalculé à chaque réponse, jamais stocké.
func cartReply(c *gin.Context, ctx context.Context, userID string, items []models.CartItem, message string) {
	voucher, err := cart.SelectedVoucher(ctx, userID)
	if err != nil {
		log.Printf("⚠️ Lecture voucher impossible pour %s: %v", userID, err)
	}

	reply := gin.H{
		"items":   items,
		"pricing": pricing.Quote(items, voucher, config.Pricing()),
	}
	if voucher != nil {
		reply["voucher"] = voucher
	}
	if message != "" {
		reply["message"] = message
	}
	c.JSON(http.StatusOK, reply)
}

// 🟢 GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := c.Request.Context()
	items, err := cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	cartReply(c, ctx, userID, items, "")
}

// 🟢 POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Le prix, le nom et l'image viennent de la fiche produit, jamais du client
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var (
		name      string
		price     float64
		stock     int
		imageURLs []string
		isActive  bool
	)
	err = session.Query(`SELECT name, price, stock, image_urls, is_active
	                     FROM products WHERE product_id = ?`, gocql.UUID(productID)).Scan(
		&name, &price, &stock, &imageURLs, &isActive)
	if err != nil || !isActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	ctx := c.Request.Context()
	items, err := cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	if stock < cart.Quantity(items, input.ProductID)+input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"product":   name,
			"available": stock,
		})
		return
	}

	items = cart.Add(items, models.CartItem{
		ProductID: input.ProductID,
		Name:      name,
		Price:     price,
		Quantity:  input.Quantity,
		ImageURL:  imageURL,
	})

	if err := cart.Save(ctx, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	cartReply(c, ctx, userID, items, "Produit ajouté au panier")
}

// 🟢 PATCH /api/cart/items/:productId
// Applique un delta (positif ou négatif) à la quantité. À zéro, l'article
// est retiré du panier.
func UpdateCartQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	productID := c.Param("productId")
	ctx := c.Request.Context()

	items, err := cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	items = cart.UpdateQuantity(items, productID, input.Delta)

	if err := cart.Save(ctx, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	cartReply(c, ctx, userID, items, "Quantité mise à jour")
}

// ❌ DELETE /api/cart/items/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	ctx := c.Request.Context()

	items, err := cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	items = cart.Remove(items, productID)

	if err := cart.Save(ctx, userID, items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	cartReply(c, ctx, userID, items, "Produit supprimé du panier")
}

// 🧹 DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	if err := cart.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
