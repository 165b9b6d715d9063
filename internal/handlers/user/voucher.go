package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freshmart_api/internal/cart"
	"freshmart_api/internal/models"
)

// 🟢 GET /api/vouchers — catalogue statique des bons
func ListVouchers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"vouchers": models.VoucherCatalog})
}

// 🟢 POST /api/cart/voucher
// Sélectionne un bon pour le panier ; remplace celui déjà sélectionné.
func ApplyVoucher(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	voucher, ok := models.FindVoucher(input.Code)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Code invalide ou expiré"})
		return
	}

	ctx := c.Request.Context()
	if err := cart.SelectVoucher(ctx, userID, voucher); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde du bon"})
		return
	}

	items, err := cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	cartReply(c, ctx, userID, items, "Bon appliqué: "+voucher.Code)
}

// ❌ DELETE /api/cart/voucher
func ClearVoucher(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	ctx := c.Request.Context()
	if err := cart.ClearVoucher(ctx, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression du bon"})
		return
	}

	items, err := cart.Load(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage panier"})
		return
	}

	cartReply(c, ctx, userID, items, "Bon retiré")
}
