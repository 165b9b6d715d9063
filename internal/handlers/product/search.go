package product

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freshmart_api/internal/services"
)

// 🟢 GET /api/search/products?q=...&size=...
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q requis"})
		return
	}

	size, _ := strconv.Atoi(c.Query("size"))

	results, err := services.SearchProducts(c.Request.Context(), query, size)
	if err != nil {
		log.Printf("❌ Erreur recherche produits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"products": results,
		"total":    len(results),
	})
}
