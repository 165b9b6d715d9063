package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
)

// Les rayons du magasin, dans l'ordre d'affichage du front.
var categories = []models.Category{
	{Slug: "fruits", Name: "Fruits"},
	{Slug: "vegetables", Name: "Vegetables"},
	{Slug: "dairy", Name: "Dairy"},
	{Slug: "bakery", Name: "Bakery"},
	{Slug: "meat", Name: "Meat"},
	{Slug: "seafood", Name: "Seafood"},
	{Slug: "beverages", Name: "Beverages"},
	{Slug: "snacks", Name: "Snacks"},
}

func IsKnownCategory(slug string) bool {
	for _, cat := range categories {
		if cat.Slug == slug {
			return true
		}
	}
	return false
}

// 🟢 GET /api/categories
func ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// 🟢 GET /api/categories/:slug/products
func ListProductsByCategory(c *gin.Context) {
	slug := c.Param("slug")
	if !IsKnownCategory(slug) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie inconnue"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT "+productColumns+" FROM products WHERE category = ? ALLOW FILTERING", slug).Iter()

	var products []models.Product
	for {
		p, ok := nextProduct(iter)
		if !ok {
			break
		}
		if p.IsActive {
			products = append(products, p)
		}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération produits catégorie %s: %v", slug, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": slug,
		"products": products,
		"total":    len(products),
	})
}
