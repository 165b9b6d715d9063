package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/database"
	"freshmart_api/internal/services"
)

// 🟢 POST /api/admin/products/:id/images (admin, multipart)
// Upload d'une image produit vers MinIO, URL ajoutée à la fiche.
func UploadProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	productUUID := gocql.UUID(productID)

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image requis"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var imageURLs []string
	if err := session.Query("SELECT image_urls FROM products WHERE product_id = ?", productUUID).
		Scan(&imageURLs); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	url, err := services.UploadProductImage(c.Request.Context(), productUUID.String(), file)
	if err != nil {
		log.Printf("❌ Upload image produit %s: %v", productUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload impossible"})
		return
	}

	imageURLs = append(imageURLs, url)
	if err := session.Query("UPDATE products SET image_urls = ? WHERE product_id = ?",
		imageURLs, productUUID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Image ajoutée",
		"image_url": url,
	})
}
