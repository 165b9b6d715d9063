package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
	"freshmart_api/internal/services"
)

const productColumns = `product_id, name, description, price, stock, category, image_urls,
	rating, is_active, created_at, updated_at`

func nextProduct(iter *gocql.Iter) (models.Product, bool) {
	var p models.Product
	ok := iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category,
		&p.ImageURLs, &p.Rating, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, ok
}

// 🟢 GET /api/products
func ListProducts(c *gin.Context) {
	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT " + productColumns + " FROM products").Iter()

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
		log.Printf("❌ Erreur récupération produits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// 🟢 GET /api/products/:id
func GetProductByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT "+productColumns+" FROM products WHERE product_id = ?",
		gocql.UUID(productID)).Iter()
	p, ok := nextProduct(iter)
	iter.Close()

	if !ok || !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// 🟢 POST /api/admin/products (admin)
func CreateProduct(c *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Stock       int      `json:"stock" binding:"gte=0"`
		Category    string   `json:"category" binding:"required"`
		ImageURLs   []string `json:"image_urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if !IsKnownCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie inconnue"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURLs:   req.ImageURLs,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = session.Query(`INSERT INTO products (product_id, name, description, price, stock, category,
		image_urls, rating, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURLs,
		p.Rating, p.IsActive, p.CreatedAt, p.UpdatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du produit"})
		return
	}

	// Indexation recherche (best-effort)
	if err := services.IndexProduct(c.Request.Context(), p); err != nil {
		log.Printf("⚠️ Indexation produit %s impossible: %v", p.ID, err)
	}

	log.Printf("✅ Produit créé: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Produit créé avec succès",
		"product": p,
	})
}

// 🟢 PUT /api/admin/products/:id (admin)
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}
	productUUID := gocql.UUID(productID)

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT "+productColumns+" FROM products WHERE product_id = ?", productUUID).Iter()
	p, ok := nextProduct(iter)
	iter.Close()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
			return
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
			return
		}
		p.Stock = *req.Stock
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	p.UpdatedAt = time.Now()

	err = session.Query(`UPDATE products SET name = ?, description = ?, price = ?, stock = ?,
		is_active = ?, updated_at = ? WHERE product_id = ?`,
		p.Name, p.Description, p.Price, p.Stock, p.IsActive, p.UpdatedAt, productUUID).Exec()
	if err != nil {
		log.Printf("❌ Erreur mise à jour produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	if p.IsActive {
		if err := services.IndexProduct(c.Request.Context(), p); err != nil {
			log.Printf("⚠️ Réindexation produit %s impossible: %v", p.ID, err)
		}
	} else {
		services.DeleteProductFromIndex(c.Request.Context(), p.ID.String())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour avec succès", "product": p})
}
