package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"freshmart_api/internal/addressbook"
	"freshmart_api/internal/database"
	"freshmart_api/internal/models"
)

// loadAddresses charge le carnet d'adresses d'un utilisateur.
func loadAddresses(session *gocql.Session, userID string) ([]models.Address, error) {
	iter := session.Query(`SELECT address_id, user_id, label, street, city, state, postal_code, is_default
	                       FROM addresses WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	var list []models.Address
	var a models.Address
	for iter.Scan(&a.ID, &a.UserID, &a.Label, &a.Street, &a.City, &a.State, &a.PostalCode, &a.IsDefault) {
		list = append(list, a)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return list, nil
}

// syncDefaults réécrit le marqueur is_default de chaque adresse du carnet.
func syncDefaults(session *gocql.Session, list []models.Address) {
	for _, a := range list {
		if err := session.Query("UPDATE addresses SET is_default = ? WHERE address_id = ?",
			a.IsDefault, a.ID).Exec(); err != nil {
			log.Printf("⚠️ Mise à jour is_default impossible pour %s: %v", a.ID, err)
		}
	}
}

// 🟢 GET /api/addresses
func ListMyAddresses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	list, err := loadAddresses(session, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur de lecture"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// 🟢 POST /api/addresses
func CreateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "non authentifié"})
		return
	}

	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	list, err := loadAddresses(session, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur de lecture"})
		return
	}

	input.ID = gocql.TimeUUID()
	input.UserID = userID
	// La première adresse du carnet devient l'adresse par défaut
	list = addressbook.Add(list, input)
	input.IsDefault = list[len(list)-1].IsDefault

	err = session.Query(`INSERT INTO addresses (address_id, user_id, label, street, city, state, postal_code, is_default)
	                     VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		input.ID, userID, input.Label, input.Street, input.City, input.State, input.PostalCode, input.IsDefault).Exec()
	if err != nil {
		log.Printf("❌ Erreur insertion adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Impossible d'ajouter l'adresse"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Adresse créée",
		"address": input,
	})
}

// 🟢 PUT /api/addresses/:id
func UpdateAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID invalide"})
		return
	}
	addressUUID := gocql.UUID(addressID)

	var input struct {
		Label      string `json:"label"`
		Street     string `json:"street"`
		City       string `json:"city"`
		State      string `json:"state"`
		PostalCode string `json:"postal_code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	// Vérifier que l'adresse appartient à l'utilisateur
	var ownerID string
	err = session.Query("SELECT user_id FROM addresses WHERE address_id = ?", addressUUID).Scan(&ownerID)
	if err != nil || ownerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"message": "Adresse non trouvée"})
		return
	}

	err = session.Query(`UPDATE addresses SET label = ?, street = ?, city = ?, state = ?, postal_code = ?
	                     WHERE address_id = ?`,
		input.Label, input.Street, input.City, input.State, input.PostalCode, addressUUID).Exec()
	if err != nil {
		log.Printf("❌ Erreur mise à jour adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Mise à jour impossible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Adresse mise à jour", "id": c.Param("id")})
}

// 🟢 PATCH /api/addresses/:id/default
func MakeDefaultAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID invalide"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	list, err := loadAddresses(session, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur de lecture"})
		return
	}

	list, err = addressbook.SetDefault(list, gocql.UUID(addressID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Adresse non trouvée"})
		return
	}

	syncDefaults(session, list)
	c.JSON(http.StatusOK, gin.H{"message": "Adresse mise par défaut", "id": c.Param("id")})
}

// ❌ DELETE /api/addresses/:id
// La dernière adresse du carnet ne peut pas être supprimée. Supprimer
// l'adresse par défaut promeut la première adresse restante.
func DeleteAddress(c *gin.Context) {
	userID := c.GetString("user_id")
	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID invalide"})
		return
	}
	addressUUID := gocql.UUID(addressID)

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	list, err := loadAddresses(session, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur de lecture"})
		return
	}

	remaining, err := addressbook.Remove(list, addressUUID)
	if errors.Is(err, addressbook.ErrLastAddress) {
		c.JSON(http.StatusConflict, gin.H{"message": "Impossible de supprimer la dernière adresse"})
		return
	}
	if errors.Is(err, addressbook.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Adresse non trouvée"})
		return
	}

	if err := session.Query("DELETE FROM addresses WHERE address_id = ?", addressUUID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression adresse: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Suppression impossible"})
		return
	}

	syncDefaults(session, remaining)
	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}
