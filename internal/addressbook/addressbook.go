// Package addressbook porte les invariants du carnet d'adresses :
// dès que le carnet est non vide, exactement une adresse est par défaut,
// et la dernière adresse ne peut pas être supprimée.
package addressbook

import (
	"errors"

	"github.com/gocql/gocql"

	"freshmart_api/internal/models"
)

var (
	ErrLastAddress = errors.New("impossible de supprimer la dernière adresse")
	ErrNotFound    = errors.New("adresse introuvable")
)

// Add ajoute une adresse au carnet. La première adresse devient l'adresse
// par défaut ; les suivantes ne le sont pas, sauf demande explicite via
// SetDefault.
func Add(list []models.Address, addr models.Address) []models.Address {
	addr.IsDefault = len(list) == 0
	return append(list, addr)
}

// SetDefault marque l'adresse donnée comme adresse par défaut et retire le
// marqueur de toutes les autres.
func SetDefault(list []models.Address, id gocql.UUID) ([]models.Address, error) {
	found := false
	for i := range list {
		if list[i].ID == id {
			found = true
		}
	}
	if !found {
		return list, ErrNotFound
	}
	for i := range list {
		list[i].IsDefault = list[i].ID == id
	}
	return list, nil
}

// Remove supprime une adresse. La dernière adresse du carnet est conservée
// (ErrLastAddress). Si l'adresse par défaut est supprimée, la première
// adresse restante est promue.
func Remove(list []models.Address, id gocql.UUID) ([]models.Address, error) {
	if len(list) <= 1 {
		return list, ErrLastAddress
	}

	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return list, ErrNotFound
	}

	wasDefault := list[idx].IsDefault
	out := append(list[:idx:idx], list[idx+1:]...)
	if wasDefault && len(out) > 0 {
		out[0].IsDefault = true
	}
	return out, nil
}

// Default retourne l'adresse par défaut du carnet.
func Default(list []models.Address) (models.Address, bool) {
	for _, a := range list {
		if a.IsDefault {
			return a, true
		}
	}
	return models.Address{}, false
}
