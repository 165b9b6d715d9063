package models

import "github.com/gocql/gocql"

type Address struct {
	ID         gocql.UUID `json:"id"`
	UserID     string     `json:"user_id"`
	Label      string     `json:"label"` // "Home", "Office"...
	Street     string     `json:"street"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	PostalCode string     `json:"postal_code"`
	IsDefault  bool       `json:"is_default"`
}
