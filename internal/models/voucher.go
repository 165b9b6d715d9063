package models

import "strings"

const (
	VoucherPercentage = "percentage"
	VoucherFixed      = "fixed"
)

type Voucher struct {
	Code        string  `json:"code"`
	Type        string  `json:"type"` // "percentage" ou "fixed"
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// Catalogue statique des bons de réduction. Lecture seule : un seul bon
// peut être sélectionné par panier à la fois.
var VoucherCatalog = []Voucher{
	{Code: "WELCOME10", Type: VoucherPercentage, Value: 10, Description: "10% off on your order"},
	{Code: "SAVE20", Type: VoucherFixed, Value: 20, Description: "$20 off on orders above $100"},
	{Code: "FRESH15", Type: VoucherPercentage, Value: 15, Description: "15% off on fresh products"},
}

// FindVoucher recherche un bon par code (insensible à la casse).
func FindVoucher(code string) (Voucher, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, v := range VoucherCatalog {
		if v.Code == code {
			return v, true
		}
	}
	return Voucher{}, false
}
