package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshmart_api/internal/config"
	"freshmart_api/internal/models"
)

var cfg = config.PricingConfig{TaxRate: 0.10, ShippingFee: 5.99}

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 2.99, Quantity: 2},
		{ProductID: "p2", Price: 1.99, Quantity: 1},
	}
	assert.InDelta(t, 7.97, Subtotal(items), 1e-2)
	assert.Zero(t, Subtotal(nil))
}

func TestQuoteSansVoucher(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 2.99, Quantity: 2},
		{ProductID: "p2", Price: 1.99, Quantity: 1},
	}

	b := Quote(items, nil, cfg)

	assert.InDelta(t, 7.97, b.Subtotal, 1e-2)
	assert.InDelta(t, 5.99, b.Shipping, 1e-2)
	assert.InDelta(t, 0.797, b.Tax, 1e-3)
	assert.Zero(t, b.Discount)
	assert.InDelta(t, 14.757, b.Total, 1e-2)
}

func TestQuotePanierVide(t *testing.T) {
	b := Quote(nil, nil, cfg)
	assert.Zero(t, b.Subtotal)
	assert.Zero(t, b.Shipping)
	assert.Zero(t, b.Total)
}

func TestDiscountPourcentage(t *testing.T) {
	// WELCOME10 : 10% sur un sous-total de 100 → 10 de réduction
	v, ok := models.FindVoucher("WELCOME10")
	require.True(t, ok)

	d := Discount(100, 5.99, 10, &v)
	assert.InDelta(t, 10.0, d, 1e-2)
}

func TestDiscountFixe(t *testing.T) {
	v, ok := models.FindVoucher("SAVE20")
	require.True(t, ok)
	require.Equal(t, models.VoucherFixed, v.Type)

	t.Run("sous le plafond", func(t *testing.T) {
		d := Discount(100, 5.99, 10, &v)
		assert.InDelta(t, 20.0, d, 1e-2)
	})

	t.Run("plafonné au montant dû", func(t *testing.T) {
		// SAVE20 (20 fixe) sur un sous-total de 15 : la réduction est
		// plafonnée à subtotal+shipping+tax, jamais au-delà.
		subtotal, shipping := 15.0, 5.99
		tax := subtotal * cfg.TaxRate

		d := Discount(subtotal, shipping, tax, &v)
		assert.InDelta(t, 20.0, d, 1e-2) // 15+5.99+1.50 = 22.49 > 20

		// Et avec un panier vraiment plus petit que le bon :
		d = Discount(5, 5.99, 0.5, &v)
		assert.InDelta(t, 11.49, d, 1e-2)
	})
}

func TestTotalJamaisNegatif(t *testing.T) {
	v := models.Voucher{Code: "BIG", Type: models.VoucherFixed, Value: 500}
	items := []models.CartItem{{ProductID: "p1", Price: 2.99, Quantity: 1}}

	b := Quote(items, &v, cfg)
	assert.GreaterOrEqual(t, b.Total, 0.0)
	assert.InDelta(t, 0.0, b.Total, 1e-9)
}

func TestQuoteAvecVoucher(t *testing.T) {
	v, ok := models.FindVoucher("FRESH15")
	require.True(t, ok)

	items := []models.CartItem{{ProductID: "p1", Price: 10, Quantity: 10}} // subtotal 100
	b := Quote(items, &v, cfg)

	assert.InDelta(t, 15.0, b.Discount, 1e-2)
	assert.InDelta(t, 100+5.99+10-15, b.Total, 1e-2)
}

func TestVoucherTypeInconnu(t *testing.T) {
	v := models.Voucher{Code: "X", Type: "bogus", Value: 10}
	assert.Zero(t, Discount(100, 5.99, 10, &v))
}
