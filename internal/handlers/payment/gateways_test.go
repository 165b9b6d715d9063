package payment

import (
	"strings"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshmart_api/internal/models"
)

func TestIsSupportedMethod(t *testing.T) {
	for _, m := range []string{"card", "esewa", "khalti", "imepay", "cod"} {
		assert.True(t, IsSupportedMethod(m), m)
	}
	assert.False(t, IsSupportedMethod("paypal"))
	assert.False(t, IsSupportedMethod(""))
	assert.False(t, IsSupportedMethod("Esewa"))
}

func TestAmountToPaisa(t *testing.T) {
	assert.Equal(t, int64(1000), amountToPaisa(10.00))
	assert.Equal(t, int64(1476), amountToPaisa(14.757))
	assert.Equal(t, int64(599), amountToPaisa(5.99))
	assert.Equal(t, int64(0), amountToPaisa(0))
}

func TestEsewaSignature(t *testing.T) {
	t.Run("déterministe", func(t *testing.T) {
		a := esewaSignature("100.00", "tx-1", "EPAYTEST", "secret")
		b := esewaSignature("100.00", "tx-1", "EPAYTEST", "secret")
		assert.Equal(t, a, b)
		assert.NotEmpty(t, a)
	})

	t.Run("change avec le montant", func(t *testing.T) {
		a := esewaSignature("100.00", "tx-1", "EPAYTEST", "secret")
		b := esewaSignature("100.01", "tx-1", "EPAYTEST", "secret")
		assert.NotEqual(t, a, b)
	})

	t.Run("change avec la clé", func(t *testing.T) {
		a := esewaSignature("100.00", "tx-1", "EPAYTEST", "secret")
		b := esewaSignature("100.00", "tx-1", "EPAYTEST", "autre")
		assert.NotEqual(t, a, b)
	})
}

func TestBuildEsewaFields(t *testing.T) {
	order := models.Order{
		ID:    gocql.TimeUUID(),
		Total: 42.50,
	}
	fields := buildEsewaFields(order, "EPAYTEST", "secret", "http://localhost:8080/api/checkout/callback/esewa")

	require.Equal(t, "42.50", fields["total_amount"])
	require.Equal(t, order.ID.String(), fields["transaction_uuid"])
	require.Equal(t, "EPAYTEST", fields["product_code"])
	assert.Equal(t, "total_amount,transaction_uuid,product_code", fields["signed_field_names"])

	// La signature couvre exactement les champs déclarés
	expected := esewaSignature(fields["total_amount"], fields["transaction_uuid"], fields["product_code"], "secret")
	assert.Equal(t, expected, fields["signature"])

	assert.Contains(t, fields["success_url"], "status=success")
	assert.Contains(t, fields["success_url"], order.ID.String())
	assert.Contains(t, fields["failure_url"], "status=failure")
}

func TestPaymentQR(t *testing.T) {
	qr := paymentQR("https://pay.example.com/tx/123")
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
}

func TestInitiatePaymentCOD(t *testing.T) {
	order := models.Order{ID: gocql.TimeUUID(), Total: 12.34}
	result, err := initiatePayment(MethodCOD, order, "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, MethodCOD, result.Method)
	assert.Empty(t, result.PaymentURL)
	assert.Empty(t, result.Reference)
}

func TestInitiatePaymentMethodeInconnue(t *testing.T) {
	_, err := initiatePayment("cheque", models.Order{}, "")
	assert.Error(t, err)
}

func TestInitiatePaymentNonConfigure(t *testing.T) {
	// Sans variables d'environnement, les portefeuilles refusent proprement
	t.Setenv("ESEWA_PRODUCT_CODE", "")
	t.Setenv("ESEWA_SECRET_KEY", "")
	t.Setenv("KHALTI_SECRET_KEY", "")
	t.Setenv("IMEPAY_BASE_URL", "")

	order := models.Order{ID: gocql.TimeUUID(), Total: 10}
	for _, m := range []string{MethodEsewa, MethodKhalti, MethodIMEPay} {
		_, err := initiatePayment(m, order, "client@example.com")
		assert.Error(t, err, m)
	}
}
