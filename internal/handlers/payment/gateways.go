// Passerelles de paiement externes : eSewa, Khalti et IME Pay (portefeuilles
// mobiles), carte via Stripe, et paiement à la livraison. Chaque passerelle
// garde son protocole ; on ne stocke ici que la référence de paiement.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"freshmart_api/internal/models"
)

const (
	MethodCard   = "card"
	MethodEsewa  = "esewa"
	MethodKhalti = "khalti"
	MethodIMEPay = "imepay"
	MethodCOD    = "cod"
)

func IsSupportedMethod(m string) bool {
	switch m {
	case MethodCard, MethodEsewa, MethodKhalti, MethodIMEPay, MethodCOD:
		return true
	}
	return false
}

// Result est la réponse d'initiation de paiement renvoyée au front.
type Result struct {
	Method       string            `json:"method"`
	Reference    string            `json:"reference,omitempty"`     // id côté passerelle
	ClientSecret string            `json:"client_secret,omitempty"` // Stripe uniquement
	PaymentURL   string            `json:"payment_url,omitempty"`
	FormFields   map[string]string `json:"form_fields,omitempty"` // eSewa (POST formulaire)
	QRCode       string            `json:"qr_code,omitempty"`     // data URI, scan-to-pay
}

// amountToPaisa convertit un montant en paisa (Khalti facture en paisa).
func amountToPaisa(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// paymentQR encode une URL de paiement en QR base64 pour le scan-to-pay.
func paymentQR(paymentURL string) string {
	png, err := qrcode.Encode(paymentURL, qrcode.Medium, 256)
	if err != nil {
		return ""
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

// initiatePayment démarre le paiement auprès de la passerelle choisie.
func initiatePayment(method string, order models.Order, email string) (Result, error) {
	switch method {
	case MethodCard:
		return initiateStripe(order, email)
	case MethodEsewa:
		return initiateEsewa(order)
	case MethodKhalti:
		return initiateKhalti(order, email)
	case MethodIMEPay:
		return initiateIMEPay(order)
	case MethodCOD:
		// Paiement à la livraison : rien à initier
		return Result{Method: MethodCOD}, nil
	default:
		return Result{}, fmt.Errorf("moyen de paiement inconnu: %s", method)
	}
}

// --- Stripe (carte) ---

func initiateStripe(order models.Order, email string) (Result, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountToPaisa(order.Total)),
		Currency: stripe.String("usd"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"order_id": order.ID.String(),
			"user_id":  order.UserID,
			"email":    email,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Method:       MethodCard,
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// --- eSewa ---
// Formulaire signé HMAC-SHA256 : le front poste les champs vers eSewa.

func esewaSignature(totalAmount, transactionUUID, productCode, secret string) string {
	payload := fmt.Sprintf("total_amount=%s,transaction_uuid=%s,product_code=%s",
		totalAmount, transactionUUID, productCode)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func buildEsewaFields(order models.Order, productCode, secret, callbackURL string) map[string]string {
	totalAmount := fmt.Sprintf("%.2f", order.Total)
	txUUID := order.ID.String()

	return map[string]string{
		"amount":                  fmt.Sprintf("%.2f", order.Total),
		"tax_amount":              "0",
		"total_amount":            totalAmount,
		"transaction_uuid":        txUUID,
		"product_code":            productCode,
		"product_service_charge":  "0",
		"product_delivery_charge": "0",
		"success_url":             callbackURL + "?status=success&order_id=" + txUUID,
		"failure_url":             callbackURL + "?status=failure&order_id=" + txUUID,
		"signed_field_names":      "total_amount,transaction_uuid,product_code",
		"signature":               esewaSignature(totalAmount, txUUID, productCode, secret),
	}
}

func initiateEsewa(order models.Order) (Result, error) {
	baseURL := os.Getenv("ESEWA_BASE_URL")
	if baseURL == "" {
		baseURL = "https://rc-epay.esewa.com.np/api/epay/main/v2/form"
	}
	productCode := os.Getenv("ESEWA_PRODUCT_CODE")
	secret := os.Getenv("ESEWA_SECRET_KEY")
	if productCode == "" || secret == "" {
		return Result{}, fmt.Errorf("eSewa non configuré")
	}

	fields := buildEsewaFields(order, productCode, secret, callbackURL(MethodEsewa))

	return Result{
		Method:     MethodEsewa,
		Reference:  order.ID.String(),
		PaymentURL: baseURL,
		FormFields: fields,
		QRCode:     paymentQR(baseURL + "?" + formEncode(fields)),
	}, nil
}

func formEncode(fields map[string]string) string {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	return values.Encode()
}

// --- Khalti ---

func initiateKhalti(order models.Order, email string) (Result, error) {
	baseURL := os.Getenv("KHALTI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://a.khalti.com/api/v2"
	}
	secret := os.Getenv("KHALTI_SECRET_KEY")
	if secret == "" {
		return Result{}, fmt.Errorf("Khalti non configuré")
	}

	body := map[string]interface{}{
		"return_url":          callbackURL(MethodKhalti),
		"website_url":         frontendURL(),
		"amount":              amountToPaisa(order.Total),
		"purchase_order_id":   order.ID.String(),
		"purchase_order_name": "FreshMart order",
		"customer_info":       map[string]string{"email": email},
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetHeader("Authorization", "key "+secret).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(baseURL + "/epayment/initiate/")
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode() != 200 {
		return Result{}, fmt.Errorf("initiation Khalti échouée (%d): %s", resp.StatusCode(), resp.Body())
	}

	var parsed struct {
		Pidx       string `json:"pidx"`
		PaymentURL string `json:"payment_url"`
	}
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return Result{}, err
	}

	return Result{
		Method:     MethodKhalti,
		Reference:  parsed.Pidx,
		PaymentURL: parsed.PaymentURL,
		QRCode:     paymentQR(parsed.PaymentURL),
	}, nil
}

// --- IME Pay ---

func initiateIMEPay(order models.Order) (Result, error) {
	baseURL := os.Getenv("IMEPAY_BASE_URL")
	merchantCode := os.Getenv("IMEPAY_MERCHANT_CODE")
	apiUser := os.Getenv("IMEPAY_API_USER")
	apiPassword := os.Getenv("IMEPAY_API_PASSWORD")
	if baseURL == "" || merchantCode == "" {
		return Result{}, fmt.Errorf("IME Pay non configuré")
	}

	body := map[string]interface{}{
		"MerchantCode": merchantCode,
		"Amount":       fmt.Sprintf("%.2f", order.Total),
		"RefId":        order.ID.String(),
		"CallbackUrl":  callbackURL(MethodIMEPay),
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetBasicAuth(apiUser, apiPassword).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(baseURL + "/api/Web/GetToken")
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode() != 200 {
		return Result{}, fmt.Errorf("initiation IME Pay échouée (%d): %s", resp.StatusCode(), resp.Body())
	}

	var parsed struct {
		TokenId    string `json:"TokenId"`
		PaymentURL string `json:"PaymentUrl"`
	}
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return Result{}, err
	}

	return Result{
		Method:     MethodIMEPay,
		Reference:  parsed.TokenId,
		PaymentURL: parsed.PaymentURL,
		QRCode:     paymentQR(parsed.PaymentURL),
	}, nil
}

// --- URLs ---

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}

func callbackURL(gateway string) string {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/api/checkout/callback/" + gateway
}
