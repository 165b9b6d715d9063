package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"freshmart_api/internal/models"
)

func smtpClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST non configuré")
	}

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	return mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

func sender() string {
	if from := os.Getenv("SMTP_FROM"); from != "" {
		return from
	}
	return "noreply@freshmart.shop"
}

// SendEmail envoie un e-mail HTML, avec pièce jointe PDF optionnelle.
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(sender()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_freshmart.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := smtpClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendPasswordResetEmail envoie le lien de réinitialisation de mot de passe.
func SendPasswordResetEmail(to, resetURL string) error {
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Réinitialisation de votre mot de passe</h2>
		<p>Bonjour,</p>
		<p>Cliquez sur le lien ci-dessous pour choisir un nouveau mot de passe (valable 15 minutes) :</p>
		<p><a href="%s">%s</a></p>
		<p>Si vous n'êtes pas à l'origine de cette demande, ignorez cet e-mail.</p>
	</div>
</body>
</html>`, resetURL, resetURL)

	return SendEmail(to, "Réinitialisation de votre mot de passe FreshMart", body, nil)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// Le même HTML sert de facture (rendu PDF via chromedp).
func GenerateOrderConfirmationHTML(order models.Order, userEmail string) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>$%.2f</td>
				<td>$%.2f</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	discountRow := ""
	if order.Discount > 0 {
		discountRow = fmt.Sprintf(`<p>Réduction (%s) : -$%.2f</p>`, order.VoucherCode, order.Discount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Merci pour votre commande <strong>%s</strong> passée sur FreshMart.</p>
		<table width="100%%" border="0" cellpadding="6" style="border-collapse: collapse;">
			<tr style="background-color: #f0f0f0;">
				<th align="left">Article</th><th align="left">Qté</th><th align="left">Prix</th><th align="left">Total</th>
			</tr>%s
		</table>
		<p>Sous-total : $%.2f</p>
		<p>Livraison : $%.2f</p>
		<p>TVA : $%.2f</p>
		%s
		<p><strong>Total : $%.2f</strong></p>
		<p>Un e-mail de suivi vous sera envoyé dès l'expédition.</p>
	</div>
</body>
</html>`, order.ID.String(), itemsHTML, order.Subtotal, order.Shipping, order.Tax, discountRow, order.Total)
}

// SendOrderConfirmation envoie la confirmation de commande avec la facture
// PDF en pièce jointe. L'échec d'envoi n'est pas fatal pour la commande.
func SendOrderConfirmation(order models.Order, userEmail string) {
	html := GenerateOrderConfirmationHTML(order, userEmail)

	pdf, err := RenderInvoicePDF(html)
	if err != nil {
		log.Printf("⚠️ Génération facture PDF impossible pour %s: %v", order.ID, err)
		pdf = nil
	}

	if err := SendEmail(userEmail, "Confirmation de votre commande FreshMart", html, pdf); err != nil {
		log.Printf("⚠️ Envoi confirmation impossible à %s: %v", userEmail, err)
	}
}
