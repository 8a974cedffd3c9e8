// utils/email.go
package utils

import (
	"fmt"

	"github.com/keighl/postmark"

	"tshirt-shop/models"
)

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(apiToken, sender string) *EmailService {
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPaymentReceipt sends a receipt for a completed payment to the buyer.
func (es *EmailService) SendPaymentReceipt(toEmail string, payment models.Payment) error {
	subject := "Payment Receipt"
	htmlContent := fmt.Sprintf(
		"<strong>Dear Customer,</strong><br><br>We received your payment of <strong>%.2f Tk</strong> via <strong>%s</strong>.<br>Transaction ID: <strong>%s</strong><br><br>Thank you for shopping with us!",
		payment.PriceTk,
		payment.PaymentMethod,
		payment.TransactionID,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
