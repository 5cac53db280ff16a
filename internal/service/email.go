package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendTicket mails the attendee their registration confirmation with the
// QR payload attached as text, so a lost badge can be re-rendered from
// the email alone.
func (s *sendGridEmailService) SendTicket(ctx context.Context, toEmail, toName, qrData string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)

	subject := "Your event registration"
	plainText := fmt.Sprintf("Hello %s,\n\nYou are registered. Present the QR code handed to you at the venue.\n\nIf you need your badge re-issued, quote this code:\n\n%s\n", toName, qrData)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>You are registered</h2>
				<p>Hello <strong>%s</strong>, present your QR code at the venue.</p>
				<p>If you need your badge re-issued, quote this code:</p>
				<pre>%s</pre>
			</body>
		</html>
	`, toName, qrData)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
