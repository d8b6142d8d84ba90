package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationAlert(toEmail string, inquiryID string, question string, intent string, confidence float64, attempts int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	brandName   string
}

func NewEmailService(host string, port int, username, password, senderEmail, brandName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		brandName:   brandName,
	}
}

func (s *emailService) SendEscalationAlert(toEmail string, inquiryID string, question string, intent string, confidence float64, attempts int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Support inquiry needs human attention", s.brandName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Escalated Customer Inquiry</h2>
			<p>The support agent could not produce a confident answer for the question below.</p>
			<blockquote style="border-left: 4px solid #007BFF; margin: 10px 0; padding: 10px 15px; background: #f5f8fa;">%s</blockquote>
			<table style="border-collapse: collapse;">
				<tr><td style="padding: 4px 12px 4px 0; color: #777;">Inquiry ID</td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0; color: #777;">Detected intent</td><td>%s</td></tr>
				<tr><td style="padding: 4px 12px 4px 0; color: #777;">Best confidence</td><td>%.1f / 10</td></tr>
				<tr><td style="padding: 4px 12px 4px 0; color: #777;">Retrieval attempts</td><td>%d</td></tr>
			</table>
			<p>Please follow up with the customer directly.</p>
		</div>
	`, html.EscapeString(strings.TrimSpace(question)), inquiryID, intent, confidence, attempts)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation alert sent to %s\n", toEmail)
	return nil
}
