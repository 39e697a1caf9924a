package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strconv"
	"strings"
	"time"
)

// EmailService interface for sending itinerary emails
type EmailService interface {
	SendNotification(ctx context.Context, notification *ItineraryNotification) error
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

// NewSMTPConfigFromEnv creates SMTP config from environment variables
func NewSMTPConfigFromEnv() *SMTPConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}

	timeout, _ := time.ParseDuration(os.Getenv("SMTP_TIMEOUT"))
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &SMTPConfig{
		Host:      os.Getenv("SMTP_HOST"),
		Port:      port,
		Username:  os.Getenv("SMTP_USERNAME"),
		Password:  os.Getenv("SMTP_PASSWORD"),
		FromEmail: os.Getenv("FROM_EMAIL"),
		FromName:  "Flightly",
		UseTLS:    true,
		Timeout:   timeout,
	}
}

// SMTPEmailService is a real SMTP implementation of the EmailService interface
type SMTPEmailService struct {
	config *SMTPConfig
}

// NewSMTPEmailService creates a new SMTP email service
func NewSMTPEmailService(config *SMTPConfig) *SMTPEmailService {
	if err := validateSMTPConfig(config); err != nil {
		log.Fatalf("Invalid SMTP configuration: %v", err)
	}
	return &SMTPEmailService{config: config}
}

// validateSMTPConfig validates SMTP configuration
func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil {
		return fmt.Errorf("SMTP config is nil")
	}
	if config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.Username == "" {
		return fmt.Errorf("SMTP username is required")
	}
	if config.Password == "" {
		return fmt.Errorf("SMTP password is required")
	}
	if config.FromEmail == "" {
		return fmt.Errorf("From email is required")
	}
	return nil
}

// SendNotification renders an itinerary notification into an email and sends it
func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *ItineraryNotification) error {
	log.Printf("[SMTP] Sending %s notification to %s (%s)",
		notification.Type,
		notification.RecipientEmail,
		notification.RecipientName,
	)

	subject := s.subjectFor(notification)
	htmlBody, textBody := s.renderItinerary(notification)

	return s.SendHTML(ctx, notification.RecipientEmail, subject, htmlBody, textBody)
}

// SendHTML sends an HTML email
func (s *SMTPEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	message := s.buildMessage(to, subject, htmlBody, textBody)

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.UseTLS {
		err = s.sendWithSTARTTLS(addr, auth, to, message)
	} else {
		err = smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	}

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("[SMTP] Email sent successfully to %s", to)
	return nil
}

// sendWithSTARTTLS sends email with STARTTLS encryption
func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{
		InsecureSkipVerify: false,
		ServerName:         s.config.Host,
	}

	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return w.Close()
}

// buildMessage creates the email message with proper headers
func (s *SMTPEmailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Date"] = time.Now().Format(time.RFC1123Z)

	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	headers["Content-Type"] = fmt.Sprintf("multipart/alternative; boundary=%s", boundary)

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n"

	if textBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/plain; charset=UTF-8\r\n"
		message += "\r\n"
		message += textBody + "\r\n"
	}

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary)
		message += "Content-Type: text/html; charset=UTF-8\r\n"
		message += "\r\n"
		message += htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	return []byte(message)
}

func (s *SMTPEmailService) subjectFor(notification *ItineraryNotification) string {
	switch notification.Type {
	case NotificationTypeTicketConfirmed:
		return fmt.Sprintf("Your reservation %s is confirmed - flight %s", notification.PNR, notification.FlightNumber)
	case NotificationTypeCheckInReminder:
		return fmt.Sprintf("Check-in is open for flight %s", notification.FlightNumber)
	default:
		return "Notification from Flightly"
	}
}

// renderItinerary builds the HTML and text bodies of the itinerary email
func (s *SMTPEmailService) renderItinerary(notification *ItineraryNotification) (string, string) {
	departure := notification.DepartureTime.Format("02 Jan 2006 15:04")

	htmlBody := fmt.Sprintf(`
		<h2>Your reservation is confirmed</h2>
		<p>Hi %s,</p>
		<p>Your reservation code (PNR) is <strong>%s</strong>.</p>
		<table>
			<tr><td>Flight</td><td><strong>%s</strong></td></tr>
			<tr><td>Route</td><td>%s &rarr; %s</td></tr>
			<tr><td>Departure</td><td>%s</td></tr>
			<tr><td>Seat</td><td>%s</td></tr>
			<tr><td>Fare</td><td>%s</td></tr>
			<tr><td>Amount</td><td>%.2f</td></tr>
		</table>
		<p>Use your PNR and surname to check in.</p>
		<p>Safe travels,<br>Flightly Team</p>
	`,
		notification.RecipientName,
		notification.PNR,
		notification.FlightNumber,
		notification.DepartureAirport,
		notification.DestinationAirport,
		departure,
		notification.SeatLabel,
		notification.FareType,
		notification.Amount,
	)

	textBody := fmt.Sprintf(
		"Hi %s,\n\nYour reservation code (PNR) is %s.\n\nFlight: %s\nRoute: %s -> %s\nDeparture: %s\nSeat: %s\nFare: %s\nAmount: %.2f\n\nUse your PNR and surname to check in.\n\nSafe travels,\nFlightly Team",
		notification.RecipientName,
		notification.PNR,
		notification.FlightNumber,
		notification.DepartureAirport,
		notification.DestinationAirport,
		departure,
		notification.SeatLabel,
		notification.FareType,
		notification.Amount,
	)

	return htmlBody, textBody
}

type MockEmailService struct{}

// NewMockEmailService creates a new mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendNotification sends a mock notification
func (s *MockEmailService) SendNotification(ctx context.Context, notification *ItineraryNotification) error {
	log.Printf("[MOCK] Sending %s notification for PNR %s to %s",
		notification.Type,
		notification.PNR,
		notification.RecipientEmail,
	)
	return nil
}

// SendHTML sends a mock HTML email
func (s *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("[MOCK] To: %s, Subject: %s", to, subject)
	log.Printf("[MOCK] HTML Body: %s", strings.TrimSpace(htmlBody))
	return nil
}
