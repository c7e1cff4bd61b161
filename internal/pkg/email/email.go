package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/config"
	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// Mailer delivers expiry digests by email.
type Mailer interface {
	SendExpiryDigest(to, recipientName, companyName string, feed notification.Feed) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type mailerImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewMailer creates a mailer backed by net/smtp. With an empty SMTP host
// every send is skipped with a warning.
func NewMailer(cfg config.SMTPConfig) (Mailer, error) {
	return newMailer(cfg, smtp.SendMail, time.Second)
}

func newMailer(cfg config.SMTPConfig, send sendFunc, backoff time.Duration) (*mailerImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &mailerImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      send,
		backoff:   backoff,
	}, nil
}

type expiryDigestData struct {
	RecipientName string
	CompanyName   string
	notification.Feed
}

// SendExpiryDigest implements Mailer.
func (m *mailerImpl) SendExpiryDigest(to, recipientName, companyName string, feed notification.Feed) error {
	var body bytes.Buffer
	data := expiryDigestData{RecipientName: recipientName, CompanyName: companyName, Feed: feed}
	if err := m.templates.ExecuteTemplate(&body, "expiry_digest.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("[%s] %d expired, %d expiring soon", companyName, feed.Counts.Expired, feed.Counts.Critical)
	return m.sendHTML(to, subject, body.String())
}

func (m *mailerImpl) sendHTML(to, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := m.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := m.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1x, 2x, 4x
		if attempt < maxRetries {
			time.Sleep(m.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
