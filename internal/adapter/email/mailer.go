package email

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/wanderlust/internal/platform/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends owner notifications over SMTP.
type Mailer struct {
	from   string
	dialer sender
	logger *logger.Logger
}

func NewMailer(host string, port int, from, password string, log *logger.Logger) *Mailer {
	return &Mailer{
		from:   from,
		dialer: gomail.NewDialer(host, port, from, password),
		logger: log.Named("Mailer"),
	}
}

func (m *Mailer) SendListingCreated(ctx context.Context, toEmail, listingTitle string) error {
	if toEmail == "" {
		return fmt.Errorf("listing created notice: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "New Listing Created")
	msg.SetBody("text/plain", fmt.Sprintf("Your listing '%s' has been created successfully.", listingTitle))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send listing created email", zap.String("to", toEmail), zap.Error(err))
		return fmt.Errorf("send listing created email: %w", err)
	}
	m.logger.Info("Listing created email sent", zap.String("to", toEmail))
	return nil
}
