package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// Mailer notifies guests and staff by email. Callers treat delivery as best
// effort: a failed send is logged and must never fail the primary operation.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type mailerImpl struct {
	cfg    *config.Config
	dialer *gomail.Dialer
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Mailer {
	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &mailerImpl{
		cfg:    cfg,
		dialer: dialer,
		otel:   otl,
	}
}

func (m *mailerImpl) Send(ctx context.Context, to, subject, body string) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("mail.to", to)

	message := gomail.NewMessage()
	message.SetHeader("From", m.cfg.SMTP.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	if err = m.dialer.DialAndSend(message); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")

	return nil
}
