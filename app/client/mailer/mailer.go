package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"contactia/app/config"
	"contactia/app/model"

	"github.com/samber/do"
	"github.com/samber/oops"
	"github.com/wneessen/go-mail"
)

// Client sends confirmation and cancellation emails over SMTP. With no SMTP
// host configured it becomes a no-op.
type Client struct {
	cfg    *config.Config
	client *mail.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if cfg.SMTP.Host == "" {
		slog.Warn("SMTP not configured, confirmation emails are disabled")

		return &Client{cfg: cfg}, nil
	}

	client, err := mail.NewClient(cfg.SMTP.Host,
		mail.WithPort(cfg.SMTP.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTP.User),
		mail.WithPassword(cfg.SMTP.Pass),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, oops.Errorf("failed to create SMTP client: %w", err)
	}

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

func (c *Client) Send(ctx context.Context, conf model.Confirmation) error {
	if c.client == nil {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(c.cfg.SMTP.FromName, c.cfg.SMTP.FromEmail); err != nil {
		return oops.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(conf.Email); err != nil {
		return oops.Errorf("invalid recipient address: %w", err)
	}

	switch conf.Kind {
	case model.KindCancellation:
		msg.Subject(fmt.Sprintf("❌ Cancelación de tu reserva en %s", conf.Restaurant))
		msg.SetBodyString(mail.TypeTextHTML, cancellationBody(conf))
	default:
		msg.Subject(fmt.Sprintf("🍷 Confirmación de tu reserva en %s", conf.Restaurant))
		msg.SetBodyString(mail.TypeTextHTML, confirmationBody(conf))
	}

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return oops.Errorf("failed to send email: %w", err)
	}

	return nil
}

func confirmationBody(c model.Confirmation) string {
	return fmt.Sprintf(`
  <div style="font-family:Arial,sans-serif;padding:20px;">
    <h2>🍷 Confirmación de tu reserva en %s</h2>
    <p>Hola %s, tu reserva ha sido <strong>confirmada</strong>.</p>
    <p>📅 %s – %s</p>
    <p>👥 %d personas</p>
    <p>🪑 Mesa: %s</p>
    <p>🎫 ID de reserva: <strong>%s</strong></p>
    <p>📍 %s</p>
  </div>`,
		c.Restaurant, c.FullName, c.Date, c.Time, c.PartySize, c.TableName, c.ReservationID, c.Address)
}

func cancellationBody(c model.Confirmation) string {
	return fmt.Sprintf(`
  <div style="font-family:Arial,sans-serif;padding:20px;">
    <h2>%s</h2>
    <p>Hola <strong>%s</strong>,</p>
    <p>Tu reserva <strong>%s</strong> ha sido cancelada correctamente.</p>
    <p>🗓 Fecha: %s</p>
    <p>🕒 Hora: %s</p>
    <p>Esperamos verte pronto en <strong>%s</strong>. ¡Gracias por avisarnos!</p>
  </div>`,
		c.Restaurant, c.FullName, c.ReservationID, c.Date, c.Time, c.Restaurant)
}
