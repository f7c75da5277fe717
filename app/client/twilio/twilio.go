package twilio

import (
	"context"
	"fmt"
	"log/slog"

	"contactia/app/config"
	"contactia/app/model"

	"github.com/samber/do"
	"github.com/samber/oops"
	twilioapi "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Client sends WhatsApp messages through Twilio. With no account SID
// configured it becomes a no-op.
type Client struct {
	cfg  *config.Config
	rest *twilioapi.RestClient
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	if cfg.Twilio.AccountSID == "" {
		slog.Warn("Twilio not configured, WhatsApp messages are disabled")

		return &Client{cfg: cfg}, nil
	}

	rest := twilioapi.NewRestClientWithParams(twilioapi.ClientParams{
		Username: cfg.Twilio.AccountSID,
		Password: cfg.Twilio.AuthToken,
	})

	return &Client{
		cfg:  cfg,
		rest: rest,
	}, nil
}

func (c *Client) SendWhatsApp(_ context.Context, conf model.Confirmation) error {
	if c.rest == nil {
		return nil
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(c.cfg.Twilio.WhatsAppFrom)
	params.SetTo("whatsapp:" + conf.Phone)
	params.SetBody(messageBody(conf))

	if _, err := c.rest.Api.CreateMessage(params); err != nil {
		return oops.Errorf("failed to send WhatsApp message: %w", err)
	}

	return nil
}

func messageBody(c model.Confirmation) string {
	if c.Kind == model.KindCancellation {
		return fmt.Sprintf("❌ *Tu reserva ha sido cancelada correctamente*\n\n🍽 *%s*\n📅 %s - %s\n👥 %d personas\n🧍 %s\n🪪 ID: %s\n\nEsperamos verte pronto 👋",
			c.Restaurant, c.Date, c.Time, c.PartySize, c.FullName, c.ReservationID)
	}

	return fmt.Sprintf("🍽 *%s*\n\n✅ *Tu reserva está confirmada*\n📅 %s - %s\n👥 %d personas\n🧑 %s\n🎫 ID: %s",
		c.Restaurant, c.Date, c.Time, c.PartySize, c.FullName, c.ReservationID)
}
