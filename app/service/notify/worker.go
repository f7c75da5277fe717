package notify

import (
	"context"
	"log/slog"
	"time"

	"contactia/app/client/mailer"
	"contactia/app/client/twilio"
	"contactia/app/model"

	"github.com/samber/do"
)

// Worker drains the queue and delivers each confirmation by email and
// WhatsApp. Delivery failures are logged, never propagated: the reservation
// already exists in the record store.
type Worker struct {
	mailerClient *mailer.Client
	twilioClient *twilio.Client
	queue        *Queue
}

func NewWorker(di *do.Injector) (*Worker, error) {
	return &Worker{
		mailerClient: do.MustInvoke[*mailer.Client](di),
		twilioClient: do.MustInvoke[*twilio.Client](di),
		queue:        do.MustInvoke[*Queue](di),
	}, nil
}

func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-w.queue.Channel():
			if !ok {
				return
			}

			w.deliver(ctx, c)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, c model.Confirmation) {
	start := time.Now()

	if err := w.mailerClient.Send(ctx, c); err != nil {
		slog.Error("Failed to send confirmation email",
			"kind", c.Kind,
			"reservation", c.ReservationID,
			"error", err,
		)
	}

	if c.Phone != "" {
		if err := w.twilioClient.SendWhatsApp(ctx, c); err != nil {
			slog.Error("Failed to send WhatsApp message",
				"kind", c.Kind,
				"reservation", c.ReservationID,
				"error", err,
			)
		}
	}

	slog.Info("Processed notification",
		"kind", c.Kind,
		"reservation", c.ReservationID,
		"duration", time.Since(start))
}
