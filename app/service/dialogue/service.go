package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contactia/app/config"
	"contactia/app/model"
	"contactia/app/service/availability"
	"contactia/app/service/booking"

	"github.com/samber/do"
)

var (
	_ AvailabilityChecker  = (*availability.Service)(nil)
	_ ReservationSubmitter = (*booking.Service)(nil)
	_ ReservationCanceler  = (*booking.Service)(nil)
)

// Service drives the slot-filling conversation. It owns no session state
// itself: every call gets the session to advance.
type Service struct {
	restaurantID   int
	restaurantName string
	retryTime      bool
	gatewayTimeout time.Duration

	availability AvailabilityChecker
	submitter    ReservationSubmitter
	canceler     ReservationCanceler
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)
	bookingSvc := do.MustInvoke[*booking.Service](di)

	return &Service{
		restaurantID:   cfg.Chat.RestaurantID,
		restaurantName: cfg.Chat.RestaurantName,
		retryTime:      cfg.Chat.AvailabilityRetry == "retry_time",
		gatewayTimeout: time.Duration(cfg.Chat.TimeoutSeconds) * time.Second,
		availability:   do.MustInvoke[*availability.Service](di),
		submitter:      bookingSvc,
		canceler:       bookingSvc,
	}, nil
}

// Greeting is emitted once when a session is created.
func (s *Service) Greeting() string {
	return fmt.Sprintf("👋 ¡Hola! Soy Contactia, tu asistente virtual del %s. ¿Quieres hacer una reserva o cancelar una existente?", s.restaurantName)
}

// Advance applies one user utterance to the session and returns the bot
// reply. Rules are checked in strict priority order: cancellation intent,
// active cancellation flow, reservation intent, active reservation flow,
// fallback.
func (s *Service) Advance(ctx context.Context, sess *Session, text string) string {
	text = strings.TrimSpace(text)

	switch {
	case sess.Flow == FlowNone && DetectsCancellationIntent(text):
		sess.Reset()
		sess.Flow = FlowCanceling

		return msgAskCancelID

	case sess.Flow == FlowCanceling:
		return s.cancelTurn(ctx, sess, text)

	case sess.Flow == FlowNone && DetectsReservationIntent(text):
		sess.Reset()
		sess.Flow = FlowReserving
		sess.Draft.RestaurantID = s.restaurantID

		return msgAskPartySize

	case sess.Flow == FlowReserving:
		return s.reserveTurn(ctx, sess, text)
	}

	return msgFallback
}

func (s *Service) cancelTurn(ctx context.Context, sess *Session, text string) string {
	d := &sess.CancelDraft

	if d.ReservationID == "" {
		if !reservationIDPattern.MatchString(text) {
			return msgRepromptCancelID
		}

		d.ReservationID = text

		return msgAskCancelEmail
	}

	if _, ok := acceptEmail(text); !ok {
		return msgRepromptCancelEmail
	}
	d.Email = strings.TrimSpace(text)

	// The gateway reply terminates the flow whatever it says.
	reply, err := s.callCancel(ctx, d.ReservationID, d.Email)
	sess.Reset()
	if err != nil {
		slog.Error("Cancellation gateway call failed",
			"session", sess.ID,
			"error", err,
		)

		return msgGatewayFailure
	}

	return reply
}

func (s *Service) reserveTurn(ctx context.Context, sess *Session, text string) string {
	if sess.AwaitingConfirmation {
		return s.confirmationTurn(ctx, sess, text)
	}

	// A new time while the name is still pending replaces the old one and
	// re-runs the availability check.
	if sess.Draft.Time != "" && sess.Draft.FullName == "" {
		if v, ok := acceptTime(text); ok {
			return s.checkNewTime(ctx, sess, v)
		}
	}

	for i := range reservationSlots {
		sl := &reservationSlots[i]
		if sl.filled(&sess.Draft) {
			continue
		}

		v, ok := sl.accept(text)
		if !ok {
			sess.MissCount++
			if sess.MissCount >= 2 && sl.hint != "" {
				return sl.hint
			}

			return msgReprompt
		}

		sl.assign(&sess.Draft, v)
		sess.MissCount = 0

		switch sl.name {
		case "hora":
			return s.checkAvailability(ctx, sess)
		case "telefono":
			sess.AwaitingConfirmation = true

			return s.summary(&sess.Draft)
		}

		return reservationSlots[i+1].prompt
	}

	// All slots filled without a pending confirmation: the session is
	// inconsistent, drop it.
	slog.Warn("Reservation flow in inconsistent state, resetting session",
		"session", sess.ID)
	sess.Reset()

	return msgFallback
}

func (s *Service) confirmationTurn(ctx context.Context, sess *Session, text string) string {
	if !draftComplete(&sess.Draft) {
		slog.Warn("Confirmation pending with missing fields, resetting session",
			"session", sess.ID)
		sess.Reset()

		return msgFallback
	}

	lower := strings.ToLower(text)

	switch {
	case strings.HasPrefix(lower, "s"):
		reply, err := s.callSubmit(ctx, sess.Draft)
		sess.Reset()
		if err != nil {
			slog.Error("Reservation gateway call failed",
				"session", sess.ID,
				"error", err,
			)

			return msgGatewayFailure
		}

		return reply

	case strings.HasPrefix(lower, "n"):
		sess.Reset()

		return msgDeclined
	}

	return msgConfirmYesNo
}

func (s *Service) checkAvailability(ctx context.Context, sess *Session) string {
	available, err := s.callCheck(ctx, &sess.Draft)
	if err != nil {
		slog.Error("Availability gateway call failed",
			"session", sess.ID,
			"error", err,
		)
		sess.Reset()

		return msgGatewayFailure
	}

	if !available {
		if s.retryTime {
			sess.Draft.Time = ""

			return msgNoTablesRetry
		}

		sess.Reset()

		return msgNoTables
	}

	return msgAskName
}

func (s *Service) checkNewTime(ctx context.Context, sess *Session, newTime string) string {
	sess.Draft.Time = newTime

	available, err := s.callCheck(ctx, &sess.Draft)
	if err != nil {
		slog.Error("Availability gateway call failed",
			"session", sess.ID,
			"error", err,
		)
		sess.Reset()

		return msgGatewayFailure
	}

	if !available {
		if s.retryTime {
			sess.Draft.Time = ""

			return msgNewTimeBusy
		}

		sess.Reset()

		return msgNoTables
	}

	return msgNewTimeFree
}

func (s *Service) callCheck(ctx context.Context, d *model.Draft) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	return s.availability.Check(ctx, d.RestaurantID, d.Date, d.Time, d.PartySize)
}

func (s *Service) callSubmit(ctx context.Context, d model.Draft) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	return s.submitter.Submit(ctx, d)
}

func (s *Service) callCancel(ctx context.Context, id, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	return s.canceler.Cancel(ctx, id, email)
}

func (s *Service) summary(d *model.Draft) string {
	return fmt.Sprintf(`✨ Por favor, confirma los datos de tu reserva:

🍽 *%s*
📅 %s – %s
👥 %d personas
🧑 %s
📧 %s
📱 %s

¿Deseas confirmar la reserva? (Sí / No)`,
		s.restaurantName, displayDate(d.Date), d.Time, d.PartySize, d.FullName, d.Email, d.Phone)
}

func draftComplete(d *model.Draft) bool {
	return d.PartySize != 0 &&
		d.Date != "" &&
		d.Time != "" &&
		d.FullName != "" &&
		d.Email != "" &&
		d.Phone != ""
}
