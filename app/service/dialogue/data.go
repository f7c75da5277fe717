package dialogue

import (
	"context"

	"contactia/app/model"
)

type Flow string

const (
	FlowNone      Flow = "none"
	FlowReserving Flow = "reserving"
	FlowCanceling Flow = "canceling"
)

// CancelDraft is the pair of fields collected by the cancellation flow,
// identifier first.
type CancelDraft struct {
	ReservationID string `json:"id_reserva"`
	Email         string `json:"email"`
}

// Session is the per-conversation state. One utterance at a time is applied
// to it; the caller is responsible for serializing turns per session id.
type Session struct {
	ID                   string      `json:"id"`
	Flow                 Flow        `json:"flow"`
	AwaitingConfirmation bool        `json:"awaiting_confirmation"`
	Draft                model.Draft `json:"draft"`
	CancelDraft          CancelDraft `json:"cancel_draft"`

	// Consecutive misses on the slot currently being asked for.
	MissCount int `json:"miss_count"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Flow: FlowNone,
	}
}

// Reset returns the session to idle and clears both drafts. Every terminal
// transition goes through here.
func (s *Session) Reset() {
	s.Flow = FlowNone
	s.AwaitingConfirmation = false
	s.Draft = model.Draft{}
	s.CancelDraft = CancelDraft{}
	s.MissCount = 0
}

// AvailabilityChecker reports whether a table is free for the given
// restaurant, date, time and party size.
type AvailabilityChecker interface {
	Check(ctx context.Context, restaurantID int, dateISO, timeHHMM string, partySize int) (bool, error)
}

// ReservationSubmitter persists a fully collected draft and returns the
// user-facing reply.
type ReservationSubmitter interface {
	Submit(ctx context.Context, draft model.Draft) (string, error)
}

// ReservationCanceler cancels a reservation by id and email and returns the
// user-facing reply.
type ReservationCanceler interface {
	Cancel(ctx context.Context, reservationID, email string) (string, error)
}
