package notify

import (
	"log/slog"

	"contactia/app/model"

	"github.com/samber/do"
)

const bufferSize = 64

var _ do.Shutdownable = (*Queue)(nil)

// Queue decouples chat turns from notification delivery: a reservation is
// confirmed to the user even when email/WhatsApp are slow or down.
type Queue struct {
	jobs chan model.Confirmation
}

func NewQueue(_ *do.Injector) (*Queue, error) {
	return &Queue{
		jobs: make(chan model.Confirmation, bufferSize),
	}, nil
}

func (q *Queue) Add(c model.Confirmation) {
	defer func() {
		// send on closed channel during shutdown
		if r := recover(); r != nil {
			slog.Warn("notification dropped during shutdown",
				"reservation", c.ReservationID)
		}
	}()

	select {
	case q.jobs <- c:
	default:
		slog.Warn("notification queue is full",
			"reservation", c.ReservationID)
	}
}

func (q *Queue) Channel() <-chan model.Confirmation {
	return q.jobs
}

func (q *Queue) Shutdown() error {
	close(q.jobs)

	return nil
}
