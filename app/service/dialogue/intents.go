package dialogue

import (
	"strings"

	"github.com/elliotchance/pie/v2"
)

var cancellationKeywords = []string{
	"cancelar",
	"anular",
	"eliminar reserva",
	"anula mi reserva",
}

var reservationKeywords = []string{
	"reservar",
	"reserva",
	"quiero mesa",
	"necesito una mesa",
}

// DetectsCancellationIntent reports whether the text asks to cancel an
// existing reservation. Checked before the reservation intent, so an
// utterance matching both starts a cancellation.
func DetectsCancellationIntent(text string) bool {
	return containsAny(text, cancellationKeywords)
}

// DetectsReservationIntent reports whether the text asks to book a table.
func DetectsReservationIntent(text string) bool {
	return containsAny(text, reservationKeywords)
}

func containsAny(text string, keywords []string) bool {
	t := strings.ToLower(text)

	return pie.Any(keywords, func(k string) bool {
		return strings.Contains(t, k)
	})
}
