package booking

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// newReservationID builds the user-facing identifier LLL-YYYYMMDD-NNNN:
// a 3-letter prefix from the restaurant name, the reservation date and a
// random 4-digit suffix.
func newReservationID(restaurantName, dateISO string) string {
	prefix := idPrefix(restaurantName)
	yyyymmdd := strings.ReplaceAll(dateISO, "-", "")
	suffix := rand.IntN(9000) + 1000

	return fmt.Sprintf("%s-%s-%d", prefix, yyyymmdd, suffix)
}

func idPrefix(name string) string {
	var b strings.Builder

	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() >= 3 {
			break
		}
	}

	if b.Len() < 3 {
		return "RES"
	}

	return b.String()
}
