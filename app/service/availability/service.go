package availability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"contactia/app/client/storedb"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// Store is the slice of the record store this service reads.
type Store interface {
	FindRestaurant(ctx context.Context, id int) (*storedb.Restaurant, error)
	TablesByRestaurant(ctx context.Context, restaurantID int) ([]storedb.Table, error)
	ConfirmedReservationsAt(ctx context.Context, restaurantID int, dateISO, timeHHMM string) ([]storedb.Reservation, error)
}

// Service answers "is a table free" for a restaurant, date, time and party
// size. A missing restaurant or a time outside opening hours is simply not
// available, never an error.
type Service struct {
	store Store
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		store: do.MustInvoke[*storedb.Client](di),
	}, nil
}

func (s *Service) Check(ctx context.Context, restaurantID int, dateISO, timeHHMM string, partySize int) (bool, error) {
	restaurant, err := s.store.FindRestaurant(ctx, restaurantID)
	if errors.Is(err, storedb.ErrNotFound) {
		slog.Warn("Availability check for unknown restaurant", "restaurant", restaurantID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store.FindRestaurant: %w", err)
	}

	if !withinOpeningHours(restaurant, dateISO, timeHHMM) {
		return false, nil
	}

	tables, err := s.store.TablesByRestaurant(ctx, restaurantID)
	if err != nil {
		return false, fmt.Errorf("store.TablesByRestaurant: %w", err)
	}
	if len(tables) == 0 {
		return false, nil
	}

	reservations, err := s.store.ConfirmedReservationsAt(ctx, restaurantID, dateISO, timeHHMM)
	if err != nil {
		return false, fmt.Errorf("store.ConfirmedReservationsAt: %w", err)
	}

	occupied := make(map[string]bool, len(reservations))
	for _, r := range reservations {
		occupied[r.TableID] = true
	}

	idx := pie.FindFirstUsing(tables, func(t storedb.Table) bool {
		return t.State == storedb.TableFree &&
			t.Capacity >= partySize &&
			!occupied[t.ID]
	})

	return idx >= 0, nil
}

var weekdaysES = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

// withinOpeningHours checks the requested time against the restaurant's
// per-weekday ranges. A restaurant without configured hours is always open;
// a configured restaurant without ranges for that weekday is closed.
func withinOpeningHours(r *storedb.Restaurant, dateISO, timeHHMM string) bool {
	if len(r.OpeningHours) == 0 {
		return true
	}

	date, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return false
	}

	ranges := r.OpeningHours[weekdaysES[date.Weekday()]]
	if len(ranges) == 0 {
		return false
	}

	minute, ok := toMinutes(timeHHMM)
	if !ok {
		return false
	}

	return pie.Any(ranges, func(rng string) bool {
		parts := strings.SplitN(rng, "-", 2)
		if len(parts) != 2 {
			return false
		}

		start, okStart := toMinutes(strings.TrimSpace(parts[0]))
		end, okEnd := toMinutes(strings.TrimSpace(parts[1]))

		return okStart && okEnd && minute >= start && minute <= end
	})
}

func toMinutes(hhmm string) (int, bool) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}

	return hour*60 + minute, true
}
