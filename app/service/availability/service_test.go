package availability

import (
	"context"
	"errors"
	"testing"

	"contactia/app/client/storedb"
)

type fakeStore struct {
	restaurant   *storedb.Restaurant
	tables       []storedb.Table
	reservations []storedb.Reservation

	findErr   error
	tablesErr error
}

func (f *fakeStore) FindRestaurant(context.Context, int) (*storedb.Restaurant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	return f.restaurant, nil
}

func (f *fakeStore) TablesByRestaurant(context.Context, int) ([]storedb.Table, error) {
	return f.tables, f.tablesErr
}

func (f *fakeStore) ConfirmedReservationsAt(context.Context, int, string, string) ([]storedb.Reservation, error) {
	return f.reservations, nil
}

func TestCheck(t *testing.T) {
	restaurant := &storedb.Restaurant{ID: 1, Name: "Restaurante Sol"}

	tests := []struct {
		name      string
		store     *fakeStore
		partySize int
		want      bool
	}{
		{
			name: "free table with enough capacity",
			store: &fakeStore{
				restaurant: restaurant,
				tables:     []storedb.Table{{ID: "t1", Capacity: 4, State: storedb.TableFree}},
			},
			partySize: 4,
			want:      true,
		},
		{
			name: "all tables too small",
			store: &fakeStore{
				restaurant: restaurant,
				tables:     []storedb.Table{{ID: "t1", Capacity: 2, State: storedb.TableFree}},
			},
			partySize: 4,
			want:      false,
		},
		{
			name: "table marked occupied",
			store: &fakeStore{
				restaurant: restaurant,
				tables:     []storedb.Table{{ID: "t1", Capacity: 4, State: storedb.TableOccupied}},
			},
			partySize: 2,
			want:      false,
		},
		{
			name: "only fitting table already reserved for that slot",
			store: &fakeStore{
				restaurant:   restaurant,
				tables:       []storedb.Table{{ID: "t1", Capacity: 4, State: storedb.TableFree}},
				reservations: []storedb.Reservation{{TableID: "t1"}},
			},
			partySize: 2,
			want:      false,
		},
		{
			name: "reserved table skipped in favor of another",
			store: &fakeStore{
				restaurant: restaurant,
				tables: []storedb.Table{
					{ID: "t1", Capacity: 4, State: storedb.TableFree},
					{ID: "t2", Capacity: 4, State: storedb.TableFree},
				},
				reservations: []storedb.Reservation{{TableID: "t1"}},
			},
			partySize: 2,
			want:      true,
		},
		{
			name: "no tables configured",
			store: &fakeStore{
				restaurant: restaurant,
			},
			partySize: 2,
			want:      false,
		},
		{
			name: "unknown restaurant",
			store: &fakeStore{
				findErr: storedb.ErrNotFound,
			},
			partySize: 2,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Service{store: tt.store}

			got, err := s.Check(context.Background(), 1, "2025-12-25", "14:00", tt.partySize)
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if got != tt.want {
				t.Errorf("Check = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckStoreFailure(t *testing.T) {
	s := &Service{store: &fakeStore{findErr: errors.New("connection reset")}}

	if _, err := s.Check(context.Background(), 1, "2025-12-25", "14:00", 2); err == nil {
		t.Error("expected a store failure to surface as an error")
	}
}

func TestWithinOpeningHours(t *testing.T) {
	// 2025-12-25 is a Thursday, 2025-12-28 a Sunday.
	configured := &storedb.Restaurant{OpeningHours: map[string][]string{
		"jueves": {"13:00-16:00", "20:00-23:30"},
	}}

	tests := []struct {
		name string
		r    *storedb.Restaurant
		date string
		time string
		want bool
	}{
		{"no hours configured means always open", &storedb.Restaurant{}, "2025-12-25", "03:00", true},
		{"inside lunch range", configured, "2025-12-25", "14:00", true},
		{"range boundary counts as open", configured, "2025-12-25", "16:00", true},
		{"between ranges", configured, "2025-12-25", "18:00", false},
		{"inside dinner range", configured, "2025-12-25", "21:00", true},
		{"weekday without ranges is closed", configured, "2025-12-28", "14:00", false},
		{"malformed date", configured, "mañana", "14:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := withinOpeningHours(tt.r, tt.date, tt.time); got != tt.want {
				t.Errorf("withinOpeningHours(%q, %q) = %v, want %v", tt.date, tt.time, got, tt.want)
			}
		})
	}
}
