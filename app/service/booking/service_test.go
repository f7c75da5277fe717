package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"contactia/app/client/storedb"
	"contactia/app/model"
)

type fakeStore struct {
	restaurant  *storedb.Restaurant
	tables      []storedb.Table
	reservation *storedb.Reservation

	findRestaurantErr  error
	findReservationErr error
	insertErr          error

	inserted      []storedb.Reservation
	stateUpdates  map[string]string
	tableReleases map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		stateUpdates:  make(map[string]string),
		tableReleases: make(map[string]string),
	}
}

func (f *fakeStore) FindRestaurant(context.Context, int) (*storedb.Restaurant, error) {
	if f.findRestaurantErr != nil {
		return nil, f.findRestaurantErr
	}

	return f.restaurant, nil
}

func (f *fakeStore) TablesByRestaurant(context.Context, int) ([]storedb.Table, error) {
	return f.tables, nil
}

func (f *fakeStore) InsertReservation(_ context.Context, r *storedb.Reservation) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, *r)

	return nil
}

func (f *fakeStore) FindReservationByID(context.Context, string) (*storedb.Reservation, error) {
	if f.findReservationErr != nil {
		return nil, f.findReservationErr
	}

	return f.reservation, nil
}

func (f *fakeStore) UpdateReservationState(_ context.Context, reservationID, state string) error {
	f.stateUpdates[reservationID] = state

	return nil
}

func (f *fakeStore) SetTableState(_ context.Context, tableID, state string) error {
	f.tableReleases[tableID] = state

	return nil
}

type fakeNotifier struct {
	added []model.Confirmation
}

func (f *fakeNotifier) Add(c model.Confirmation) {
	f.added = append(f.added, c)
}

var testDraft = model.Draft{
	RestaurantID: 1,
	Date:         "2025-12-25",
	Time:         "14:00",
	PartySize:    4,
	FullName:     "Juan Pérez",
	Email:        "juan@mail.com",
	Phone:        "+34612345678",
}

func TestSubmitPicksSmallestFittingTable(t *testing.T) {
	store := newFakeStore()
	store.restaurant = &storedb.Restaurant{ID: 1, Name: "Sol y Mar", Address: "Calle Mayor 1"}
	store.tables = []storedb.Table{
		{ID: "t8", Name: "Mesa 8", Capacity: 8, State: storedb.TableFree},
		{ID: "t4", Name: "Mesa 4", Capacity: 4, State: storedb.TableFree},
		{ID: "t2", Name: "Mesa 2", Capacity: 2, State: storedb.TableFree},
		{ID: "t6", Name: "Mesa 6", Capacity: 6, State: storedb.TableOccupied},
	}

	notifier := &fakeNotifier{}
	s := &Service{store: store, notifier: notifier}

	reply, err := s.Submit(context.Background(), testDraft)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d reservations, want 1", len(store.inserted))
	}

	record := store.inserted[0]
	if record.TableID != "t4" {
		t.Errorf("table = %s, want smallest fitting t4", record.TableID)
	}
	if record.State != storedb.ReservationConfirmed {
		t.Errorf("state = %q, want confirmed", record.State)
	}
	if !strings.HasPrefix(record.ReservationID, "SOL-20251225-") {
		t.Errorf("reservation id = %q, want SOL-20251225-NNNN", record.ReservationID)
	}

	for _, part := range []string{"Sol y Mar", "4 personas", "25/12/2025", "14:00", "Mesa 4", record.ReservationID} {
		if !strings.Contains(reply, part) {
			t.Errorf("reply missing %q:\n%s", part, reply)
		}
	}

	if len(notifier.added) != 1 {
		t.Fatalf("queued %d notifications, want 1", len(notifier.added))
	}
	n := notifier.added[0]
	if n.Kind != model.KindReservation || n.Email != "juan@mail.com" || n.Date != "25/12/2025" {
		t.Errorf("notification = %+v", n)
	}
}

func TestSubmitBusinessOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
		want  string
	}{
		{
			name: "unknown restaurant",
			store: func() *fakeStore {
				f := newFakeStore()
				f.findRestaurantErr = storedb.ErrNotFound
				return f
			}(),
			want: "Restaurante no encontrado.",
		},
		{
			name: "no tables configured",
			store: func() *fakeStore {
				f := newFakeStore()
				f.restaurant = &storedb.Restaurant{Name: "Sol y Mar"}
				return f
			}(),
			want: "No hay mesas configuradas para Sol y Mar.",
		},
		{
			name: "no table fits the party",
			store: func() *fakeStore {
				f := newFakeStore()
				f.restaurant = &storedb.Restaurant{Name: "Sol y Mar"}
				f.tables = []storedb.Table{{ID: "t2", Capacity: 2, State: storedb.TableFree}}
				return f
			}(),
			want: "No hay mesas disponibles para 4 personas.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			s := &Service{store: tt.store, notifier: notifier}

			reply, err := s.Submit(context.Background(), testDraft)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if reply != tt.want {
				t.Errorf("reply = %q, want %q", reply, tt.want)
			}
			if len(notifier.added) != 0 {
				t.Errorf("queued %d notifications, want none", len(notifier.added))
			}
		})
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.restaurant = &storedb.Restaurant{Name: "Sol y Mar"}
	store.tables = []storedb.Table{{ID: "t4", Capacity: 4, State: storedb.TableFree}}
	store.insertErr = errors.New("write timeout")

	s := &Service{store: store, notifier: &fakeNotifier{}}

	if _, err := s.Submit(context.Background(), testDraft); err == nil {
		t.Error("expected insert failure to surface as an error")
	}
}

func TestCancel(t *testing.T) {
	reservation := storedb.Reservation{
		ReservationID: "SOL-20251107-4123",
		RestaurantID:  1,
		TableID:       "t4",
		TableName:     "Mesa 4",
		Date:          "2025-11-07",
		Time:          "21:00",
		PartySize:     2,
		FullName:      "Ana",
		Email:         "ana@mail.com",
		State:         storedb.ReservationConfirmed,
	}

	store := newFakeStore()
	store.restaurant = &storedb.Restaurant{ID: 1, Name: "Sol y Mar"}
	store.reservation = &reservation
	notifier := &fakeNotifier{}
	s := &Service{store: store, notifier: notifier}

	reply, err := s.Cancel(context.Background(), "SOL-20251107-4123", "ANA@mail.com")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	if !strings.Contains(reply, "SOL-20251107-4123") || !strings.Contains(reply, "ana@mail.com") {
		t.Errorf("reply = %q", reply)
	}
	if store.stateUpdates["SOL-20251107-4123"] != storedb.ReservationCanceled {
		t.Errorf("state updates = %v, want canceled", store.stateUpdates)
	}
	if store.tableReleases["t4"] != storedb.TableFree {
		t.Errorf("table releases = %v, want t4 freed", store.tableReleases)
	}

	if len(notifier.added) != 1 {
		t.Fatalf("queued %d notifications, want 1", len(notifier.added))
	}
	if notifier.added[0].Kind != model.KindCancellation {
		t.Errorf("notification kind = %v, want cancellation", notifier.added[0].Kind)
	}
}

func TestCancelBusinessOutcomes(t *testing.T) {
	canceled := storedb.Reservation{
		ReservationID: "SOL-20251107-4123",
		Email:         "ana@mail.com",
		State:         storedb.ReservationCanceled,
	}
	confirmed := storedb.Reservation{
		ReservationID: "SOL-20251107-4123",
		Email:         "ana@mail.com",
		State:         storedb.ReservationConfirmed,
	}

	tests := []struct {
		name  string
		store *fakeStore
		email string
		want  string
	}{
		{
			name: "unknown id",
			store: func() *fakeStore {
				f := newFakeStore()
				f.findReservationErr = storedb.ErrNotFound
				return f
			}(),
			email: "ana@mail.com",
			want:  "No se encontró ninguna reserva con ese ID.",
		},
		{
			name: "already canceled",
			store: func() *fakeStore {
				f := newFakeStore()
				f.reservation = &canceled
				return f
			}(),
			email: "ana@mail.com",
			want:  "La reserva SOL-20251107-4123 ya estaba cancelada.",
		},
		{
			name: "email mismatch",
			store: func() *fakeStore {
				f := newFakeStore()
				f.reservation = &confirmed
				return f
			}(),
			email: "otra@mail.com",
			want:  "El correo electrónico no coincide con el de la reserva.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			s := &Service{store: tt.store, notifier: notifier}

			reply, err := s.Cancel(context.Background(), "SOL-20251107-4123", tt.email)
			if err != nil {
				t.Fatalf("Cancel: %v", err)
			}
			if reply != tt.want {
				t.Errorf("reply = %q, want %q", reply, tt.want)
			}
			if len(tt.store.stateUpdates) != 0 {
				t.Errorf("state updated on a rejected cancellation: %v", tt.store.stateUpdates)
			}
			if len(notifier.added) != 0 {
				t.Errorf("queued %d notifications, want none", len(notifier.added))
			}
		})
	}
}
