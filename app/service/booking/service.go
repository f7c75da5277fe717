package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"contactia/app/client/storedb"
	"contactia/app/model"
	"contactia/app/service/notify"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

// Store is the slice of the record store this service reads and writes.
type Store interface {
	FindRestaurant(ctx context.Context, id int) (*storedb.Restaurant, error)
	TablesByRestaurant(ctx context.Context, restaurantID int) ([]storedb.Table, error)
	InsertReservation(ctx context.Context, r *storedb.Reservation) error
	FindReservationByID(ctx context.Context, reservationID string) (*storedb.Reservation, error)
	UpdateReservationState(ctx context.Context, reservationID, state string) error
	SetTableState(ctx context.Context, tableID, state string) error
}

// Notifier receives confirmation payloads for asynchronous delivery.
type Notifier interface {
	Add(c model.Confirmation)
}

// Service is the reservation submission and cancellation gateway. Replies
// are user-facing Spanish strings; a non-nil error means the record store
// itself failed, business outcomes ("no table", "unknown id") are replies.
type Service struct {
	store    Store
	notifier Notifier
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		store:    do.MustInvoke[*storedb.Client](di),
		notifier: do.MustInvoke[*notify.Queue](di),
	}, nil
}

func (s *Service) Submit(ctx context.Context, draft model.Draft) (string, error) {
	restaurant, err := s.store.FindRestaurant(ctx, draft.RestaurantID)
	if errors.Is(err, storedb.ErrNotFound) {
		return "Restaurante no encontrado.", nil
	}
	if err != nil {
		return "", fmt.Errorf("store.FindRestaurant: %w", err)
	}

	tables, err := s.store.TablesByRestaurant(ctx, draft.RestaurantID)
	if err != nil {
		return "", fmt.Errorf("store.TablesByRestaurant: %w", err)
	}
	if len(tables) == 0 {
		return fmt.Sprintf("No hay mesas configuradas para %s.", restaurant.Name), nil
	}

	// Smallest table that fits the party.
	candidates := pie.Filter(tables, func(t storedb.Table) bool {
		return t.State == storedb.TableFree && t.Capacity >= draft.PartySize
	})
	if len(candidates) == 0 {
		return fmt.Sprintf("No hay mesas disponibles para %d personas.", draft.PartySize), nil
	}

	candidates = pie.SortUsing(candidates, func(a, b storedb.Table) bool {
		return a.Capacity < b.Capacity
	})
	table := candidates[0]

	reservationID := newReservationID(restaurant.Name, draft.Date)

	record := storedb.Reservation{
		ReservationID: reservationID,
		RestaurantID:  draft.RestaurantID,
		TableID:       table.ID,
		TableName:     table.Name,
		Date:          draft.Date,
		Time:          draft.Time,
		PartySize:     draft.PartySize,
		FullName:      draft.FullName,
		Email:         draft.Email,
		Phone:         draft.Phone,
		State:         storedb.ReservationConfirmed,
		CreatedAt:     time.Now(),
	}

	if err = s.store.InsertReservation(ctx, &record); err != nil {
		return "", fmt.Errorf("store.InsertReservation: %w", err)
	}

	slog.Info("Reservation created",
		"reservation", reservationID,
		"restaurant", restaurant.Name,
		"table", table.Name,
		"telegram", true,
	)

	s.notifier.Add(model.Confirmation{
		Kind:          model.KindReservation,
		ReservationID: reservationID,
		Restaurant:    restaurant.Name,
		Address:       restaurant.Address,
		TableName:     table.Name,
		Date:          displayDate(draft.Date),
		Time:          draft.Time,
		PartySize:     draft.PartySize,
		FullName:      draft.FullName,
		Email:         draft.Email,
		Phone:         draft.Phone,
	})

	return fmt.Sprintf("✅ Reserva confirmada en %s para %d personas el %s a las %s.\n🪑 Mesa: %s\n🎫 ID: %s",
		restaurant.Name, draft.PartySize, displayDate(draft.Date), draft.Time, table.Name, reservationID), nil
}

func (s *Service) Cancel(ctx context.Context, reservationID, email string) (string, error) {
	reservation, err := s.store.FindReservationByID(ctx, reservationID)
	if errors.Is(err, storedb.ErrNotFound) {
		return "No se encontró ninguna reserva con ese ID.", nil
	}
	if err != nil {
		return "", fmt.Errorf("store.FindReservationByID: %w", err)
	}

	if reservation.State == storedb.ReservationCanceled {
		return fmt.Sprintf("La reserva %s ya estaba cancelada.", reservationID), nil
	}

	if !strings.EqualFold(strings.TrimSpace(email), reservation.Email) {
		return "El correo electrónico no coincide con el de la reserva.", nil
	}

	if err = s.store.UpdateReservationState(ctx, reservationID, storedb.ReservationCanceled); err != nil {
		return "", fmt.Errorf("store.UpdateReservationState: %w", err)
	}

	if reservation.TableID != "" {
		if err = s.store.SetTableState(ctx, reservation.TableID, storedb.TableFree); err != nil {
			slog.Error("Failed to release table after cancellation",
				"reservation", reservationID,
				"table", reservation.TableID,
				"error", err,
			)
		}
	}

	slog.Info("Reservation canceled",
		"reservation", reservationID,
		"telegram", true,
	)

	restaurantName := ""
	if restaurant, err := s.store.FindRestaurant(ctx, reservation.RestaurantID); err == nil {
		restaurantName = restaurant.Name
	}

	s.notifier.Add(model.Confirmation{
		Kind:          model.KindCancellation,
		ReservationID: reservationID,
		Restaurant:    restaurantName,
		TableName:     reservation.TableName,
		Date:          displayDate(reservation.Date),
		Time:          reservation.Time,
		PartySize:     reservation.PartySize,
		FullName:      reservation.FullName,
		Email:         reservation.Email,
		Phone:         reservation.Phone,
	})

	return fmt.Sprintf("❌ Tu reserva %s ha sido cancelada correctamente.\n📧 Se ha enviado un correo de confirmación a %s.",
		reservationID, reservation.Email), nil
}

func displayDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}

	return t.Format("02/01/2006")
}
