package storedb

import "time"

// Table states.
const (
	TableFree     = "libre"
	TableOccupied = "ocupada"
)

// Reservation states.
const (
	ReservationConfirmed = "confirmada"
	ReservationCanceled  = "cancelada"
)

type Restaurant struct {
	ID      int    `bson:"id"`
	Name    string `bson:"nombre"`
	Address string `bson:"direccion"`
	// Opening ranges per lowercase Spanish weekday, e.g.
	// "viernes": ["13:00-16:00", "20:00-23:30"]. Empty means always open.
	OpeningHours map[string][]string `bson:"horarios"`
}

type Table struct {
	ID           string `bson:"id"`
	RestaurantID int    `bson:"restaurante_id"`
	Name         string `bson:"nombre_mesa"`
	Capacity     int    `bson:"capacidad"`
	State        string `bson:"estado"`
}

type Reservation struct {
	ReservationID string    `bson:"id_reserva"`
	RestaurantID  int       `bson:"restaurante_id"`
	TableID       string    `bson:"mesa_id"`
	TableName     string    `bson:"mesa"`
	Date          string    `bson:"fecha"` // YYYY-MM-DD
	Time          string    `bson:"hora"`  // HH:MM
	PartySize     int       `bson:"personas"`
	FullName      string    `bson:"nombre_completo"`
	Email         string    `bson:"email"`
	Phone         string    `bson:"telefono"`
	Message       string    `bson:"mensaje"`
	State         string    `bson:"estado"`
	CreatedAt     time.Time `bson:"created_at"`
}
