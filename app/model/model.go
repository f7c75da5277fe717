package model

// Draft is the reservation being collected turn by turn. A zero field means
// the slot has not been filled yet.
type Draft struct {
	RestaurantID int    `json:"restaurante_id"`
	Date         string `json:"fecha"` // YYYY-MM-DD
	Time         string `json:"hora"`  // HH:MM
	PartySize    int    `json:"personas"`
	FullName     string `json:"nombre"`
	Email        string `json:"email"`
	Phone        string `json:"telefono"`
}

type ConfirmationKind string

const (
	KindReservation  ConfirmationKind = "reservation"
	KindCancellation ConfirmationKind = "cancellation"
)

// Confirmation carries everything the notification channels need to render
// an email or a WhatsApp message.
type Confirmation struct {
	Kind          ConfirmationKind
	ReservationID string
	Restaurant    string
	Address       string
	TableName     string
	Date          string // DD/MM/YYYY, display form
	Time          string
	PartySize     int
	FullName      string
	Email         string
	Phone         string
}
