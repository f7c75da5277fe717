package storedb

import (
	"context"
	"errors"
	"time"

	"contactia/app/config"

	"github.com/samber/do"
	"github.com/samber/oops"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

const queryTimeout = 5 * time.Second

var _ do.Shutdownable = (*Client)(nil)

// Client is the reservation record store: restaurants, tables and
// reservations collections.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewClient(di *do.Injector) (*Client, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, oops.Errorf("failed to connect to mongo: %w", err)
	}

	if err = client.Ping(connectCtx, nil); err != nil {
		return nil, oops.Errorf("failed to ping mongo: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(cfg.Mongo.Database),
	}, nil
}

func (c *Client) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return c.client.Disconnect(ctx)
}

func (c *Client) restaurants() *mongo.Collection  { return c.db.Collection("restaurants") }
func (c *Client) tables() *mongo.Collection       { return c.db.Collection("tables") }
func (c *Client) reservations() *mongo.Collection { return c.db.Collection("reservations") }

func (c *Client) FindRestaurant(ctx context.Context, id int) (*Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var result Restaurant

	err := c.restaurants().FindOne(ctx, bson.M{"id": id}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, oops.Errorf("failed to find restaurant %d: %w", id, err)
	}

	return &result, nil
}

func (c *Client) TablesByRestaurant(ctx context.Context, restaurantID int) ([]Table, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := c.tables().Find(ctx, bson.M{"restaurante_id": restaurantID})
	if err != nil {
		return nil, oops.Errorf("failed to query tables of restaurant %d: %w", restaurantID, err)
	}

	var result []Table
	if err = cursor.All(ctx, &result); err != nil {
		return nil, oops.Errorf("failed to decode tables: %w", err)
	}

	return result, nil
}

// ConfirmedReservationsAt returns confirmed reservations of the restaurant
// at exactly the given date and time.
func (c *Client) ConfirmedReservationsAt(ctx context.Context, restaurantID int, dateISO, timeHHMM string) ([]Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"restaurante_id": restaurantID,
		"fecha":          dateISO,
		"hora":           timeHHMM,
		"estado":         ReservationConfirmed,
	}

	cursor, err := c.reservations().Find(ctx, filter)
	if err != nil {
		return nil, oops.Errorf("failed to query reservations: %w", err)
	}

	var result []Reservation
	if err = cursor.All(ctx, &result); err != nil {
		return nil, oops.Errorf("failed to decode reservations: %w", err)
	}

	return result, nil
}

func (c *Client) InsertReservation(ctx context.Context, r *Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := c.reservations().InsertOne(ctx, r); err != nil {
		return oops.Errorf("failed to insert reservation %s: %w", r.ReservationID, err)
	}

	return nil
}

func (c *Client) FindReservationByID(ctx context.Context, reservationID string) (*Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var result Reservation

	err := c.reservations().FindOne(ctx, bson.M{"id_reserva": reservationID}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, oops.Errorf("failed to find reservation %s: %w", reservationID, err)
	}

	return &result, nil
}

func (c *Client) UpdateReservationState(ctx context.Context, reservationID, state string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := c.reservations().UpdateOne(ctx,
		bson.M{"id_reserva": reservationID},
		bson.M{"$set": bson.M{"estado": state}},
	)
	if err != nil {
		return oops.Errorf("failed to update reservation %s: %w", reservationID, err)
	}

	return nil
}

func (c *Client) SetTableState(ctx context.Context, tableID, state string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := c.tables().UpdateOne(ctx,
		bson.M{"id": tableID},
		bson.M{"$set": bson.M{"estado": state}},
	)
	if err != nil {
		return oops.Errorf("failed to update table %s: %w", tableID, err)
	}

	return nil
}
