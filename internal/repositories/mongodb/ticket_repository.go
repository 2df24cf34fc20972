package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketRepository implements the repositories.TicketRepository interface
type TicketRepository struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository and ensures the unique
// (raffleId, number) index that backs the one-row-per-number invariant
func NewTicketRepository(db *mongo.Database) repositories.TicketRepository {
	collection := db.Collection("tickets")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "raffleId", Value: 1}, {Key: "number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("[WARN] failed to ensure ticket index: %v", err)
	}

	return &TicketRepository{collection: collection}
}

// InsertMany inserts a full ticket pool in one bulk write
func (r *TicketRepository) InsertMany(ctx context.Context, tickets []*models.Ticket) error {
	docs := make([]interface{}, 0, len(tickets))
	for _, t := range tickets {
		docs = append(docs, t)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByNumber finds a ticket by its (raffleId, number) identity
func (r *TicketRepository) FindByNumber(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"raffleId": raffleID, "number": number}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// claimableFilter matches tickets that may be claimed at the given instant:
// available, or reserved with a lapsed hold
func claimableFilter(now time.Time) []bson.M {
	return []bson.M{
		{"status": models.TicketStatusAvailable},
		{"status": models.TicketStatusReserved, "expiresAt": bson.M{"$lt": now}},
	}
}

// FindAvailableNumbers returns the claimable numbers of a raffle in display
// order, applying the same expiry test Reserve enforces
func (r *TicketRepository) FindAvailableNumbers(ctx context.Context, raffleID primitive.ObjectID, now time.Time) ([]string, error) {
	filter := bson.M{"raffleId": raffleID, "$or": claimableFilter(now)}
	opts := options.Find().
		SetSort(bson.M{"number": 1}).
		SetProjection(bson.M{"number": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Number string `bson:"number"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	numbers := make([]string, 0, len(docs))
	for _, d := range docs {
		numbers = append(numbers, d.Number)
	}
	return numbers, nil
}

// FindByStatus finds tickets by raw stored status across all raffles
func (r *TicketRepository) FindByStatus(ctx context.Context, status models.TicketStatus) ([]*models.Ticket, error) {
	return r.findTickets(ctx, bson.M{"status": status})
}

// FindByRaffleAndStatus finds tickets by raw stored status within one raffle
func (r *TicketRepository) FindByRaffleAndStatus(ctx context.Context, raffleID primitive.ObjectID, status models.TicketStatus) ([]*models.Ticket, error) {
	return r.findTickets(ctx, bson.M{"raffleId": raffleID, "status": status})
}

func (r *TicketRepository) findTickets(ctx context.Context, filter bson.M) ([]*models.Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "raffleId", Value: 1}, {Key: "number", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}

// Reserve atomically claims a ticket. The filter re-asserts the precondition
// (available, or reserved with a lapsed hold) in the same operation as the
// write, so two simultaneous claimants can never both win: the losing update
// matches nothing and surfaces as ErrNotFound.
func (r *TicketRepository) Reserve(ctx context.Context, raffleID primitive.ObjectID, number string, hold models.HoldInfo, reservedAt, expiresAt time.Time) (*models.Ticket, error) {
	filter := bson.M{
		"raffleId": raffleID,
		"number":   number,
		"$or":      claimableFilter(reservedAt),
	}
	update := bson.M{"$set": bson.M{
		"status":        models.TicketStatusReserved,
		"holderName":    hold.HolderName,
		"holderContact": hold.HolderContact,
		"paymentRef":    hold.PaymentRef,
		"payerBank":     hold.PayerBank,
		"reservedAt":    reservedAt,
		"expiresAt":     expiresAt,
		"updatedAt":     reservedAt,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// MarkPaid atomically confirms a reserved ticket, clearing its expiry. No
// expiry check here: a lapsed hold that nobody reclaimed can still be
// confirmed.
func (r *TicketRepository) MarkPaid(ctx context.Context, raffleID primitive.ObjectID, number string, paidAt time.Time) (*models.Ticket, error) {
	filter := bson.M{
		"raffleId": raffleID,
		"number":   number,
		"status":   models.TicketStatusReserved,
	}
	update := bson.M{
		"$set": bson.M{
			"status":        models.TicketStatusPaid,
			"paidAt":        paidAt,
			"paidConfirmed": true,
			"updatedAt":     paidAt,
		},
		"$unset": bson.M{"expiresAt": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// Release atomically returns a reserved ticket to available. Holder fields
// are kept as an audit trail of the last attempt; the next claim overwrites
// them.
func (r *TicketRepository) Release(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error) {
	filter := bson.M{
		"raffleId": raffleID,
		"number":   number,
		"status":   models.TicketStatusReserved,
	}
	update := bson.M{
		"$set":   bson.M{"status": models.TicketStatusAvailable, "updatedAt": time.Now()},
		"$unset": bson.M{"expiresAt": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *TicketRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.Ticket, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ticket models.Ticket
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// ReleaseExpired flips every reserved ticket whose hold lapsed before cutoff
// back to available
func (r *TicketRepository) ReleaseExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"status":    models.TicketStatusReserved,
		"expiresAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set":   bson.M{"status": models.TicketStatusAvailable, "updatedAt": time.Now()},
		"$unset": bson.M{"expiresAt": ""},
	}
	res, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CountByStatus aggregates ticket counts per status for one raffle
func (r *TicketRepository) CountByStatus(ctx context.Context, raffleID primitive.ObjectID) (models.TicketCounts, error) {
	var counts models.TicketCounts
	pipeline := []bson.M{
		{"$match": bson.M{"raffleId": raffleID}},
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return counts, fmt.Errorf("failed to aggregate ticket counts: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status models.TicketStatus `bson:"_id"`
		Count  int64               `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return counts, fmt.Errorf("failed to decode ticket counts: %w", err)
	}
	for _, res := range results {
		switch res.Status {
		case models.TicketStatusAvailable:
			counts.Available = res.Count
		case models.TicketStatusReserved:
			counts.Reserved = res.Count
		case models.TicketStatusPaid:
			counts.Paid = res.Count
		}
	}
	return counts, nil
}

// DeleteByRaffle removes every ticket row belonging to a raffle
func (r *TicketRepository) DeleteByRaffle(ctx context.Context, raffleID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"raffleId": raffleID})
	return err
}
