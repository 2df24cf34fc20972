package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus represents the lifecycle state of a ticket number
type TicketStatus string

const (
	TicketStatusAvailable TicketStatus = "available"
	TicketStatusReserved  TicketStatus = "reserved"
	TicketStatusPaid      TicketStatus = "paid"
)

// Ticket represents one numbered entry in a raffle's pool. Identity is
// (raffleId, number); a unique compound index enforces at most one row per
// pair. A reservation hold is not a separate entity: it is the reserved
// sub-state of the ticket (reservedAt/expiresAt plus the holder fields).
type Ticket struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RaffleID      primitive.ObjectID `bson:"raffleId" json:"raffleId"`
	Number        string             `bson:"number" json:"number"`
	Status        TicketStatus       `bson:"status" json:"status"`
	HolderName    string             `bson:"holderName,omitempty" json:"holderName,omitempty"`
	HolderContact string             `bson:"holderContact,omitempty" json:"holderContact,omitempty"`
	PaymentRef    string             `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	PayerBank     string             `bson:"payerBank,omitempty" json:"payerBank,omitempty"`
	ReservedAt    time.Time          `bson:"reservedAt,omitempty" json:"reservedAt,omitempty"`
	ExpiresAt     time.Time          `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	PaidAt        time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaidConfirmed bool               `bson:"paidConfirmed" json:"paidConfirmed"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HoldInfo carries the buyer-supplied fields recorded when a number is claimed
type HoldInfo struct {
	HolderName    string
	HolderContact string
	PaymentRef    string
	PayerBank     string
}

// IsExpired reports whether a reserved ticket's hold has lapsed at the given
// instant. Expiry is lazy: the stored status stays "reserved" until another
// claim or a sweep overwrites it, so readers that care about claimability
// must apply this test themselves.
func (t *Ticket) IsExpired(now time.Time) bool {
	return t.Status == TicketStatusReserved && !t.ExpiresAt.IsZero() && t.ExpiresAt.Before(now)
}
