package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Currency represents the currency a raffle is priced in
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyBs  Currency = "Bs"
)

// IsValid reports whether the currency is one of the supported values
func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyBs
}

// PaymentInfo holds the payment instructions shown to buyers so they can
// transfer the ticket price before the operator confirms the hold
type PaymentInfo struct {
	AccountHolder string `bson:"accountHolder" json:"accountHolder"`
	Bank          string `bson:"bank" json:"bank"`
	PhoneNumber   string `bson:"phoneNumber" json:"phoneNumber"`
	NationalID    string `bson:"nationalId" json:"nationalId"`
}

// Raffle represents a time-boxed raffle with a fixed pool of numbered tickets.
// Immutable after creation except Active, which is set to false on close.
type Raffle struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	TicketPrice float64            `bson:"ticketPrice" json:"ticketPrice"`
	Currency    Currency           `bson:"currency" json:"currency"`
	PoolSize    int                `bson:"poolSize" json:"poolSize"`
	DrawDate    time.Time          `bson:"drawDate" json:"drawDate"`
	PaymentInfo PaymentInfo        `bson:"paymentInfo" json:"paymentInfo"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TicketCounts aggregates ticket rows per status for one raffle. Counts are
// always computed from the tickets collection, never stored on the raffle.
type TicketCounts struct {
	Available int64 `json:"available"`
	Reserved  int64 `json:"reserved"`
	Paid      int64 `json:"paid"`
}

// RaffleSummary is a raffle together with its aggregated ticket counts
type RaffleSummary struct {
	Raffle *Raffle      `json:"raffle"`
	Counts TicketCounts `json:"counts"`
}
