package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification statuses
const (
	NotificationStatusSent   = "SENT"
	NotificationStatusFailed = "FAILED"
)

// Notification templates
const (
	TemplateHoldCreated      = "hold_created"
	TemplatePaymentConfirmed = "payment_confirmed"
)

// Notification records one outbound WhatsApp message attempt. Delivery is
// best-effort and never part of a ticket transition's transaction.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Recipient string             `bson:"recipient" json:"recipient"`
	Template  string             `bson:"template" json:"template"`
	Content   string             `bson:"content" json:"content"`
	Status    string             `bson:"status" json:"status"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	MessageID string             `bson:"messageId,omitempty" json:"messageId,omitempty"`
	RaffleID  primitive.ObjectID `bson:"raffleId,omitempty" json:"raffleId,omitempty"`
	Number    string             `bson:"number,omitempty" json:"number,omitempty"`
	SentAt    time.Time          `bson:"sentAt,omitempty" json:"sentAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
