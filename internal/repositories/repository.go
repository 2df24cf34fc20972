package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by repositories when no record matches. For the
// conditional ticket transitions (Reserve, MarkPaid, Release) it also covers
// the case where the row exists but its current state fails the transition's
// precondition; callers disambiguate with a follow-up read.
var ErrNotFound = errors.New("record not found")

// RaffleRepository defines the interface for raffle data operations
type RaffleRepository interface {
	Create(ctx context.Context, raffle *models.Raffle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error)
	FindAll(ctx context.Context) ([]*models.Raffle, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TicketRepository defines the interface for ticket data operations. The
// three transition methods are single conditional writes: the state check and
// the update are one indivisible operation against the store, so concurrent
// callers on the same (raffleId, number) get exactly one winner.
type TicketRepository interface {
	InsertMany(ctx context.Context, tickets []*models.Ticket) error
	FindByNumber(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error)
	FindAvailableNumbers(ctx context.Context, raffleID primitive.ObjectID, now time.Time) ([]string, error)
	FindByStatus(ctx context.Context, status models.TicketStatus) ([]*models.Ticket, error)
	FindByRaffleAndStatus(ctx context.Context, raffleID primitive.ObjectID, status models.TicketStatus) ([]*models.Ticket, error)
	// Reserve claims the ticket iff it is available or its hold has expired
	Reserve(ctx context.Context, raffleID primitive.ObjectID, number string, hold models.HoldInfo, reservedAt, expiresAt time.Time) (*models.Ticket, error)
	// MarkPaid confirms the ticket iff it is currently reserved
	MarkPaid(ctx context.Context, raffleID primitive.ObjectID, number string, paidAt time.Time) (*models.Ticket, error)
	// Release returns the ticket to available iff it is currently reserved
	Release(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error)
	// ReleaseExpired flips every reserved ticket whose hold lapsed before
	// cutoff back to available, returning the number of rows changed
	ReleaseExpired(ctx context.Context, cutoff time.Time) (int64, error)
	CountByStatus(ctx context.Context, raffleID primitive.ObjectID) (models.TicketCounts, error)
	DeleteByRaffle(ctx context.Context, raffleID primitive.ObjectID) error
}

// AdminUserRepository defines the interface for operator account operations
type AdminUserRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}

// NotificationRepository defines the interface for notification records
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByStatus(ctx context.Context, status string, page, limit int) ([]*models.Notification, error)
}
