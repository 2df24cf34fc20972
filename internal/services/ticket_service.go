package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketService is the reservation state machine: the three ticket
// transitions plus the read-side views over ticket state
type TicketService interface {
	Claim(ctx context.Context, raffleID primitive.ObjectID, number string, hold models.HoldInfo) (*models.Ticket, error)
	ConfirmPayment(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error)
	RejectHold(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error)
	AvailableNumbers(ctx context.Context, raffleID primitive.ObjectID) ([]string, error)
	PendingHolds(ctx context.Context) ([]*models.Ticket, error)
	ReservedByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Ticket, error)
	PaidByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Ticket, error)
	ReleaseExpired(ctx context.Context) (int64, error)
}

type ticketService struct {
	ticketRepo   repositories.TicketRepository
	notifier     NotificationService
	holdDuration time.Duration
}

// NewTicketService creates a new TicketService. holdDuration is the validity
// window of a reservation hold from the moment of claim.
func NewTicketService(ticketRepo repositories.TicketRepository, notifier NotificationService, holdDuration time.Duration) TicketService {
	return &ticketService{
		ticketRepo:   ticketRepo,
		notifier:     notifier,
		holdDuration: holdDuration,
	}
}

// Claim moves a ticket from available (or expired-reserved) to reserved. The
// precondition check and the write are one conditional update in the store,
// so of N simultaneous claimants on the same number exactly one wins and the
// rest get ErrConflict. First committed wins; there is no queueing.
func (s *ticketService) Claim(ctx context.Context, raffleID primitive.ObjectID, number string, hold models.HoldInfo) (*models.Ticket, error) {
	now := time.Now()
	ticket, err := s.ticketRepo.Reserve(ctx, raffleID, number, hold, now, now.Add(s.holdDuration))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.classifyMiss(ctx, raffleID, number)
		}
		return nil, fmt.Errorf("failed to reserve ticket: %w", err)
	}

	// Best-effort side effect, never part of the transition
	go s.notifier.SendHoldCreated(context.Background(), ticket)

	return ticket, nil
}

// ConfirmPayment moves a ticket from reserved to paid. Expiry is not
// re-checked: a lapsed hold that nobody reclaimed can still be confirmed.
// paid is terminal; no transition ever leaves it.
func (s *ticketService) ConfirmPayment(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.MarkPaid(ctx, raffleID, number, time.Now())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.classifyMiss(ctx, raffleID, number)
		}
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}

	go s.notifier.SendPaymentConfirmed(context.Background(), ticket)

	return ticket, nil
}

// RejectHold returns a reserved ticket to available. Holder and payment
// fields stay on the row as an audit trail of the rejected attempt; the next
// claim overwrites them.
func (s *ticketService) RejectHold(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.Release(ctx, raffleID, number)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, s.classifyMiss(ctx, raffleID, number)
		}
		return nil, fmt.Errorf("failed to reject hold: %w", err)
	}
	return ticket, nil
}

// classifyMiss disambiguates a conditional-update miss: the row either does
// not exist at all, or exists in a state that fails the precondition
func (s *ticketService) classifyMiss(ctx context.Context, raffleID primitive.ObjectID, number string) error {
	ticket, err := s.ticketRepo.FindByNumber(ctx, raffleID, number)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: ticket %s", ErrNotFound, number)
		}
		return fmt.Errorf("failed to look up ticket %s: %w", number, err)
	}
	return fmt.Errorf("%w: ticket %s is %s", ErrConflict, number, ticket.Status)
}

// AvailableNumbers lists the claimable numbers of a raffle, applying the same
// expiry test Claim enforces so an expired hold shows as available here even
// though its stored status is still reserved
func (s *ticketService) AvailableNumbers(ctx context.Context, raffleID primitive.ObjectID) ([]string, error) {
	return s.ticketRepo.FindAvailableNumbers(ctx, raffleID, time.Now())
}

// PendingHolds lists reserved tickets across all raffles for the operator
// review queue. Raw stored status, including technically-expired holds, so
// the operator sees every outstanding payment claim.
func (s *ticketService) PendingHolds(ctx context.Context) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByStatus(ctx, models.TicketStatusReserved)
}

// ReservedByRaffle lists one raffle's reserved tickets, raw stored status
func (s *ticketService) ReservedByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByRaffleAndStatus(ctx, raffleID, models.TicketStatusReserved)
}

// PaidByRaffle lists one raffle's paid tickets for reporting
func (s *ticketService) PaidByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.Ticket, error) {
	return s.ticketRepo.FindByRaffleAndStatus(ctx, raffleID, models.TicketStatusPaid)
}

// ReleaseExpired sweeps long-expired holds back to available. Purely
// cosmetic for reporting: Claim already treats expired holds as claimable
// without it.
func (s *ticketService) ReleaseExpired(ctx context.Context) (int64, error) {
	return s.ticketRepo.ReleaseExpired(ctx, time.Now())
}
