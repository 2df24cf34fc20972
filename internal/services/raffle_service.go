package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/repositories"
	"github.com/apprifas/raffle-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateRaffleInput is the validated input for raffle creation
type CreateRaffleInput struct {
	Name        string
	TicketPrice float64
	Currency    models.Currency
	PoolSize    int
	DrawDate    time.Time
	PaymentInfo models.PaymentInfo
	ImageURL    string
}

// RaffleService coordinates the raffle aggregate: raffle record plus ticket
// pool created as one all-or-nothing unit, cascade deletion, and per-raffle
// count aggregation
type RaffleService interface {
	CreateRaffle(ctx context.Context, input CreateRaffleInput) (*models.Raffle, error)
	GetRaffle(ctx context.Context, id primitive.ObjectID) (*models.RaffleSummary, error)
	ListRaffles(ctx context.Context) ([]*models.RaffleSummary, error)
	CloseRaffle(ctx context.Context, id primitive.ObjectID) error
	DeleteRaffle(ctx context.Context, id primitive.ObjectID) error
}

type raffleService struct {
	raffleRepo repositories.RaffleRepository
	ticketRepo repositories.TicketRepository
}

// NewRaffleService creates a new RaffleService
func NewRaffleService(raffleRepo repositories.RaffleRepository, ticketRepo repositories.TicketRepository) RaffleService {
	return &raffleService{
		raffleRepo: raffleRepo,
		ticketRepo: ticketRepo,
	}
}

// CreateRaffle validates the input, inserts the raffle record and populates
// its ticket pool. The two inserts are not guaranteed to share a transaction,
// so a pool failure triggers a compensating delete of the raffle record:
// readers never see a raffle with a partial pool.
func (s *raffleService) CreateRaffle(ctx context.Context, input CreateRaffleInput) (*models.Raffle, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.TicketPrice <= 0 {
		return nil, fmt.Errorf("%w: ticket price must be positive", ErrValidation)
	}
	if !input.Currency.IsValid() {
		return nil, fmt.Errorf("%w: currency must be USD or Bs", ErrValidation)
	}
	if input.PoolSize <= 0 {
		return nil, fmt.Errorf("%w: pool size must be a positive integer", ErrValidation)
	}
	if input.DrawDate.IsZero() {
		return nil, fmt.Errorf("%w: draw date is required", ErrValidation)
	}

	raffle := &models.Raffle{
		Name:        strings.TrimSpace(input.Name),
		TicketPrice: input.TicketPrice,
		Currency:    input.Currency,
		PoolSize:    input.PoolSize,
		DrawDate:    input.DrawDate,
		PaymentInfo: input.PaymentInfo,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Active:      true,
	}
	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		return nil, fmt.Errorf("failed to create raffle: %w", err)
	}

	tickets := utils.GeneratePool(raffle.ID, input.PoolSize, time.Now())
	if err := s.ticketRepo.InsertMany(ctx, tickets); err != nil {
		// Compensating rollback so the half-created raffle is never visible
		if delErr := s.raffleRepo.Delete(ctx, raffle.ID); delErr != nil {
			log.Printf("[ERROR] failed to roll back raffle %s after pool failure: %v", raffle.ID.Hex(), delErr)
		}
		return nil, fmt.Errorf("failed to generate ticket pool: %w", err)
	}

	return raffle, nil
}

// GetRaffle returns one raffle with its aggregated ticket counts
func (s *raffleService) GetRaffle(ctx context.Context, id primitive.ObjectID) (*models.RaffleSummary, error) {
	raffle, err := s.raffleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: raffle %s", ErrNotFound, id.Hex())
		}
		return nil, err
	}
	counts, err := s.ticketRepo.CountByStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.RaffleSummary{Raffle: raffle, Counts: counts}, nil
}

// ListRaffles returns all raffles, newest first, each with its counts.
// Counts come from aggregation over ticket rows every time; nothing is
// cached, so they cannot drift.
func (s *raffleService) ListRaffles(ctx context.Context) ([]*models.RaffleSummary, error) {
	raffles, err := s.raffleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]*models.RaffleSummary, 0, len(raffles))
	for _, raffle := range raffles {
		counts, err := s.ticketRepo.CountByStatus(ctx, raffle.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &models.RaffleSummary{Raffle: raffle, Counts: counts})
	}
	return summaries, nil
}

// CloseRaffle flips the active flag off. Outstanding reserved and paid
// tickets keep their state.
func (s *raffleService) CloseRaffle(ctx context.Context, id primitive.ObjectID) error {
	err := s.raffleRepo.SetActive(ctx, id, false)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: raffle %s", ErrNotFound, id.Hex())
	}
	return err
}

// DeleteRaffle cascades: ticket rows first, then the raffle record
func (s *raffleService) DeleteRaffle(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.raffleRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: raffle %s", ErrNotFound, id.Hex())
		}
		return err
	}
	if err := s.ticketRepo.DeleteByRaffle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tickets for raffle %s: %w", id.Hex(), err)
	}
	if err := s.raffleRepo.Delete(ctx, id); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to delete raffle %s: %w", id.Hex(), err)
	}
	return nil
}
