package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTicketRepo is an in-memory TicketRepository. Its transition methods
// hold one mutex across the precondition check and the write, mirroring the
// conditional-update atomicity of the real store.
type fakeTicketRepo struct {
	mu        sync.Mutex
	tickets   map[string]*models.Ticket
	insertErr error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*models.Ticket)}
}

func ticketKey(raffleID primitive.ObjectID, number string) string {
	return raffleID.Hex() + "/" + number
}

func (f *fakeTicketRepo) InsertMany(ctx context.Context, tickets []*models.Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, t := range tickets {
		copied := *t
		if copied.ID.IsZero() {
			copied.ID = primitive.NewObjectID()
		}
		f.tickets[ticketKey(t.RaffleID, t.Number)] = &copied
	}
	return nil
}

func (f *fakeTicketRepo) FindByNumber(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[ticketKey(raffleID, number)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTicketRepo) FindAvailableNumbers(ctx context.Context, raffleID primitive.ObjectID, now time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var numbers []string
	for _, t := range f.tickets {
		if t.RaffleID != raffleID {
			continue
		}
		if t.Status == models.TicketStatusAvailable || t.IsExpired(now) {
			numbers = append(numbers, t.Number)
		}
	}
	sort.Strings(numbers)
	return numbers, nil
}

func (f *fakeTicketRepo) FindByStatus(ctx context.Context, status models.TicketStatus) ([]*models.Ticket, error) {
	return f.findWhere(func(t *models.Ticket) bool { return t.Status == status })
}

func (f *fakeTicketRepo) FindByRaffleAndStatus(ctx context.Context, raffleID primitive.ObjectID, status models.TicketStatus) ([]*models.Ticket, error) {
	return f.findWhere(func(t *models.Ticket) bool { return t.RaffleID == raffleID && t.Status == status })
}

func (f *fakeTicketRepo) findWhere(match func(*models.Ticket) bool) ([]*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Ticket{}
	for _, t := range f.tickets {
		if match(t) {
			copied := *t
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (f *fakeTicketRepo) Reserve(ctx context.Context, raffleID primitive.ObjectID, number string, hold models.HoldInfo, reservedAt, expiresAt time.Time) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[ticketKey(raffleID, number)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	claimable := t.Status == models.TicketStatusAvailable || t.IsExpired(reservedAt)
	if !claimable {
		return nil, repositories.ErrNotFound
	}
	t.Status = models.TicketStatusReserved
	t.HolderName = hold.HolderName
	t.HolderContact = hold.HolderContact
	t.PaymentRef = hold.PaymentRef
	t.PayerBank = hold.PayerBank
	t.ReservedAt = reservedAt
	t.ExpiresAt = expiresAt
	t.UpdatedAt = reservedAt
	copied := *t
	return &copied, nil
}

func (f *fakeTicketRepo) MarkPaid(ctx context.Context, raffleID primitive.ObjectID, number string, paidAt time.Time) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[ticketKey(raffleID, number)]
	if !ok || t.Status != models.TicketStatusReserved {
		return nil, repositories.ErrNotFound
	}
	t.Status = models.TicketStatusPaid
	t.PaidAt = paidAt
	t.PaidConfirmed = true
	t.ExpiresAt = time.Time{}
	t.UpdatedAt = paidAt
	copied := *t
	return &copied, nil
}

func (f *fakeTicketRepo) Release(ctx context.Context, raffleID primitive.ObjectID, number string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[ticketKey(raffleID, number)]
	if !ok || t.Status != models.TicketStatusReserved {
		return nil, repositories.ErrNotFound
	}
	t.Status = models.TicketStatusAvailable
	t.ExpiresAt = time.Time{}
	t.UpdatedAt = time.Now()
	copied := *t
	return &copied, nil
}

func (f *fakeTicketRepo) ReleaseExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var released int64
	for _, t := range f.tickets {
		if t.IsExpired(cutoff) {
			t.Status = models.TicketStatusAvailable
			t.ExpiresAt = time.Time{}
			released++
		}
	}
	return released, nil
}

func (f *fakeTicketRepo) CountByStatus(ctx context.Context, raffleID primitive.ObjectID) (models.TicketCounts, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var counts models.TicketCounts
	for _, t := range f.tickets {
		if t.RaffleID != raffleID {
			continue
		}
		switch t.Status {
		case models.TicketStatusAvailable:
			counts.Available++
		case models.TicketStatusReserved:
			counts.Reserved++
		case models.TicketStatusPaid:
			counts.Paid++
		}
	}
	return counts, nil
}

func (f *fakeTicketRepo) DeleteByRaffle(ctx context.Context, raffleID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, t := range f.tickets {
		if t.RaffleID == raffleID {
			delete(f.tickets, key)
		}
	}
	return nil
}

// age backdates a ticket's expiry, simulating the passage of time
func (f *fakeTicketRepo) age(raffleID primitive.ObjectID, number string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tickets[ticketKey(raffleID, number)]; ok {
		t.ExpiresAt = time.Now().Add(-d)
	}
}

// fakeRaffleRepo is an in-memory RaffleRepository
type fakeRaffleRepo struct {
	mu      sync.Mutex
	raffles map[primitive.ObjectID]*models.Raffle
}

func newFakeRaffleRepo() *fakeRaffleRepo {
	return &fakeRaffleRepo{raffles: make(map[primitive.ObjectID]*models.Raffle)}
}

func (f *fakeRaffleRepo) Create(ctx context.Context, raffle *models.Raffle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raffle.ID = primitive.NewObjectID()
	raffle.CreatedAt = time.Now()
	raffle.UpdatedAt = time.Now()
	copied := *raffle
	f.raffles[raffle.ID] = &copied
	return nil
}

func (f *fakeRaffleRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raffle, ok := f.raffles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *raffle
	return &copied, nil
}

func (f *fakeRaffleRepo) FindAll(ctx context.Context) ([]*models.Raffle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Raffle{}
	for _, raffle := range f.raffles {
		copied := *raffle
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeRaffleRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raffle, ok := f.raffles[id]
	if !ok {
		return repositories.ErrNotFound
	}
	raffle.Active = active
	raffle.UpdatedAt = time.Now()
	return nil
}

func (f *fakeRaffleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.raffles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.raffles, id)
	return nil
}

// fakeAdminRepo is an in-memory AdminUserRepository
type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*models.AdminUser)}
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *models.AdminUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin.ID = primitive.NewObjectID()
	copied := *admin
	f.admins[admin.Email] = &copied
	return nil
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.admins[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, admin := range f.admins {
		if admin.ID == id {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// fakeNotifier records lifecycle notifications without sending anything
type fakeNotifier struct {
	mu             sync.Mutex
	holdsCreated   []string
	paymentsConfed []string
}

func (f *fakeNotifier) SendHoldCreated(ctx context.Context, ticket *models.Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holdsCreated = append(f.holdsCreated, ticket.Number)
}

func (f *fakeNotifier) SendPaymentConfirmed(ctx context.Context, ticket *models.Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentsConfed = append(f.paymentsConfed, ticket.Number)
}

func (f *fakeNotifier) GetFailed(ctx context.Context, page, limit int) ([]*models.Notification, error) {
	return []*models.Notification{}, nil
}
