package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/repositories"
	"github.com/apprifas/raffle-backend/pkg/whatsapp"
)

// NotificationService sends outbound WhatsApp messages for ticket lifecycle
// events and records every attempt. Delivery is best-effort: a failure is
// logged and recorded, never surfaced to the transition that triggered it.
type NotificationService interface {
	SendHoldCreated(ctx context.Context, ticket *models.Ticket)
	SendPaymentConfirmed(ctx context.Context, ticket *models.Ticket)
	GetFailed(ctx context.Context, page, limit int) ([]*models.Notification, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	gateway          whatsapp.Gateway
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, gateway whatsapp.Gateway) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		gateway:          gateway,
	}
}

// SendHoldCreated notifies the buyer that their number is reserved and until
// when the hold is valid
func (s *notificationService) SendHoldCreated(ctx context.Context, ticket *models.Ticket) {
	content := fmt.Sprintf(
		"Hola %s, tu número %s quedó reservado. Tienes hasta %s para completar el pago (ref %s).",
		ticket.HolderName, ticket.Number,
		ticket.ExpiresAt.Format("02/01/2006 15:04"), ticket.PaymentRef,
	)
	s.send(ctx, ticket, models.TemplateHoldCreated, content)
}

// SendPaymentConfirmed notifies the buyer that the operator verified their
// payment
func (s *notificationService) SendPaymentConfirmed(ctx context.Context, ticket *models.Ticket) {
	content := fmt.Sprintf(
		"Hola %s, tu pago (ref %s) fue confirmado. El número %s es tuyo. ¡Suerte!",
		ticket.HolderName, ticket.PaymentRef, ticket.Number,
	)
	s.send(ctx, ticket, models.TemplatePaymentConfirmed, content)
}

func (s *notificationService) send(ctx context.Context, ticket *models.Ticket, template, content string) {
	notification := &models.Notification{
		Recipient: ticket.HolderContact,
		Template:  template,
		Content:   content,
		RaffleID:  ticket.RaffleID,
		Number:    ticket.Number,
	}

	messageID, err := s.gateway.SendMessage(ticket.HolderContact, content)
	if err != nil {
		log.Printf("[WARN] failed to send %s notification to %s: %v", template, ticket.HolderContact, err)
		notification.Status = models.NotificationStatusFailed
		notification.Error = err.Error()
	} else {
		notification.Status = models.NotificationStatusSent
		notification.MessageID = messageID
		notification.SentAt = time.Now()
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		log.Printf("[WARN] failed to record %s notification: %v", template, err)
	}
}

// GetFailed lists failed notification attempts for operator follow-up
func (s *notificationService) GetFailed(ctx context.Context, page, limit int) ([]*models.Notification, error) {
	return s.notificationRepo.FindByStatus(ctx, models.NotificationStatusFailed, page, limit)
}
