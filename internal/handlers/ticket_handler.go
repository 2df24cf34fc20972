package handlers

import (
	"net/http"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// TicketHandler handles ticket-related HTTP requests
type TicketHandler struct {
	ticketService services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
	}
}

// ClaimNumber handles POST /raffles/:id/tickets/:number/claim
type ClaimRequest struct {
	HolderName    string `json:"holderName" binding:"required"`
	HolderContact string `json:"holderContact" binding:"required"`
	PaymentRef    string `json:"paymentRef"`
	PayerBank     string `json:"payerBank"`
}

func (h *TicketHandler) ClaimNumber(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var request ClaimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := h.ticketService.Claim(c.Request.Context(), id, c.Param("number"), models.HoldInfo{
		HolderName:    request.HolderName,
		HolderContact: request.HolderContact,
		PaymentRef:    request.PaymentRef,
		PayerBank:     request.PayerBank,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Number reserved successfully", "ticket": ticket})
}

// ConfirmPayment handles POST /raffles/:id/tickets/:number/confirm
func (h *TicketHandler) ConfirmPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ticket, err := h.ticketService.ConfirmPayment(c.Request.Context(), id, c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment confirmed", "ticket": ticket})
}

// RejectHold handles POST /raffles/:id/tickets/:number/reject
func (h *TicketHandler) RejectHold(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	ticket, err := h.ticketService.RejectHold(c.Request.Context(), id, c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hold rejected", "ticket": ticket})
}

// GetAvailableNumbers handles GET /raffles/:id/numbers/available
func (h *TicketHandler) GetAvailableNumbers(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	numbers, err := h.ticketService.AvailableNumbers(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numbers": numbers})
}

// GetPendingHolds handles GET /holds/pending
func (h *TicketHandler) GetPendingHolds(c *gin.Context) {
	tickets, err := h.ticketService.PendingHolds(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetReservedTickets handles GET /raffles/:id/tickets/reserved
func (h *TicketHandler) GetReservedTickets(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	tickets, err := h.ticketService.ReservedByRaffle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetPaidTickets handles GET /raffles/:id/tickets/paid
func (h *TicketHandler) GetPaidTickets(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	tickets, err := h.ticketService.PaidByRaffle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}
