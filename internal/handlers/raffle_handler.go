package handlers

import (
	"net/http"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"github.com/apprifas/raffle-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// RaffleHandler handles raffle-related HTTP requests
type RaffleHandler struct {
	raffleService services.RaffleService
}

// NewRaffleHandler creates a new RaffleHandler
func NewRaffleHandler(raffleService services.RaffleService) *RaffleHandler {
	return &RaffleHandler{
		raffleService: raffleService,
	}
}

// ListRaffles handles GET /raffles
func (h *RaffleHandler) ListRaffles(c *gin.Context) {
	summaries, err := h.raffleService.ListRaffles(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetRaffle handles GET /raffles/:id
func (h *RaffleHandler) GetRaffle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	summary, err := h.raffleService.GetRaffle(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateRaffle handles POST /raffles
type CreateRaffleRequest struct {
	Name        string             `json:"name" binding:"required"`
	TicketPrice float64            `json:"ticketPrice" binding:"required"`
	Currency    string             `json:"currency" binding:"required"`
	PoolSize    int                `json:"poolSize" binding:"required"`
	DrawDate    string             `json:"drawDate" binding:"required"`
	PaymentInfo models.PaymentInfo `json:"paymentInfo"`
	ImageURL    string             `json:"imageUrl"`
}

func (h *RaffleHandler) CreateRaffle(c *gin.Context) {
	var request CreateRaffleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	drawDate, err := time.Parse("2006-01-02", request.DrawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw date format (YYYY-MM-DD)"})
		return
	}

	raffle, err := h.raffleService.CreateRaffle(c.Request.Context(), services.CreateRaffleInput{
		Name:        request.Name,
		TicketPrice: request.TicketPrice,
		Currency:    models.Currency(request.Currency),
		PoolSize:    request.PoolSize,
		DrawDate:    drawDate,
		PaymentInfo: request.PaymentInfo,
		ImageURL:    request.ImageURL,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Raffle created successfully", "raffleId": raffle.ID.Hex()})
}

// CloseRaffle handles POST /raffles/:id/close
func (h *RaffleHandler) CloseRaffle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.raffleService.CloseRaffle(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Raffle closed"})
}

// DeleteRaffle handles DELETE /raffles/:id
func (h *RaffleHandler) DeleteRaffle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.raffleService.DeleteRaffle(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Raffle deleted"})
}
