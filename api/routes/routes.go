package routes

import (
	"github.com/apprifas/raffle-backend/internal/config"
	"github.com/apprifas/raffle-backend/internal/handlers"
	"github.com/apprifas/raffle-backend/internal/middleware"
	adminjwt "github.com/apprifas/raffle-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler   *handlers.AuthHandler
	RaffleHandler *handlers.RaffleHandler
	TicketHandler *handlers.TicketHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, tokenService *adminjwt.TokenService, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	// Public routes: browsing raffles and claiming numbers
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)

		raffles := public.Group("/raffles")
		{
			raffles.GET("", deps.RaffleHandler.ListRaffles)
			raffles.GET("/:id", deps.RaffleHandler.GetRaffle)
			raffles.GET("/:id/numbers/available", deps.TicketHandler.GetAvailableNumbers)
			raffles.GET("/:id/tickets/paid", deps.TicketHandler.GetPaidTickets)
			raffles.POST("/:id/tickets/:number/claim", deps.TicketHandler.ClaimNumber)
		}
	}

	// Operator routes: raffle lifecycle and hold review
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(tokenService))
	{
		raffles := protected.Group("/raffles")
		{
			raffles.POST("", deps.RaffleHandler.CreateRaffle)
			raffles.POST("/:id/close", deps.RaffleHandler.CloseRaffle)
			raffles.DELETE("/:id", deps.RaffleHandler.DeleteRaffle)
			raffles.POST("/:id/tickets/:number/confirm", deps.TicketHandler.ConfirmPayment)
			raffles.POST("/:id/tickets/:number/reject", deps.TicketHandler.RejectHold)
			raffles.GET("/:id/tickets/reserved", deps.TicketHandler.GetReservedTickets)
		}

		protected.GET("/holds/pending", deps.TicketHandler.GetPendingHolds)
	}

	return router
}
