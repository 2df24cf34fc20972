package utils

import (
	"fmt"
	"time"

	"github.com/apprifas/raffle-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NumberWidth returns the display width for ticket numbers in a pool of the
// given size: the digit count of the size itself, so a pool of 99 renders
// "00".."99" and a pool of 9 renders "0".."9".
func NumberWidth(size int) int {
	width := 1
	for size >= 10 {
		size /= 10
		width++
	}
	return width
}

// FormatTicketNumber zero-pads n to the given width
func FormatTicketNumber(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// GeneratePool materializes the full ticket pool for a raffle: size+1 tickets
// numbered 0..size inclusive, all available, uniformly zero-padded. Pure
// function of its inputs; the caller is responsible for inserting the records
// atomically with the raffle itself.
func GeneratePool(raffleID primitive.ObjectID, size int, now time.Time) []*models.Ticket {
	width := NumberWidth(size)
	tickets := make([]*models.Ticket, 0, size+1)
	for i := 0; i <= size; i++ {
		tickets = append(tickets, &models.Ticket{
			RaffleID:  raffleID,
			Number:    FormatTicketNumber(i, width),
			Status:    models.TicketStatusAvailable,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return tickets
}
