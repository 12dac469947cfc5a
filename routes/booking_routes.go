package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lucasditoro/reservapp/handlers"
	"github.com/lucasditoro/reservapp/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/complex/:complexId/bookings", middleware.Protected(), middleware.ManagerRequired())

	api.Get("", handlers.GetBookings)
	api.Post("", handlers.CreateBooking)
	api.Patch("", handlers.UpdateBooking)

	players := api.Group("/:bookingId/players")
	players.Get("", handlers.GetBookingPlayers)
	players.Post("", handlers.AddBookingPlayer)
}
