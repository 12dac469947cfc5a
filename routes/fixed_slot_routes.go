package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lucasditoro/reservapp/handlers"
	"github.com/lucasditoro/reservapp/middleware"
)

func FixedSlotRoutes(app *fiber.App) {
	api := app.Group("/api/fixed-slots", middleware.Protected(), middleware.ManagerRequired())

	api.Get("", handlers.GetFixedSlots)
	api.Post("", handlers.CreateFixedSlot)
	api.Delete("/:id", handlers.DeleteFixedSlot)
}
