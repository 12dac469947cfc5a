package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lucasditoro/reservapp/handlers"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", handlers.RegisterManager)
	auth.Post("/login", handlers.LoginUser)
}
