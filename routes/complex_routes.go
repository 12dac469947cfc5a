package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lucasditoro/reservapp/handlers"
	"github.com/lucasditoro/reservapp/middleware"
)

func ComplexRoutes(app *fiber.App) {
	api := app.Group("/api/complex", middleware.Protected(), middleware.ManagerRequired())

	api.Get("", handlers.GetMyComplexes)
	api.Post("", handlers.CreateComplex)
	api.Get("/:complexId", handlers.GetComplex)

	courts := api.Group("/:complexId/courts")
	courts.Get("", handlers.GetCourts)
	courts.Post("", handlers.CreateCourt)
	courts.Put("/:courtId", handlers.UpdateCourt)
	courts.Delete("/:courtId", handlers.DeleteCourt)

	prices := courts.Group("/:courtId/price-rules")
	prices.Get("", handlers.GetPriceRules)
	prices.Post("", handlers.CreatePriceRule)
	prices.Delete("/:ruleId", handlers.DeletePriceRule)

	transactions := api.Group("/:complexId/transactions")
	transactions.Get("", handlers.GetTransactions)
	transactions.Post("", handlers.CreateTransaction)
}
