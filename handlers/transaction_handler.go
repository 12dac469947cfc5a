package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/utils"
)

type CreateTransactionRequest struct {
	Type        string `json:"type" validate:"required,oneof=INGRESO EGRESO"`
	Description string `json:"description" validate:"required,min=2"`

	// Amount in pesos, always positive.
	Amount        int64   `json:"amount" validate:"required,min=1"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA TARJETA"`
}

// GetTransactions lists the cash register for a day (?date=) or date
// range, newest first.
func GetTransactions(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}

	query := database.DB.Where("complex_id = ?", complejo.ID)
	if date := c.Query("date"); date != "" {
		day, err := utils.ParseDate(date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		// The register day runs midnight to midnight local time.
		from := utils.LocalInstant(day, 0)
		query = query.Where("created_at >= ? AND created_at < ?", from, from.Add(24*time.Hour))
	}

	var transactions []models.Transaction
	query.Order("created_at desc").Find(&transactions)

	var income, expense int64
	for _, t := range transactions {
		if t.Type == models.TransactionIngreso {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}

	return c.JSON(fiber.Map{
		"transactions":  transactions,
		"total_income":  income,
		"total_expense": expense,
		"balance":       income - expense,
	})
}

// CreateTransaction records a manual cash-register movement, e.g. a
// kiosk sale or a maintenance expense.
func CreateTransaction(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transaction := models.Transaction{
		ComplexID:     complejo.ID,
		Type:          req.Type,
		Amount:        req.Amount * 100,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}
	if err := database.DB.Create(&transaction).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create transaction"})
	}
	return c.Status(fiber.StatusCreated).JSON(transaction)
}
