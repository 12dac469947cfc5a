package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
)

type PriceRuleRequest struct {
	StartHour int `json:"start_hour" validate:"min=0,max=23"`
	EndHour   int `json:"end_hour" validate:"required,min=1,max=24"`

	// Amounts in pesos; persisted as cents.
	Price         int64 `json:"price" validate:"required,min=1"`
	DepositAmount int64 `json:"deposit_amount" validate:"min=0"`
}

func GetPriceRules(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	court, err := requireCourt(c, complejo)
	if court == nil {
		return err
	}

	var rules []models.PriceRule
	database.DB.Where("court_id = ?", court.ID).Order("start_hour asc").Find(&rules)
	return c.JSON(rules)
}

func CreatePriceRule(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	court, err := requireCourt(c, complejo)
	if court == nil {
		return err
	}

	var req PriceRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.StartHour >= req.EndHour {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_hour must be before end_hour"})
	}
	if req.DepositAmount > req.Price {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "deposit_amount cannot exceed price"})
	}

	rule := models.PriceRule{
		CourtID:       court.ID,
		StartHour:     req.StartHour,
		EndHour:       req.EndHour,
		Price:         req.Price * 100,
		DepositAmount: req.DepositAmount * 100,
	}
	if err := database.DB.Create(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create price rule"})
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func DeletePriceRule(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	court, err := requireCourt(c, complejo)
	if court == nil {
		return err
	}

	ruleID, err := uuid.Parse(c.Params("ruleId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid price rule id"})
	}

	result := database.DB.Delete(&models.PriceRule{}, "id = ? AND court_id = ?", ruleID, court.ID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete price rule"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Price rule not found"})
	}
	return c.JSON(fiber.Map{"message": "Price rule deleted"})
}
