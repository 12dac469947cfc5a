package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
)

type CourtRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	Sport        string `json:"sport" validate:"omitempty,oneof=PADEL FUTBOL TENIS BASQUET"`
	SlotDuration int    `json:"slot_duration" validate:"omitempty,min=30,max=240"`
}

// requireCourt resolves :courtId within an already-authorized complex.
func requireCourt(c *fiber.Ctx, complejo *models.Complex) (*models.Court, error) {
	courtID, err := uuid.Parse(c.Params("courtId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid court id"})
	}
	var court models.Court
	if err := database.DB.First(&court, "id = ? AND complex_id = ?", courtID, complejo.ID).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Court not found"})
	}
	return &court, nil
}

func GetCourts(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	var courts []models.Court
	database.DB.
		Preload("PriceRules").
		Where("complex_id = ?", complejo.ID).
		Order("name asc").
		Find(&courts)
	return c.JSON(courts)
}

func CreateCourt(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}

	var req CourtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	court := models.Court{
		ComplexID:    complejo.ID,
		Name:         req.Name,
		Sport:        "PADEL",
		SlotDuration: 90,
		IsActive:     true,
	}
	if req.Sport != "" {
		court.Sport = req.Sport
	}
	if req.SlotDuration != 0 {
		court.SlotDuration = req.SlotDuration
	}

	if err := database.DB.Create(&court).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create court"})
	}
	return c.Status(fiber.StatusCreated).JSON(court)
}

func UpdateCourt(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	court, err := requireCourt(c, complejo)
	if court == nil {
		return err
	}

	var req CourtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	court.Name = req.Name
	if req.Sport != "" {
		court.Sport = req.Sport
	}
	if req.SlotDuration != 0 {
		court.SlotDuration = req.SlotDuration
	}
	if err := database.DB.Save(court).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update court"})
	}
	return c.JSON(court)
}

// DeleteCourt deactivates a court. Rows are kept so historical bookings
// and ledger entries stay consistent.
func DeleteCourt(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	court, err := requireCourt(c, complejo)
	if court == nil {
		return err
	}

	court.IsActive = false
	if err := database.DB.Save(court).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete court"})
	}
	return c.JSON(fiber.Map{"message": "Court deactivated"})
}
