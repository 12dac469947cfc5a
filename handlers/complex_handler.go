package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
)

func currentUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// requireComplex resolves the :complexId route param to a complex owned by
// the authenticated manager. Complexes of other managers are reported as
// not found rather than forbidden.
func requireComplex(c *fiber.Ctx) (*models.Complex, error) {
	complexID, err := uuid.Parse(c.Params("complexId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid complex id"})
	}

	var complejo models.Complex
	err = database.DB.First(&complejo, "id = ? AND owner_id = ?", complexID, currentUserID(c)).Error
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Complex not found"})
	}
	return &complejo, nil
}

type CreateComplexRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func CreateComplex(c *fiber.Ctx) error {
	var req CreateComplexRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	complejo := models.Complex{
		OwnerID: currentUserID(c),
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := database.DB.Create(&complejo).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create complex"})
	}
	return c.Status(fiber.StatusCreated).JSON(complejo)
}

func GetMyComplexes(c *fiber.Ctx) error {
	var complexes []models.Complex
	database.DB.
		Preload("Courts", "is_active = ?", true).
		Where("owner_id = ?", currentUserID(c)).
		Order("created_at asc").
		Find(&complexes)
	return c.JSON(complexes)
}

func GetComplex(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	database.DB.Preload("Courts.PriceRules").First(complejo, "id = ?", complejo.ID)
	return c.JSON(complejo)
}
