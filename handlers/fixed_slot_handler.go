package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/services"
	"github.com/lucasditoro/reservapp/utils"
	"gorm.io/gorm"
)

type CreateFixedSlotRequest struct {
	CourtID    string  `json:"court_id" validate:"required,uuid"`
	UserID     *string `json:"user_id,omitempty" validate:"omitempty,uuid"`
	ClientName string  `json:"client_name" validate:"required,min=2"`
	DayOfWeek  *int    `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime  string  `json:"start_time" validate:"required"`
	EndTime    string  `json:"end_time" validate:"required"`
	StartDate  string  `json:"start_date" validate:"required"`
	EndDate    *string `json:"end_date,omitempty"`

	// Price per occurrence, in pesos.
	Price int64  `json:"price" validate:"required,min=1"`
	Type  string `json:"type,omitempty" validate:"omitempty,oneof=CLIENTE ENTRENAMIENTO"`
}

// requireOwnedCourt resolves a court id from a request body to a court in
// one of the manager's complexes.
func requireOwnedCourt(c *fiber.Ctx, courtID string) (*models.Court, error) {
	var court models.Court
	err := database.DB.
		Joins("JOIN complexes ON complexes.id = courts.complex_id").
		Where("courts.id = ? AND complexes.owner_id = ?", courtID, currentUserID(c)).
		First(&court).Error
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Court not found"})
	}
	return &court, nil
}

func GetFixedSlots(c *fiber.Ctx) error {
	query := database.DB.
		Preload("Court").
		Preload("User").
		Joins("JOIN courts ON courts.id = fixed_slots.court_id").
		Joins("JOIN complexes ON complexes.id = courts.complex_id").
		Where("complexes.owner_id = ?", currentUserID(c))

	if complexID := c.Query("complexId"); complexID != "" {
		query = query.Where("complexes.id = ?", complexID)
	}

	var rules []models.FixedSlot
	query.Order("fixed_slots.day_of_week asc, fixed_slots.start_time asc").Find(&rules)
	return c.JSON(rules)
}

// CreateFixedSlot validates a recurring rule through the same conflict
// pipeline as ad-hoc bookings and inserts it. Concrete bookings are
// materialized afterwards by the fixed-slot job.
func CreateFixedSlot(c *fiber.Ctx) error {
	var req CreateFixedSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	court, err := requireOwnedCourt(c, req.CourtID)
	if court == nil {
		return err
	}

	start, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	end, err := utils.ParseClock(req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if start >= end {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time must be before end_time"})
	}

	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	rule := models.FixedSlot{
		CourtID:    court.ID,
		ClientName: req.ClientName,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  utils.FormatClock(start),
		EndTime:    utils.FormatClock(end),
		StartDate:  startDate,
		Price:      req.Price * 100,
		Type:       models.FixedSlotCliente,
		IsActive:   true,
	}
	if req.Type != "" {
		rule.Type = req.Type
	}
	if req.EndDate != nil {
		endDate, err := utils.ParseDate(*req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if endDate.Before(startDate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must not be before start_date"})
		}
		rule.EndDate = &endDate
	}
	if req.UserID != nil {
		id, _ := uuid.Parse(*req.UserID)
		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		rule.UserID = &id
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		conflict, err := services.FindRuleConflict(tx, court, &rule, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return newHTTPError(fiber.StatusConflict, conflict.Message())
		}
		return tx.Create(&rule).Error
	})
	if err != nil {
		return bookingWriteError(c, err)
	}

	database.DB.Preload("Court").Preload("User").First(&rule, "id = ?", rule.ID)
	return c.Status(fiber.StatusCreated).JSON(rule)
}

// DeleteFixedSlot removes a rule together with all of its future bookings
// in one transaction. Past occurrences stay for the ledger and history.
func DeleteFixedSlot(c *fiber.Ctx) error {
	ruleID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fixed slot id"})
	}

	var rule models.FixedSlot
	err = database.DB.
		Joins("JOIN courts ON courts.id = fixed_slots.court_id").
		Joins("JOIN complexes ON complexes.id = courts.complex_id").
		Where("fixed_slots.id = ? AND complexes.owner_id = ?", ruleID, currentUserID(c)).
		First(&rule).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fixed slot not found"})
	}

	today := utils.Today()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		futureBookings := tx.Model(&models.Booking{}).Select("id").
			Where("fixed_slot_id = ? AND date >= ?", rule.ID, today)

		// Ledger entries for deleted players keep their amount but lose
		// the player reference; the cash register never loses money.
		err := tx.Model(&models.Transaction{}).
			Where("booking_player_id IN (?)",
				tx.Model(&models.BookingPlayer{}).Select("id").Where("booking_id IN (?)", futureBookings),
			).
			Update("booking_player_id", nil).Error
		if err != nil {
			return err
		}

		err = tx.Where("booking_id IN (?)", futureBookings).Delete(&models.BookingPlayer{}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("fixed_slot_id = ? AND date >= ?", rule.ID, today).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		// Past occurrences keep their rule reference so they stay
		// recognizable as abono bookings in history.
		return tx.Delete(&rule).Error
	})
	if err != nil {
		return bookingWriteError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Abono eliminado junto con sus reservas futuras"})
}
