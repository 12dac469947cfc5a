package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/services"
	"github.com/lucasditoro/reservapp/utils"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	CourtID string `json:"court_id" validate:"required,uuid"`
	Date    string `json:"date" validate:"required"`
	Time    string `json:"time,omitempty"`

	GuestName  *string `json:"guest_name,omitempty"`
	GuestPhone *string `json:"guest_phone,omitempty"`
	UserID     *string `json:"user_id,omitempty" validate:"omitempty,uuid"`

	Status string `json:"status,omitempty" validate:"omitempty,oneof=PENDIENTE CONFIRMADO"`

	// Amount already paid, in pesos.
	AmountPaid    int64   `json:"amount_paid,omitempty" validate:"min=0"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA TARJETA"`

	// Blocked-slot variant.
	IsBlockedSlot bool   `json:"is_blocked_slot,omitempty"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
	Reason        string `json:"reason,omitempty"`

	// Fixed-slot materialization variant.
	FixedSlotID *string `json:"fixed_slot_id,omitempty" validate:"omitempty,uuid"`
}

// GetBookings returns the schedule for one day (?date=), a range
// (?startDate=&endDate=) or the next confirmed bookings (?upcoming=true).
func GetBookings(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}

	if c.Query("upcoming") == "true" {
		return getUpcomingBookings(c, complejo)
	}

	var from, to string
	if date := c.Query("date"); date != "" {
		from, to = date, date
	} else {
		from, to = c.Query("startDate"), c.Query("endDate")
	}
	if from == "" || to == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date or startDate/endDate is required"})
	}

	fromDate, err1 := utils.ParseDate(from)
	toDate, err2 := utils.ParseDate(to)
	if err1 != nil || err2 != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	var bookings []models.Booking
	database.DB.
		Preload("Court").
		Preload("User").
		Preload("Players").
		Joins("JOIN courts ON courts.id = bookings.court_id").
		Where("courts.complex_id = ? AND bookings.date BETWEEN ? AND ?", complejo.ID, fromDate, toDate).
		Order("bookings.date asc, bookings.time asc").
		Find(&bookings)

	var blocked []models.BlockedSlot
	database.DB.
		Preload("Court").
		Joins("JOIN courts ON courts.id = blocked_slots.court_id").
		Where("courts.complex_id = ? AND blocked_slots.date BETWEEN ? AND ?", complejo.ID, fromDate, toDate).
		Order("blocked_slots.date asc, blocked_slots.start_time asc").
		Find(&blocked)

	return c.JSON(fiber.Map{"bookings": bookings, "blocked_slots": blocked})
}

func getUpcomingBookings(c *fiber.Ctx, complejo *models.Complex) error {
	now := utils.Today()
	nowClock := utils.FormatClock(utils.NowMinutes())

	var bookings []models.Booking
	database.DB.
		Preload("Court").
		Preload("User").
		Joins("JOIN courts ON courts.id = bookings.court_id").
		Where("courts.complex_id = ? AND bookings.status = ?", complejo.ID, models.BookingConfirmado).
		Where("bookings.date > ? OR (bookings.date = ? AND bookings.time >= ?)", now, now, nowClock).
		Order("bookings.date asc, bookings.time asc").
		Limit(10).
		Find(&bookings)

	return c.JSON(fiber.Map{"bookings": bookings})
}

// CreateBooking handles the three POST shapes: an ad-hoc booking, a
// maintenance block (is_blocked_slot) and the materialization of a
// fixed-slot occurrence (fixed_slot_id).
func CreateBooking(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var court models.Court
	if err := database.DB.First(&court, "id = ? AND complex_id = ?", req.CourtID, complejo.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Court not found"})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.IsBlockedSlot {
		return createBlockedSlot(c, &court, date, &req)
	}
	if req.FixedSlotID != nil {
		return materializeFixedSlot(c, &court, date, *req.FixedSlotID)
	}
	return createBooking(c, complejo, &court, date, &req)
}

func createBooking(c *fiber.Ctx, complejo *models.Complex, court *models.Court, date time.Time, req *CreateBookingRequest) error {
	if req.Time == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "time is required"})
	}
	if req.GuestName == nil && req.UserID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "guest_name or user_id is required"})
	}

	start, err := utils.ParseClock(req.Time)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if utils.IsPast(date, start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se pueden crear reservas en el pasado"})
	}

	var userID *uuid.UUID
	if req.UserID != nil {
		id, _ := uuid.Parse(*req.UserID)
		var user models.User
		if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		userID = &id
	}

	status := models.BookingPendiente
	if req.Status != "" {
		status = req.Status
	}

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		rule, err := services.FindPriceRule(tx, court.ID, start)
		if err != nil {
			return err
		}
		if rule == nil {
			return newHTTPError(fiber.StatusBadRequest, "No hay precio configurado para ese horario")
		}

		end := start + court.SlotDuration
		conflict, err := services.FindConflict(tx, court, date, start, end, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return newHTTPError(fiber.StatusConflict, conflict.Message())
		}

		code, err := utils.GenerateUniqueBookingCode(tx)
		if err != nil {
			return err
		}

		depositPaid := req.AmountPaid * 100
		booking = models.Booking{
			Code:             code,
			CourtID:          court.ID,
			Date:             date,
			Time:             utils.FormatClock(start),
			Status:           status,
			TotalPrice:       rule.Price,
			DepositPaid:      depositPaid,
			RemainingBalance: rule.Price - depositPaid,
			GuestName:        req.GuestName,
			GuestPhone:       req.GuestPhone,
			UserID:           userID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		player := models.BookingPlayer{
			BookingID:     booking.ID,
			Name:          booking.DisplayName(),
			AmountPaid:    depositPaid,
			PaymentStatus: models.PaymentPendiente,
			PaymentMethod: req.PaymentMethod,
		}
		if depositPaid > 0 {
			player.PaymentStatus = models.PaymentPagado
		}
		if err := tx.Create(&player).Error; err != nil {
			return err
		}

		if depositPaid > 0 && req.PaymentMethod != nil {
			ledger := models.Transaction{
				ComplexID:       complejo.ID,
				Type:            models.TransactionIngreso,
				Amount:          depositPaid,
				Description:     "Seña reserva " + booking.Code,
				PaymentMethod:   req.PaymentMethod,
				BookingPlayerID: &player.ID,
			}
			if err := tx.Create(&ledger).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return bookingWriteError(c, err)
	}

	database.DB.Preload("Court").Preload("User").Preload("Players").First(&booking, "id = ?", booking.ID)
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func createBlockedSlot(c *fiber.Ctx, court *models.Court, date time.Time, req *CreateBookingRequest) error {
	if req.StartTime == "" || req.EndTime == "" || req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time, end_time and reason are required"})
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

	var blocked models.BlockedSlot
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		conflict, err := services.FindConflict(tx, court, date, start, end, nil)
		if err != nil {
			return err
		}
		if conflict != nil {
			return newHTTPError(fiber.StatusConflict, conflict.Message())
		}

		blocked = models.BlockedSlot{
			CourtID:   court.ID,
			Date:      date,
			StartTime: utils.FormatClock(start),
			EndTime:   utils.FormatClock(end),
			Reason:    req.Reason,
		}
		return tx.Create(&blocked).Error
	})
	if err != nil {
		return bookingWriteError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(blocked)
}

// materializeFixedSlot creates the concrete booking for one occurrence of
// a rule. Price comes from the rule and the overlap check is skipped: the
// rule's window was validated when the rule was created.
func materializeFixedSlot(c *fiber.Ctx, court *models.Court, date time.Time, fixedSlotID string) error {
	var rule models.FixedSlot
	if err := database.DB.First(&rule, "id = ? AND court_id = ?", fixedSlotID, court.ID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fixed slot not found"})
	}
	if int(date.Weekday()) != rule.DayOfWeek || !rule.CoversDate(date) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La fecha no corresponde al abono"})
	}
	if start, err := utils.ParseClock(rule.StartTime); err == nil && utils.IsPast(date, start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No se pueden crear reservas en el pasado"})
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return services.CreateBookingFromRule(tx, &rule, date, &booking)
	})
	if err != nil {
		return bookingWriteError(c, err)
	}

	database.DB.Preload("Court").Preload("User").Preload("Players").First(&booking, "id = ?", booking.ID)
	return c.Status(fiber.StatusCreated).JSON(booking)
}

// structuralFields can never change after creation through PATCH.
var structuralFields = []string{"court_id", "time", "date", "total_price"}

type UpdateBookingRequest struct {
	BookingID   string  `json:"booking_id" validate:"required,uuid"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=PENDIENTE CONFIRMADO COMPLETADO CANCELADO"`
	DepositPaid *int64  `json:"deposit_paid,omitempty" validate:"omitempty,min=0"`
	GuestName   *string `json:"guest_name,omitempty"`
	GuestPhone  *string `json:"guest_phone,omitempty"`
}

func UpdateBooking(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}

	// The raw key set decides the abono immutability check before any
	// field is interpreted.
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	var req UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	err = database.DB.
		Joins("JOIN courts ON courts.id = bookings.court_id").
		Where("courts.complex_id = ? AND bookings.id = ?", complejo.ID, req.BookingID).
		First(&booking).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	if booking.FixedSlotID != nil {
		for _, field := range structuralFields {
			if _, present := raw[field]; present {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"error": "Las reservas de un abono fijo no pueden cambiar de cancha, horario ni precio",
				})
			}
		}
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.DepositPaid != nil {
		deposit := *req.DepositPaid * 100
		updates["deposit_paid"] = deposit
		updates["remaining_balance"] = booking.TotalPrice - deposit
	}
	if req.GuestName != nil {
		updates["guest_name"] = *req.GuestName
	}
	if req.GuestPhone != nil {
		updates["guest_phone"] = *req.GuestPhone
	}
	// A payload that reduces to nothing after stripping is a no-op, not
	// an error: the booking is returned unchanged.
	if len(updates) > 0 {
		if err := database.DB.Model(&booking).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
		}
	}

	database.DB.Preload("Court").Preload("User").Preload("Players").First(&booking, "id = ?", booking.ID)
	return c.JSON(booking)
}

// bookingWriteError maps transaction failures to responses: domain errors
// keep their status, a unique-index violation means another request won
// the slot, anything else is logged as a 500.
func bookingWriteError(c *fiber.Ctx, err error) error {
	var herr *httpError
	if errors.As(err, &herr) {
		return c.Status(herr.code).JSON(fiber.Map{"error": herr.message})
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "El horario ya está reservado"})
	}
	log.Printf("🔥 booking write failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
