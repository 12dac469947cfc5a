package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
	"gorm.io/gorm"
)

type AddPlayerRequest struct {
	Name string `json:"name" validate:"required,min=1"`

	// Amount in pesos.
	AmountPaid    int64   `json:"amount_paid" validate:"min=0"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,oneof=EFECTIVO TRANSFERENCIA TARJETA"`
}

func requireBooking(c *fiber.Ctx, complejo *models.Complex) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.
		Joins("JOIN courts ON courts.id = bookings.court_id").
		Where("courts.complex_id = ? AND bookings.id = ?", complejo.ID, c.Params("bookingId")).
		First(&booking).Error
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	return &booking, nil
}

func GetBookingPlayers(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	booking, err := requireBooking(c, complejo)
	if booking == nil {
		return err
	}

	var players []models.BookingPlayer
	database.DB.Where("booking_id = ?", booking.ID).Order("created_at asc").Find(&players)
	return c.JSON(players)
}

// AddBookingPlayer registers one participant's payment on a booking. The
// paid amount lands as an INGRESO ledger entry in the same transaction;
// the booking's total price is never touched.
func AddBookingPlayer(c *fiber.Ctx) error {
	complejo, err := requireComplex(c)
	if complejo == nil {
		return err
	}
	booking, err := requireBooking(c, complejo)
	if booking == nil {
		return err
	}
	if booking.Status == models.BookingCancelado {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "La reserva está cancelada"})
	}

	var req AddPlayerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	amount := req.AmountPaid * 100
	if amount > 0 && req.PaymentMethod == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payment_method is required when amount_paid > 0"})
	}

	var player models.BookingPlayer
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		player = models.BookingPlayer{
			BookingID:     booking.ID,
			Name:          req.Name,
			AmountPaid:    amount,
			PaymentStatus: models.PaymentPendiente,
			PaymentMethod: req.PaymentMethod,
		}
		if amount > 0 {
			player.PaymentStatus = models.PaymentPagado
		}
		if err := tx.Create(&player).Error; err != nil {
			return err
		}

		if amount > 0 {
			ledger := models.Transaction{
				ComplexID:       complejo.ID,
				Type:            models.TransactionIngreso,
				Amount:          amount,
				Description:     "Pago reserva " + booking.Code,
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

	return c.Status(fiber.StatusCreated).JSON(player)
}
