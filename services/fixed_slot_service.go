package services

import (
	"time"

	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/utils"
	"gorm.io/gorm"
)

// CreateBookingFromRule writes the concrete booking for one occurrence of
// a recurring rule, plus its player row, into out. Price and window come
// from the rule; no price lookup and no overlap check run here, the rule
// was validated against all three sources when it was created.
func CreateBookingFromRule(tx *gorm.DB, rule *models.FixedSlot, date time.Time, out *models.Booking) error {
	code, err := utils.GenerateUniqueBookingCode(tx)
	if err != nil {
		return err
	}

	*out = models.Booking{
		Code:             code,
		CourtID:          rule.CourtID,
		Date:             date,
		Time:             rule.StartTime,
		Status:           models.BookingConfirmado,
		TotalPrice:       rule.Price,
		DepositPaid:      0,
		RemainingBalance: rule.Price,
		GuestName:        &rule.ClientName,
		UserID:           rule.UserID,
		FixedSlotID:      &rule.ID,
	}
	if err := tx.Create(out).Error; err != nil {
		return err
	}

	player := models.BookingPlayer{
		BookingID:     out.ID,
		Name:          rule.ClientName,
		AmountPaid:    0,
		PaymentStatus: models.PaymentPendiente,
	}
	return tx.Create(&player).Error
}

// HasOccurrenceBooking reports whether a live booking for the rule already
// exists on the given date.
func HasOccurrenceBooking(tx *gorm.DB, rule *models.FixedSlot, date time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("fixed_slot_id = ? AND date = ? AND status <> ?", rule.ID, date, models.BookingCancelado).
		Count(&count).Error
	return count > 0, err
}
