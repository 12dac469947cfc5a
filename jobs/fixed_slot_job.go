package jobs

import (
	"errors"
	"log"

	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/services"
	"github.com/lucasditoro/reservapp/utils"
	"gorm.io/gorm"
)

// How far ahead concrete bookings are generated from recurring rules.
const materializeHorizonDays = 7

// MaterializeFixedSlots walks every active rule and creates the missing
// booking rows for its occurrences within the horizon. Runs daily and on
// boot; occurrences that already have a live booking are skipped.
func MaterializeFixedSlots() {
	log.Println("Running job: MaterializeFixedSlots...")

	var rules []models.FixedSlot
	if err := database.DB.Where("is_active = ?", true).Find(&rules).Error; err != nil {
		log.Printf("Error loading fixed slots: %v", err)
		return
	}

	created := 0
	for i := range rules {
		n, err := materializeRule(&rules[i])
		if err != nil {
			log.Printf("Error materializing fixed slot %s: %v", rules[i].ID, err)
			continue
		}
		created += n
	}

	if created > 0 {
		log.Printf("Materialized %d booking(s) from fixed slots.", created)
	}
}

func materializeRule(rule *models.FixedSlot) (int, error) {
	today := utils.Today()
	created := 0

	for offset := 0; offset <= materializeHorizonDays; offset++ {
		date := today.AddDate(0, 0, offset)
		if int(date.Weekday()) != rule.DayOfWeek || !rule.CoversDate(date) {
			continue
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			exists, err := services.HasOccurrenceBooking(tx, rule, date)
			if err != nil || exists {
				return err
			}
			var booking models.Booking
			if err := services.CreateBookingFromRule(tx, rule, date, &booking); err != nil {
				return err
			}
			created++
			return nil
		})
		if err != nil {
			// A unique-index hit means a manual booking beat the rule to
			// this occurrence; skip it and keep going.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return created, err
		}
	}
	return created, nil
}
