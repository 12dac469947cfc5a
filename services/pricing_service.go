package services

import (
	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/models"
	"gorm.io/gorm"
)

// SelectPriceRule picks the rule whose [StartHour, EndHour) range contains
// the start minute. Returns nil when no rule applies.
func SelectPriceRule(rules []models.PriceRule, startMinutes int) *models.PriceRule {
	for i := range rules {
		if startMinutes >= rules[i].StartHour*60 && startMinutes < rules[i].EndHour*60 {
			return &rules[i]
		}
	}
	return nil
}

// FindPriceRule loads a court's price rules and selects the one applicable
// to a booking starting at startMinutes.
func FindPriceRule(tx *gorm.DB, courtID uuid.UUID, startMinutes int) (*models.PriceRule, error) {
	var rules []models.PriceRule
	if err := tx.Where("court_id = ?", courtID).Order("start_hour asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return SelectPriceRule(rules, startMinutes), nil
}
