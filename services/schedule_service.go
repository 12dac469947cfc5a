package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Conflict sources, in the order they are checked.
const (
	ConflictBooking   = "booking"
	ConflictBlocked   = "blocked_slot"
	ConflictFixedSlot = "fixed_slot"
)

// Conflict describes the entity occupying a requested window.
type Conflict struct {
	Source string
	Label  string
	Start  int
	End    int
}

// Message renders the client-facing explanation of the conflict.
func (c *Conflict) Message() string {
	window := fmt.Sprintf("%s-%s", utils.FormatClock(c.Start), utils.FormatClock(c.End))
	switch c.Source {
	case ConflictBlocked:
		return fmt.Sprintf("La cancha está bloqueada de %s: %s", window, c.Label)
	case ConflictFixedSlot:
		return fmt.Sprintf("El horario %s está ocupado por un abono fijo", window)
	default:
		return fmt.Sprintf("El horario %s ya está reservado por %s", window, c.Label)
	}
}

// Overlaps reports whether two half-open minute ranges intersect. An
// interval ending exactly when another starts does not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// FindConflict checks a proposed [start, end) window on a court and date
// against the three reservation sources: non-cancelled bookings, blocked
// slots, and active fixed-slot rules covering the date. Candidate booking
// rows are read FOR UPDATE so a concurrent creator in another transaction
// waits for ours to commit. Returns nil when the window is free.
func FindConflict(tx *gorm.DB, court *models.Court, date time.Time, start, end int, excludeBookingID *uuid.UUID) (*Conflict, error) {
	var bookings []models.Booking
	q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("court_id = ? AND date = ? AND status <> ?", court.ID, date, models.BookingCancelado)
	if excludeBookingID != nil {
		q = q.Where("id <> ?", *excludeBookingID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	for i := range bookings {
		bStart, err := utils.ParseClock(bookings[i].Time)
		if err != nil {
			continue
		}
		bEnd := bStart + court.SlotDuration
		if Overlaps(start, end, bStart, bEnd) {
			if err := loadBookingUser(tx, &bookings[i]); err != nil {
				return nil, err
			}
			return &Conflict{Source: ConflictBooking, Label: bookings[i].DisplayName(), Start: bStart, End: bEnd}, nil
		}
	}

	var blocked []models.BlockedSlot
	if err := tx.Where("court_id = ? AND date = ?", court.ID, date).Find(&blocked).Error; err != nil {
		return nil, err
	}
	for _, b := range blocked {
		bStart, err1 := utils.ParseClock(b.StartTime)
		bEnd, err2 := utils.ParseClock(b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if Overlaps(start, end, bStart, bEnd) {
			return &Conflict{Source: ConflictBlocked, Label: b.Reason, Start: bStart, End: bEnd}, nil
		}
	}

	// Rules occupy their weekly window whether or not a concrete booking
	// row for the occurrence exists yet.
	var rules []models.FixedSlot
	err := tx.Where("court_id = ? AND day_of_week = ? AND is_active = ?", court.ID, int(date.Weekday()), true).
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rules {
		if !r.CoversDate(date) {
			continue
		}
		rStart, err1 := utils.ParseClock(r.StartTime)
		rEnd, err2 := utils.ParseClock(r.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if Overlaps(start, end, rStart, rEnd) {
			return &Conflict{Source: ConflictFixedSlot, Label: r.ClientName, Start: rStart, End: rEnd}, nil
		}
	}

	return nil, nil
}

// FindRuleConflict checks a proposed recurring rule against bookings,
// blocked slots and other rules on every occurrence inside its validity
// range. Occurrences already materialized from the same rule are skipped
// via excludeRuleID.
func FindRuleConflict(tx *gorm.DB, court *models.Court, rule *models.FixedSlot, excludeRuleID *uuid.UUID) (*Conflict, error) {
	start, err := utils.ParseClock(rule.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClock(rule.EndTime)
	if err != nil {
		return nil, err
	}

	var others []models.FixedSlot
	q := tx.Where("court_id = ? AND day_of_week = ? AND is_active = ?", court.ID, rule.DayOfWeek, true)
	if excludeRuleID != nil {
		q = q.Where("id <> ?", *excludeRuleID)
	}
	if err := q.Find(&others).Error; err != nil {
		return nil, err
	}
	for _, o := range others {
		if !rangesIntersect(rule.StartDate, rule.EndDate, o.StartDate, o.EndDate) {
			continue
		}
		oStart, err1 := utils.ParseClock(o.StartTime)
		oEnd, err2 := utils.ParseClock(o.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if Overlaps(start, end, oStart, oEnd) {
			return &Conflict{Source: ConflictFixedSlot, Label: o.ClientName, Start: oStart, End: oEnd}, nil
		}
	}

	var bookings []models.Booking
	q = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("court_id = ? AND date >= ? AND status <> ?", court.ID, rule.StartDate, models.BookingCancelado)
	if rule.EndDate != nil {
		q = q.Where("date <= ?", *rule.EndDate)
	}
	if excludeRuleID != nil {
		q = q.Where("fixed_slot_id IS NULL OR fixed_slot_id <> ?", *excludeRuleID)
	}
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	for i := range bookings {
		if int(bookings[i].Date.Weekday()) != rule.DayOfWeek {
			continue
		}
		bStart, err := utils.ParseClock(bookings[i].Time)
		if err != nil {
			continue
		}
		bEnd := bStart + court.SlotDuration
		if Overlaps(start, end, bStart, bEnd) {
			if err := loadBookingUser(tx, &bookings[i]); err != nil {
				return nil, err
			}
			return &Conflict{Source: ConflictBooking, Label: bookings[i].DisplayName(), Start: bStart, End: bEnd}, nil
		}
	}

	var blocked []models.BlockedSlot
	q = tx.Where("court_id = ? AND date >= ?", court.ID, rule.StartDate)
	if rule.EndDate != nil {
		q = q.Where("date <= ?", *rule.EndDate)
	}
	if err := q.Find(&blocked).Error; err != nil {
		return nil, err
	}
	for _, b := range blocked {
		if int(b.Date.Weekday()) != rule.DayOfWeek {
			continue
		}
		bStart, err1 := utils.ParseClock(b.StartTime)
		bEnd, err2 := utils.ParseClock(b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if Overlaps(start, end, bStart, bEnd) {
			return &Conflict{Source: ConflictBlocked, Label: b.Reason, Start: bStart, End: bEnd}, nil
		}
	}

	return nil, nil
}

func rangesIntersect(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && aEnd.Before(bStart) {
		return false
	}
	if bEnd != nil && bEnd.Before(aStart) {
		return false
	}
	return true
}

func loadBookingUser(tx *gorm.DB, b *models.Booking) error {
	if b.UserID == nil || b.User != nil {
		return nil
	}
	var user models.User
	if err := tx.First(&user, "id = ?", *b.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	b.User = &user
	return nil
}
