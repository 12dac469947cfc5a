package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/lucasditoro/reservapp/database"
	"github.com/lucasditoro/reservapp/models"
	"github.com/lucasditoro/reservapp/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var connectOnce sync.Once

func setupConflictDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	connectOnce.Do(func() {
		os.Setenv("DATABASE_URL", dsn)
		database.ConnectDB()
		database.Migrate()
	})
	err := database.DB.Exec(`TRUNCATE TABLE transactions, booking_players, bookings,
		blocked_slots, fixed_slots, price_rules, courts, complexes, users CASCADE`).Error
	require.NoError(t, err)
	return database.DB
}

func seedCourt(t *testing.T, db *gorm.DB) *models.Court {
	t.Helper()
	owner := models.User{FullName: "Lucas Di Toro", Email: "lucas@reservapp.test", Password: "x", Role: "MANAGER"}
	require.NoError(t, db.Create(&owner).Error)
	complejo := models.Complex{OwnerID: owner.ID, Name: "Club Norte"}
	require.NoError(t, db.Create(&complejo).Error)
	court := models.Court{ComplexID: complejo.ID, Name: "Cancha 1", Sport: "PADEL", SlotDuration: 90, IsActive: true}
	require.NoError(t, db.Create(&court).Error)
	return &court
}

func seedBooking(t *testing.T, db *gorm.DB, court *models.Court, date time.Time, clock, status, guest string) *models.Booking {
	t.Helper()
	code, err := utils.GenerateUniqueBookingCode(db)
	require.NoError(t, err)
	booking := models.Booking{
		Code:             code,
		CourtID:          court.ID,
		Date:             date,
		Time:             clock,
		Status:           status,
		TotalPrice:       1000000,
		RemainingBalance: 1000000,
		GuestName:        &guest,
	}
	require.NoError(t, db.Create(&booking).Error)
	return &booking
}

func TestFindConflict_Integration(t *testing.T) {
	db := setupConflictDB(t)
	court := seedCourt(t, db)
	date := utils.Today().AddDate(0, 0, 7)

	marcos := seedBooking(t, db, court, date, "10:00", models.BookingConfirmado, "Marcos")

	t.Run("live booking occupies its slot and names the guest", func(t *testing.T) {
		conflict, err := FindConflict(db, court, date, 10*60, 11*60+30, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, ConflictBooking, conflict.Source)
		assert.Equal(t, "El horario 10:00-11:30 ya está reservado por Marcos", conflict.Message())
	})

	t.Run("adjacent slot stays free", func(t *testing.T) {
		conflict, err := FindConflict(db, court, date, 11*60+30, 13*60, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("other days are not affected", func(t *testing.T) {
		conflict, err := FindConflict(db, court, date.AddDate(0, 0, 1), 10*60, 11*60+30, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("excluded booking does not conflict with itself", func(t *testing.T) {
		conflict, err := FindConflict(db, court, date, 10*60, 11*60+30, &marcos.ID)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		seedBooking(t, db, court, date, "13:00", models.BookingCancelado, "Julián")
		conflict, err := FindConflict(db, court, date, 13*60, 14*60+30, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("blocked slot reports its window and reason", func(t *testing.T) {
		blocked := models.BlockedSlot{CourtID: court.ID, Date: date, StartTime: "15:00", EndTime: "17:00", Reason: "Mantenimiento"}
		require.NoError(t, db.Create(&blocked).Error)

		conflict, err := FindConflict(db, court, date, 16*60, 17*60+30, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, ConflictBlocked, conflict.Source)
		assert.Equal(t, "La cancha está bloqueada de 15:00-17:00: Mantenimiento", conflict.Message())
	})

	t.Run("active rule occupies its weekly window without materialized rows", func(t *testing.T) {
		rule := models.FixedSlot{
			CourtID:    court.ID,
			ClientName: "Escuela de Pádel",
			DayOfWeek:  int(date.Weekday()),
			StartTime:  "20:00",
			EndTime:    "21:30",
			StartDate:  utils.Today(),
			Price:      800000,
			Type:       models.FixedSlotCliente,
			IsActive:   true,
		}
		require.NoError(t, db.Create(&rule).Error)

		conflict, err := FindConflict(db, court, date, 20*60+30, 22*60, nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, ConflictFixedSlot, conflict.Source)
		assert.Equal(t, "El horario 20:00-21:30 está ocupado por un abono fijo", conflict.Message())
	})

	t.Run("rule outside its validity range does not block", func(t *testing.T) {
		ended := utils.Today().AddDate(0, 0, 3)
		rule := models.FixedSlot{
			CourtID:    court.ID,
			ClientName: "Torneo de verano",
			DayOfWeek:  int(date.Weekday()),
			StartTime:  "22:00",
			EndTime:    "23:00",
			StartDate:  utils.Today().AddDate(0, 0, -30),
			EndDate:    &ended,
			Price:      800000,
			Type:       models.FixedSlotCliente,
			IsActive:   true,
		}
		require.NoError(t, db.Create(&rule).Error)

		conflict, err := FindConflict(db, court, date, 22*60, 23*60, nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})
}

func TestFindRuleConflict_Integration(t *testing.T) {
	db := setupConflictDB(t)
	court := seedCourt(t, db)
	today := utils.Today()
	occurrence := today.AddDate(0, 0, 7)
	dow := int(occurrence.Weekday())

	existing := models.FixedSlot{
		CourtID:    court.ID,
		ClientName: "Abono Martínez",
		DayOfWeek:  dow,
		StartTime:  "18:00",
		EndTime:    "19:30",
		StartDate:  today,
		Price:      800000,
		Type:       models.FixedSlotCliente,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&existing).Error)

	newRule := func(clock, end string, day int, start time.Time) *models.FixedSlot {
		return &models.FixedSlot{
			CourtID:    court.ID,
			ClientName: "Candidato",
			DayOfWeek:  day,
			StartTime:  clock,
			EndTime:    end,
			StartDate:  start,
			Price:      800000,
			Type:       models.FixedSlotCliente,
			IsActive:   true,
		}
	}

	t.Run("overlapping rule on the same weekday conflicts", func(t *testing.T) {
		conflict, err := FindRuleConflict(db, court, newRule("19:00", "20:30", dow, today), nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, ConflictFixedSlot, conflict.Source)
	})

	t.Run("same window on another weekday is free", func(t *testing.T) {
		conflict, err := FindRuleConflict(db, court, newRule("19:00", "20:30", (dow+1)%7, today), nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("disjoint validity ranges never clash", func(t *testing.T) {
		ended := today.AddDate(0, 0, 3)
		bounded := models.FixedSlot{
			CourtID:    court.ID,
			ClientName: "Abono vencido",
			DayOfWeek:  dow,
			StartTime:  "10:00",
			EndTime:    "11:00",
			StartDate:  today.AddDate(0, 0, -30),
			EndDate:    &ended,
			Price:      800000,
			Type:       models.FixedSlotCliente,
			IsActive:   true,
		}
		require.NoError(t, db.Create(&bounded).Error)

		conflict, err := FindRuleConflict(db, court, newRule("10:00", "11:00", dow, today.AddDate(0, 0, 10)), nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("live booking on a matching weekday conflicts and names the guest", func(t *testing.T) {
		seedBooking(t, db, court, occurrence, "08:00", models.BookingConfirmado, "Julián")

		conflict, err := FindRuleConflict(db, court, newRule("08:00", "09:00", dow, today), nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, ConflictBooking, conflict.Source)
		assert.Contains(t, conflict.Message(), "Julián")
	})

	t.Run("cancelled bookings are ignored", func(t *testing.T) {
		seedBooking(t, db, court, occurrence, "22:00", models.BookingCancelado, "Sofía")

		conflict, err := FindRuleConflict(db, court, newRule("22:00", "23:00", dow, today), nil)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})

	t.Run("blocked window on a matching weekday conflicts", func(t *testing.T) {
		blocked := models.BlockedSlot{CourtID: court.ID, Date: occurrence, StartTime: "06:00", EndTime: "07:00", Reason: "Riego"}
		require.NoError(t, db.Create(&blocked).Error)

		conflict, err := FindRuleConflict(db, court, newRule("06:30", "07:30", dow, today), nil)
		require.NoError(t, err)
		require.NotNil(t, conflict)
		assert.Equal(t, ConflictBlocked, conflict.Source)
	})

	t.Run("own materialized bookings are skipped via the exclusion", func(t *testing.T) {
		rule := newRule("12:00", "13:30", dow, today)
		rule.ClientName = "Abono propio"
		require.NoError(t, db.Create(rule).Error)

		materialized := seedBooking(t, db, court, occurrence, "12:00", models.BookingConfirmado, rule.ClientName)
		require.NoError(t, db.Model(materialized).Update("fixed_slot_id", rule.ID).Error)

		conflict, err := FindRuleConflict(db, court, rule, &rule.ID)
		require.NoError(t, err)
		assert.Nil(t, conflict)
	})
}
