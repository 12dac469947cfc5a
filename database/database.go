package database

import (
	"fmt"
	"log"

	config "github.com/lucasditoro/reservapp/configs"
	"github.com/lucasditoro/reservapp/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Complex{},
		&models.Court{},
		&models.PriceRule{},
		&models.FixedSlot{},
		&models.Booking{},
		&models.BlockedSlot{},
		&models.BookingPlayer{},
		&models.Transaction{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}

	// Storage-level backstop for the read-then-write conflict check: two
	// live bookings can never share a court/date/time. Cancelled rows are
	// excluded so a freed slot can be rebooked, which AutoMigrate tags
	// cannot express.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_live_slot
		ON bookings (court_id, date, "time")
		WHERE status <> 'CANCELADO'`).Error
	if err != nil {
		log.Fatalf("🔥 Failed to create booking slot index: %v", err)
	}

	fmt.Println("✅ Database migration successful")
}

func SeedManager() {
	managerEmail := config.Config("MANAGER_EMAIL")
	managerPassword := config.Config("MANAGER_PASSWORD")
	if managerEmail == "" || managerPassword == "" {
		return
	}

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", managerEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for manager user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Manager user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(managerPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash manager password: %v", err)
		return
	}

	manager := models.User{
		FullName: config.ConfigOr("MANAGER_FULL_NAME", "Administrador"),
		Email:    managerEmail,
		Password: string(hashedPassword),
		Role:     "MANAGER",
	}

	if err := DB.Create(&manager).Error; err != nil {
		log.Fatalf("🔥 Failed to seed manager user: %v", err)
		return
	}

	log.Println("✅ Manager user seeded successfully")
}
