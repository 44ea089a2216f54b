package main

import (
	"os"
	"strings"

	"millflow/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logg.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logg.WithError(err).Fatal("failed to connect postgres database")
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others.
		// Roles first so the users FK can be applied safely.
		for _, m := range []interface{}{
			&models.Role{},
			&models.User{},
			&models.Order{},
			&models.Quality{},
			&models.Mill{},
			&models.MillInput{},
			&models.MillOutput{},
			&models.Dispatch{},
		} {
			if err := db.AutoMigrate(m); err != nil {
				logg.WithError(err).Warnf("migration warning (%T)", m)
			}
		}
	}
	seedDB()
}

func seedDB() {
	// Ensure master roles exist
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}

	// Check if admin user exists
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			logg.WithError(err).Error("failed to find administrator role")
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		logg.Info("Seeded admin user: username=admin, password=admin123")
	}

	// Seed starter lookup rows so the dropdown endpoints are never empty on a
	// fresh database. Skipped as soon as either table has data.
	var qcount int64
	db.Model(&models.Quality{}).Count(&qcount)
	if qcount == 0 {
		for _, name := range []string{"2/17 RFD", "30x30 Cambric", "40x40 Poplin", "60x60 Voile"} {
			db.Create(&models.Quality{Name: name})
		}
		logg.Info("Seeded starter qualities")
	}
	var mcount int64
	db.Model(&models.Mill{}).Count(&mcount)
	if mcount == 0 {
		for _, name := range []string{"Shree Balaji Mills", "Omkar Processors", "Shivam Dyeing"} {
			db.Create(&models.Mill{Name: name})
		}
		logg.Info("Seeded starter mills")
	}
}
