package database

import (
	"fmt"
	"log"

	"tms_backend/internal/config"
	"tms_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseSection{},
		&model.Batch{},
		&model.StudentBatch{},
		&model.CourseAssignment{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestSubmission{},
		&model.TestAnswer{},
		&model.StudentProgress{},
		&model.FileRecord{},
	)
}

// SeedAdmin creates the bootstrap admin account on an empty user table.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	admin := &model.User{
		Email:        "admin@tms.local",
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Admin",
		Role:         model.Admin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("seed admin failed: %v", err)
	}
}
