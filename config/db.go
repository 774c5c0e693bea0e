package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"residence-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "residence_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the store selected by cfg, migrates the schema in
// parent->child order and seeds the static catalogs.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case "mysql":
		var dsn string
		dsn, err = resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	default:
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{Logger: gormLogger})
	}
	if err != nil {
		return nil, err
	}

	if err := MigrateSchema(db); err != nil {
		return nil, err
	}

	SeedDatabase(db)
	return db, nil
}

// MigrateSchema runs AutoMigrate for every model, parents before children.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginAttempt{},
		&models.House{},
		&models.MaintenanceType{},
		&models.ChecklistCategory{},
		&models.Reservation{},
		&models.CheckIn{},
		&models.CheckOut{},
		&models.MaintenanceIssue{},
		&models.ChecklistItem{},
		&models.HouseChecklistStatus{},
		&models.HouseCategoryStatus{},
		&models.FinancialOperation{},
	)
}

// SeedDatabase ensures the static maintenance type catalog and a default
// admin account exist. Safe to run on every start.
func SeedDatabase(db *gorm.DB) {
	maintenanceTypes := []models.MaintenanceType{
		{ID: "electricite", Label: "Électricité"},
		{ID: "plomberie", Label: "Plomberie"},
		{ID: "electromenager", Label: "Électroménager"},
		{ID: "peinture", Label: "Peinture"},
		{ID: "autre", Label: "Autre"},
	}
	for _, mt := range maintenanceTypes {
		var existing models.MaintenanceType
		if err := db.Where("id = ?", mt.ID).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&mt).Error; err != nil {
			log.Printf("warning: failed to seed maintenance type %s: %v", mt.ID, err)
		}
	}

	var adminCount int64
	db.Model(&models.User{}).Where("role = ?", "admin").Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
			return
		}
		admin := models.User{
			Email:        envOrDefault("ADMIN_EMAIL", "admin@residence.local"),
			PasswordHash: string(hash),
			Role:         "admin",
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("warning: failed to create default admin: %v", err)
		} else {
			log.Println("Default admin seeded")
		}
	}
}
