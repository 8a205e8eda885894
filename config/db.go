package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"bukarum/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type seedUser struct {
	Username string
	FullName string
	Password string
	IsStaff  bool
}

// SeedDatabase fills an empty database with a usable catalogue and two
// accounts. Tables that already have rows are left alone.
func SeedDatabase() {
	// ---------------- Users ----------------
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		for _, su := range []seedUser{
			{Username: "admin@bukarum.local", FullName: "Front Desk", Password: "admin123", IsStaff: true},
			{Username: "guest@bukarum.local", FullName: "Guest User", Password: "guest123"},
		} {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("warning: failed to hash password for %s: %v", su.Username, err)
				continue
			}
			user := models.User{
				Username: su.Username,
				FullName: su.FullName,
				Password: string(hash),
				IsActive: true,
				IsStaff:  su.IsStaff,
			}
			if err := DB.Create(&user).Error; err != nil {
				log.Printf("warning: failed to create user %s: %v", su.Username, err)
				continue
			}
		}
		log.Println("Users seeded")
	}

	// ---------------- RoomTypes + Rooms ----------------
	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Capacity: 2, NightlyPrice: 60},
			{Name: "Superior", Capacity: 3, NightlyPrice: 85},
			{Name: "Suite", Capacity: 4, NightlyPrice: 150},
		}
		if err := DB.Create(&roomTypes).Error; err != nil {
			log.Fatalf("Failed to seed RoomTypes: %v", err)
		}
		log.Println("RoomTypes seeded")

		perType := []int{4, 3, 2}
		number := 1
		rooms := make([]models.Room, 0)
		for i, rt := range roomTypes {
			for n := 0; n < perType[i]; n++ {
				rooms = append(rooms, models.Room{Number: number, RoomTypeID: rt.ID})
				number++
			}
		}
		if err := DB.Omit("RoomType").Create(&rooms).Error; err != nil {
			log.Fatalf("Failed to seed Rooms: %v", err)
		}
		log.Println("Rooms seeded")
	}

	// ---------------- CardProfiles ----------------
	var cardCount int64
	DB.Model(&models.CardProfile{}).Count(&cardCount)
	if cardCount == 0 {
		cards := []models.CardProfile{{Name: "Visa"}, {Name: "Mastercard"}, {Name: "American Express"}}
		if err := DB.Create(&cards).Error; err != nil {
			log.Printf("warning: failed to seed card profiles: %v", err)
		} else {
			log.Println("CardProfiles seeded")
		}
	}
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
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
		return "", "", fmt.Errorf("mysql url missing database name")
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

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "bukarum")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}

func ConnectDatabase() error {
	dsn, dbName, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		log.Printf("info: cannot get raw sql.DB: %v", err)
	}

	DB = db
	log.Printf("info: connected to database %q", dbName)

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.CardProfile{},
		&models.Reservation{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
