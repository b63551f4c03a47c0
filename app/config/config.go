package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB        *sql.DB
	SMTP      SMTPConfig
	College   CollegeConfig
	Reminders ReminderConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// CollegeConfig holds the institution details stamped on receipts,
// challans and outgoing emails.
type CollegeConfig struct {
	Name       string
	Phone      string
	Address    string
	AdminEmail string
}

// ReminderConfig controls the nightly reminder sweep. AutoSend gates the
// whole sweep; OverdueDays is the minimum overdue age before a student
// is emailed.
type ReminderConfig struct {
	AutoSend    bool
	OverdueDays int
}

var AppConfig *Config

// LoadEnv reads .env if present. Missing file is fine; real deployments
// set the variables in the environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func InitDB() {
	var psqlInfo string

	if url := os.Getenv("DATABASE_URL"); url != "" {
		psqlInfo = url
	} else {
		host := getEnv("DB_HOST", "localhost")
		port := getEnvInt("DB_PORT", 5432)
		user := getEnv("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := getEnv("DB_NAME", "citycollege")
		sslmode := getEnv("DB_SSLMODE", "disable")

		psqlInfo = fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=60",
			host, port, user, dbname, sslmode)
		if password != "" {
			psqlInfo += " password=" + password
		}
		log.Printf("Connecting to database %s at %s:%d", dbname, host, port)
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Check DATABASE_URL or the DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME variables")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB: db,
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
		},
		College: CollegeConfig{
			Name:       getEnv("COLLEGE_NAME", "City Computer College"),
			Phone:      getEnv("COLLEGE_PHONE", "9876543210"),
			Address:    getEnv("COLLEGE_ADDRESS", "123 College Road, City"),
			AdminEmail: os.Getenv("COLLEGE_ADMIN_EMAIL"),
		},
		Reminders: ReminderConfig{
			AutoSend:    getEnvBool("REMINDER_AUTO_SEND", false),
			OverdueDays: getEnvInt("REMINDER_OVERDUE_DAYS", 1),
		},
	}
	log.Println("Database connected successfully")
	log.Println("Email configuration initialized")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
