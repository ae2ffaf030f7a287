package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	KafkaBroker   string `env:"KAFKA_BROKER"`
	KafkaTopic    string `env:"KAFKA_TOPIC" envDefault:"spac.registrations"`
	KafkaGroupID  string `env:"KAFKA_GROUP_ID" envDefault:"spac-mail-svc"`
	KafkaUsername string `env:"KAFKA_USERNAME"`
	KafkaPassword string `env:"KAFKA_PASSWORD"`

	SMTPHost         string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort         int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPTimeout      time.Duration `env:"SMTP_TIMEOUT" envDefault:"15s"`
	GmailUser        string        `env:"GMAIL_USER"`
	GmailAppPassword string        `env:"GMAIL_APP_PASSWORD"`
	MailFrom         string        `env:"MAIL_FROM"`
	MailFromName     string        `env:"MAIL_FROM_NAME" envDefault:"IEEE SPAC"`
	MailSubject      string        `env:"MAIL_SUBJECT" envDefault:"You're registered for SPAC"`
	ConferenceName   string        `env:"CONFERENCE_NAME" envDefault:"Student Professional Awareness Conference"`
	ScheduleURL      string        `env:"SCHEDULE_URL" envDefault:"http://localhost:3000/schedule"`

	// roster is skipped when no spreadsheet is configured
	SheetsCredentialsPath string `env:"SHEETS_CREDENTIALS_PATH"`
	SheetsSpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
	SheetsSheetName       string `env:"SHEETS_SHEET_NAME" envDefault:"Registrations"`
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.KafkaBroker == "" {
		return Config{}, fmt.Errorf("KAFKA_BROKER is required")
	}
	return cfg, nil
}
