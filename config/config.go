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
	Env        string `env:"ENV" envDefault:"dev"`
	ServerPort string `env:"SERVER_PORT" envDefault:":3000"`
	BaseURL    string `env:"BASE_URL" envDefault:"*"`

	DatabaseDriver string `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:"spac.db"`

	// storage backend for resumes: cloudinary | s3
	StorageBackend     string `env:"STORAGE_BACKEND" envDefault:"cloudinary"`
	CloudinaryUrl      string `env:"CLOUDINARY_URL"`
	S3Bucket           string `env:"S3_BUCKET"`
	S3Region           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	ResumeFolder   string        `env:"RESUME_FOLDER" envDefault:"spac/resumes"`
	ResumeMaxBytes int64         `env:"RESUME_MAX_BYTES" envDefault:"5242880"`
	BodyLimitBytes int           `env:"BODY_LIMIT_BYTES" envDefault:"33554432"`
	UploadTimeout  time.Duration `env:"UPLOAD_TIMEOUT" envDefault:"20s"`

	KafkaBroker   string `env:"KAFKA_BROKER"`
	KafkaTopic    string `env:"KAFKA_TOPIC" envDefault:"spac.registrations"`
	KafkaUsername string `env:"KAFKA_USERNAME"`
	KafkaPassword string `env:"KAFKA_PASSWORD"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	GuardTTL      time.Duration `env:"SUBMISSION_GUARD_TTL" envDefault:"2m"`

	AdminToken string `env:"ADMIN_TOKEN"`

	ConferenceName  string `env:"CONFERENCE_NAME" envDefault:"Student Professional Awareness Conference"`
	ConferenceDate  string `env:"CONFERENCE_DATE" envDefault:"2022-01-22"`
	ConferenceTZ    string `env:"CONFERENCE_TZ" envDefault:"America/Toronto"`
	ConferenceVenue string `env:"CONFERENCE_VENUE" envDefault:"Online on Hopin"`
	HeroVideoURL    string `env:"HERO_VIDEO_URL"`
	TicketURL       string `env:"TICKET_URL" envDefault:"https://hopin.com/events/student-professional-awareness-conference-ieee-spac/registration"`
	DiscordURL      string `env:"DISCORD_URL" envDefault:"https://discord.gg/spac"`
}

func LoadConfig() (Config, error) {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: .env not loaded:", err)
		}
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
