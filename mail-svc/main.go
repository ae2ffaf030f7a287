package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ieeespac/spac_site/infra/queue"
	"github.com/ieeespac/spac_site/mail-svc/config"
	"github.com/ieeespac/spac_site/mail-svc/internal/api/rest/handlers"
	"github.com/ieeespac/spac_site/mail-svc/internal/services"
)

func main() {
	// ---------- Load Config ----------
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Mail Service starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	// ---------- Init Services ----------
	mailService := services.NewMailService(services.MailOptions{
		Host:           cfg.SMTPHost,
		Port:           cfg.SMTPPort,
		Timeout:        cfg.SMTPTimeout,
		Username:       cfg.GmailUser,
		Password:       cfg.GmailAppPassword,
		From:           cfg.MailFrom,
		FromName:       cfg.MailFromName,
		Subject:        cfg.MailSubject,
		ConferenceName: cfg.ConferenceName,
		ScheduleURL:    cfg.ScheduleURL,
	})

	var roster handlers.RosterWriter
	if cfg.SheetsSpreadsheetID != "" {
		r, err := services.NewRosterService(ctx, cfg.SheetsCredentialsPath, cfg.SheetsSpreadsheetID, cfg.SheetsSheetName)
		if err != nil {
			log.Fatalf("roster init error: %v", err)
		}
		roster = r
	} else {
		log.Println("SHEETS_SPREADSHEET_ID not set, roster disabled")
	}

	// ---------- Init Handler ----------
	handler := handlers.NewMailHandler(mailService, roster)

	// ---------- Init Kafka Consumer ----------
	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	// ---------- Start Listening ----------
	log.Println("Mail Service listening for events...")
	if err := consumer.Listen(ctx); err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
	log.Println("Mail Service stopped")
}
