package api

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ieeespac/spac_site/config"
	"github.com/ieeespac/spac_site/infra/guard"
	"github.com/ieeespac/spac_site/infra/queue"
	"github.com/ieeespac/spac_site/internal/api/rest/handlers"
	"github.com/ieeespac/spac_site/internal/interfaces"
	"github.com/ieeespac/spac_site/internal/repository"
	"github.com/ieeespac/spac_site/internal/services"
	"github.com/ieeespac/spac_site/internal/web"
	"github.com/ieeespac/spac_site/pkg/cloudinary"
	"github.com/ieeespac/spac_site/pkg/s3store"
)

// Deps are the services the http layer is built on.
type Deps struct {
	Registrations services.RegistrationService
	Schedule      services.ScheduleService
	Pages         *web.Renderer
}

func NewApp(cfg config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "spac-site",
		// larger than the resume limit so oversized files reach the handler
		// and come back as a resume warning instead of a bare 413
		BodyLimit: cfg.BodyLimitBytes,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// ---------- Static ----------
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.StaticFiles),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	// ---------- Handlers ----------
	handlers.NewPageHandler(deps.Schedule, deps.Pages).SetupRoutes(app)
	handlers.NewRegisterHandler(deps.Registrations, deps.Pages, cfg.AdminToken).SetupRoutes(app)

	// ---------- Health ----------
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

func StartServer(cfg config.Config) {
	log.Printf("KafkaBroker=%q KafkaTopic=%q", cfg.KafkaBroker, cfg.KafkaTopic)

	// ---------- DB ----------
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	log.Println("database connected")

	// ---------- Infra ----------
	up, err := newUploader(cfg)
	if err != nil {
		log.Fatalf("uploader init error: %v", err)
	}

	var producer interfaces.ProducerHandler
	if p := queue.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword); p != nil {
		defer p.Close()
		producer = p
	} else {
		log.Println("kafka disabled, submissions will not be published")
	}

	var submissionGuard interfaces.SubmissionGuard
	if cfg.RedisAddr != "" {
		g := guard.NewRedisGuard(cfg.RedisAddr, cfg.RedisPassword, cfg.GuardTTL)
		defer g.Close()
		submissionGuard = g
	} else {
		submissionGuard = guard.NewMemoryGuard(cfg.GuardTTL)
	}

	// ---------- Repositories ----------
	registrationRepo := repository.NewRegistrationRepository(db)

	// ---------- Services ----------
	registrationSvc := services.NewRegistrationService(registrationRepo, up, producer, submissionGuard, services.RegistrationOptions{
		ResumeFolder:   cfg.ResumeFolder,
		MaxResumeBytes: cfg.ResumeMaxBytes,
		UploadTimeout:  cfg.UploadTimeout,
	})
	scheduleSvc := services.NewScheduleService(nil, services.ScheduleOptions{
		ConferenceName: cfg.ConferenceName,
		Date:           cfg.ConferenceDate,
		Location:       scheduleLocation(cfg.ConferenceTZ),
	})

	pages, err := web.NewRenderer(siteInfo(cfg, registrationSvc.MaxResumeBytes()))
	if err != nil {
		log.Fatalf("template error: %v", err)
	}

	app := NewApp(cfg, Deps{
		Registrations: registrationSvc,
		Schedule:      scheduleSvc,
		Pages:         pages,
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func newUploader(cfg config.Config) (interfaces.Uploader, error) {
	switch cfg.StorageBackend {
	case "s3":
		up, err := s3store.NewS3Uploader(cfg.S3Region, cfg.S3Bucket, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		if err != nil {
			return nil, err
		}
		return up, nil
	case "cloudinary", "":
		cld, err := cloudinary.New(cfg.CloudinaryUrl)
		if err != nil {
			return nil, err
		}
		return cloudinary.NewCloudinaryUploader(cld), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func siteInfo(cfg config.Config, maxResumeBytes int64) web.SiteInfo {
	dateLabel := cfg.ConferenceDate
	if d, err := time.Parse(time.DateOnly, cfg.ConferenceDate); err == nil {
		dateLabel = d.Format("January 2, 2006")
	}

	return web.SiteInfo{
		ConferenceName: cfg.ConferenceName,
		DateLabel:      dateLabel,
		Venue:          cfg.ConferenceVenue,
		HeroVideoURL:   cfg.HeroVideoURL,
		TicketURL:      cfg.TicketURL,
		DiscordURL:     cfg.DiscordURL,
		MaxResumeMB:    strconv.FormatFloat(float64(maxResumeBytes)/(1<<20), 'f', -1, 64),
		MaxResumeBytes: maxResumeBytes,
	}
}

func scheduleLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown timezone %q, schedule uses UTC: %v", name, err)
		return time.UTC
	}
	return loc
}
