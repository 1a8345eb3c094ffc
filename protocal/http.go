package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"cardshop-bot/configs"
	httpAdapter "cardshop-bot/internal/adapters/input/http"
	"cardshop-bot/internal/adapters/output/audit"
	"cardshop-bot/internal/adapters/output/botclient"
	"cardshop-bot/internal/adapters/output/memory"
	"cardshop-bot/internal/adapters/output/yamlstore"
	"cardshop-bot/internal/application"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// Defaults applied when config leaves a value at zero
const (
	defaultWindow       = 5 * time.Second
	defaultMaxMessages  = 5
	defaultReviewWindow = 3600 * time.Second
	defaultReviewMax    = 3
	defaultSessionIdle  = 5 * time.Minute
	defaultAuditSizeMB  = 50
	defaultAuditBackups = 20
	defaultDataDir      = "./data"
	catalogFileName     = "cards.yaml"
	backupDirName       = "backups"
	defaultAuditLogPath = "./logs/audit.log"
)

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))

	dataDir := configs.GetViper().Storage.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// Wire up the hexagonal architecture layers
	// Output adapters
	rotator, err := yamlstore.NewBackupRotator(filepath.Join(dataDir, backupDirName), configs.GetViper().Storage.MaxBackups)
	if err != nil {
		return err
	}
	repo, err := yamlstore.NewCardRepository(filepath.Join(dataDir, catalogFileName), rotator)
	if err != nil {
		return err
	}

	auditLog := audit.New(auditConfig())
	sessions := memory.NewSessionStore(sessionTimeout())

	generalWindow, generalMax, reviewWindow, reviewMax := rateLimitConfig()
	generalLimiter := memory.NewSlidingWindowLimiter(generalWindow, generalMax)
	reviewLimiter := memory.NewSlidingWindowLimiter(reviewWindow, reviewMax)

	botClient, err := botclient.NewBotClientAdapter(configs.GetViper().Bot.APIBaseURL)
	if err != nil {
		logrus.Fatalf("Failed to create bot client: %v", err)
	}

	// Application services (use cases)
	catalogSrv := application.NewCatalogService(repo, reviewLimiter, auditLog)
	workflowSrv := application.NewAdminWorkflowService(sessions, repo, auditLog, sessionTimeout())
	botSrv := application.NewBotService(catalogSrv, workflowSrv, generalLimiter, auditLog, botClient, configs.GetViper().Bot.AdminIDs)

	// Input adapters
	hdl := httpAdapter.New(repo)
	webhookHdl := httpAdapter.NewWebhookHandler(botSrv)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	app.Get("/health", hdl.HealthCheck)

	webhook := app.Group("/webhook")
	{
		webhook.Post("/bot", webhookHdl.HandleWebhook)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}

func sessionTimeout() time.Duration {
	if t := configs.GetViper().Session.Timeout; t > 0 {
		return time.Duration(t) * time.Second
	}
	return defaultSessionIdle
}

func rateLimitConfig() (time.Duration, int, time.Duration, int) {
	rl := configs.GetViper().RateLimit
	window, maxMessages := defaultWindow, defaultMaxMessages
	reviewWindow, reviewMax := defaultReviewWindow, defaultReviewMax
	if rl.Window > 0 {
		window = time.Duration(rl.Window) * time.Second
	}
	if rl.MaxMessages > 0 {
		maxMessages = rl.MaxMessages
	}
	if rl.ReviewWindow > 0 {
		reviewWindow = time.Duration(rl.ReviewWindow) * time.Second
	}
	if rl.ReviewMax > 0 {
		reviewMax = rl.ReviewMax
	}
	return window, maxMessages, reviewWindow, reviewMax
}

func auditConfig() audit.Config {
	cfg := configs.GetViper().Audit
	out := audit.Config{
		Path:       cfg.Path,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	if out.Path == "" {
		out.Path = defaultAuditLogPath
	}
	if out.MaxSizeMB <= 0 {
		out.MaxSizeMB = defaultAuditSizeMB
	}
	if out.MaxBackups <= 0 {
		out.MaxBackups = defaultAuditBackups
	}
	return out
}
