package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"foliobot/internal/bot"
	"foliobot/internal/database"
	"foliobot/internal/service"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	// Load .env file if it exists, but don't fail if it's missing (e.g. in production)
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		logger.Fatal("BOT_TOKEN is required; get one from @BotFather")
	}

	db, err := openDB(logger)
	if err != nil {
		logger.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := database.New(db, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatalf("schema init failed: %v", err)
	}

	quotes := service.NewYahooPriceService(logger)

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Fatalf("telegram connect failed: %v", err)
	}
	logger.Infof("authorized as @%s", api.Self.UserName)

	router := bot.NewRouter(api, store, quotes, logger)

	go runHealthServer(logger)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)

	logger.Info("bot polling started")
	for update := range updates {
		if update.Message == nil {
			continue
		}
		go router.HandleMessage(ctx, update.Message)
	}
}

// openDB picks the backend from the environment: postgres when POSTGRES_URL
// is set, a local sqlite file otherwise.
func openDB(logger *logrus.Logger) (*sqlx.DB, error) {
	if dsn := os.Getenv("POSTGRES_URL"); dsn != "" {
		db, err := sqlx.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		logger.Info("using postgres store")
		return db, nil
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "investments.db"
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	logger.Infof("using sqlite store at %s", path)
	return db, nil
}

// runHealthServer serves the deployment platform's liveness probe.
func runHealthServer(logger *logrus.Logger) {
	ok := func(c *gin.Context) { c.String(200, "Bot is running") }

	rg := gin.Default()
	rg.GET("/", ok)
	rg.GET("/health", ok)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Infof("health server starting on :%s", port)
	if err := rg.Run(fmt.Sprintf(":%s", port)); err != nil {
		logger.Errorf("health server stopped: %v", err)
	}
}
