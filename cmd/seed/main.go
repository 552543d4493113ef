package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"foliobot/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// Seeds a handful of demo holdings so /portfolio has something to show
// while testing against a live bot.
func main() {
	userID := flag.Int64("user", 1, "telegram user id to seed holdings for")
	flag.Parse()

	godotenv.Load()

	var (
		db  *sqlx.DB
		err error
	)
	if dsn := os.Getenv("POSTGRES_URL"); dsn != "" {
		db, err = sqlx.Connect("postgres", dsn)
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "investments.db"
		}
		db, err = sqlx.Connect("sqlite", path)
	}
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	store := database.New(db, logrus.New())
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema init failed: %v", err)
	}

	demo := []struct {
		ticker   string
		qty      string
		buyPrice string
	}{
		{"AAPL", "10", "150.00"},
		{"MSFT", "2.5", "310.40"},
		{"VOO", "0.25", "412.37"},
	}

	for _, d := range demo {
		qty, _ := decimal.NewFromString(d.qty)
		price, _ := decimal.NewFromString(d.buyPrice)
		if err := store.Upsert(ctx, *userID, d.ticker, qty, price); err != nil {
			fmt.Printf("Warning: could not seed %s: %v\n", d.ticker, err)
			continue
		}
		fmt.Printf("Seeded %s %s @ %s for user %d\n", d.ticker, d.qty, d.buyPrice, *userID)
	}

	fmt.Println("Done. Send /portfolio to the bot to see the report.")
}
