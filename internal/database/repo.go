package database

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const schema = `CREATE TABLE IF NOT EXISTS holdings (
	user_id   BIGINT  NOT NULL,
	ticker    TEXT    NOT NULL,
	quantity  NUMERIC NOT NULL,
	buy_price NUMERIC NOT NULL,
	PRIMARY KEY (user_id, ticker)
)`

// Repo persists holdings. Queries are written with ? placeholders and rebound
// for the active driver, so the same code runs against postgres and sqlite.
type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

// EnsureSchema creates the holdings table if it does not exist yet.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Upsert records a position, overwriting any existing row for the same
// (user, ticker). Last write wins; repeated adds do not accumulate.
func (r *Repo) Upsert(ctx context.Context, userID int64, ticker string, quantity, buyPrice decimal.Decimal) error {
	q := r.db.Rebind(`INSERT INTO holdings (user_id, ticker, quantity, buy_price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, ticker) DO UPDATE SET quantity = excluded.quantity, buy_price = excluded.buy_price`)
	_, err := r.db.ExecContext(ctx, q, userID, strings.ToUpper(ticker), quantity.String(), buyPrice.String())
	return err
}

// List returns every holding for the user. Row order is unspecified.
func (r *Repo) List(ctx context.Context, userID int64) ([]Holding, error) {
	q := r.db.Rebind(`SELECT user_id, ticker, quantity, buy_price FROM holdings WHERE user_id = ?`)
	rows, err := r.db.QueryxContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []Holding{}
	for rows.Next() {
		var h Holding
		if err := rows.StructScan(&h); err != nil {
			r.log.Warnf("scan holding failed: %v", err)
			continue
		}
		res = append(res, h)
	}
	return res, rows.Err()
}
