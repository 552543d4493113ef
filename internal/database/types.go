package database

import "github.com/shopspring/decimal"

// Holding is one recorded position: what the user bought and at what price.
// At most one row exists per (user_id, ticker).
type Holding struct {
	UserID   int64           `db:"user_id" json:"user_id"`
	Ticker   string          `db:"ticker" json:"ticker"`
	Quantity decimal.Decimal `db:"quantity" json:"quantity"`
	BuyPrice decimal.Decimal `db:"buy_price" json:"buy_price"`
}
