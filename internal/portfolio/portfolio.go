// Package portfolio aggregates holdings and fetched prices into a
// profit/loss report. Everything here is pure; transport and storage
// stay out.
package portfolio

import (
	"fmt"
	"strings"

	"foliobot/internal/database"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricedHolding pairs a stored position with the latest fetched price.
// HasPrice false means the fetch failed or returned nothing; the position
// is then valued at zero rather than dropped.
type PricedHolding struct {
	Holding  database.Holding
	Price    decimal.Decimal
	HasPrice bool
}

// Position is one computed report line.
type Position struct {
	Ticker       string
	Quantity     decimal.Decimal
	BuyPrice     decimal.Decimal
	CurrentPrice decimal.Decimal
	Cost         decimal.Decimal
	Value        decimal.Decimal
	Profit       decimal.Decimal
	ProfitPct    decimal.Decimal
}

// Report is the aggregate over one user's positions, in input order.
type Report struct {
	Positions      []Position
	TotalCost      decimal.Decimal
	TotalValue     decimal.Decimal
	TotalProfit    decimal.Decimal
	TotalProfitPct decimal.Decimal
}

// pctOf returns profit relative to cost in percent, zero when cost is zero.
func pctOf(profit, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return profit.Div(cost).Mul(hundred)
}

// Compute builds the report. Input order is preserved in the output.
func Compute(priced []PricedHolding) Report {
	rep := Report{Positions: make([]Position, 0, len(priced))}
	for _, ph := range priced {
		price := decimal.Zero
		if ph.HasPrice {
			price = ph.Price
		}
		cost := ph.Holding.Quantity.Mul(ph.Holding.BuyPrice)
		value := ph.Holding.Quantity.Mul(price)
		profit := value.Sub(cost)

		rep.Positions = append(rep.Positions, Position{
			Ticker:       ph.Holding.Ticker,
			Quantity:     ph.Holding.Quantity,
			BuyPrice:     ph.Holding.BuyPrice,
			CurrentPrice: price,
			Cost:         cost,
			Value:        value,
			Profit:       profit,
			ProfitPct:    pctOf(profit, cost),
		})
		rep.TotalCost = rep.TotalCost.Add(cost)
		rep.TotalValue = rep.TotalValue.Add(value)
	}
	rep.TotalProfit = rep.TotalValue.Sub(rep.TotalCost)
	rep.TotalProfitPct = pctOf(rep.TotalProfit, rep.TotalCost)
	return rep
}

// Render formats the report as a Telegram message: a totals header followed
// by one block per position.
func (r Report) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total value: %s\n", r.TotalValue.StringFixed(2))
	fmt.Fprintf(&b, "Total profit: %s (%s%%)\n\n", r.TotalProfit.StringFixed(2), r.TotalProfitPct.StringFixed(1))

	lines := make([]string, 0, len(r.Positions))
	for _, p := range r.Positions {
		lines = append(lines, fmt.Sprintf(
			"%s: %s shares\n  buy: %s | now: %s\n  value: %s | profit: %s (%s%%)",
			p.Ticker, p.Quantity.String(),
			p.BuyPrice.StringFixed(2), p.CurrentPrice.StringFixed(2),
			p.Value.StringFixed(2), p.Profit.StringFixed(2), p.ProfitPct.StringFixed(1)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}
