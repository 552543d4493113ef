package portfolio

import (
	"strings"
	"testing"

	"foliobot/internal/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func holding(ticker string, qty, buy float64) database.Holding {
	return database.Holding{
		UserID:   1,
		Ticker:   ticker,
		Quantity: decimal.NewFromFloat(qty),
		BuyPrice: decimal.NewFromFloat(buy),
	}
}

func TestCompute_SinglePosition(t *testing.T) {
	rep := Compute([]PricedHolding{
		{Holding: holding("AAPL", 10, 150), Price: decimal.NewFromInt(160), HasPrice: true},
	})

	require.Len(t, rep.Positions, 1)
	p := rep.Positions[0]
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(1500)), "cost = %s", p.Cost)
	assert.True(t, p.Value.Equal(decimal.NewFromInt(1600)), "value = %s", p.Value)
	assert.True(t, p.Profit.Equal(decimal.NewFromInt(100)), "profit = %s", p.Profit)
	assert.Equal(t, "6.67", p.ProfitPct.StringFixed(2))

	assert.True(t, rep.TotalCost.Equal(decimal.NewFromInt(1500)))
	assert.True(t, rep.TotalValue.Equal(decimal.NewFromInt(1600)))
	assert.True(t, rep.TotalProfit.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "6.67", rep.TotalProfitPct.StringFixed(2))
}

func TestCompute_MissingPriceValuedAtZero(t *testing.T) {
	rep := Compute([]PricedHolding{
		{Holding: holding("XYZ", 4, 25), HasPrice: false},
	})

	require.Len(t, rep.Positions, 1)
	p := rep.Positions[0]
	assert.True(t, p.CurrentPrice.IsZero())
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Value.IsZero())
	assert.True(t, p.Profit.Equal(decimal.NewFromInt(-100)))
	assert.Equal(t, "-100.0", p.ProfitPct.StringFixed(1))
}

func TestCompute_ZeroCostNoDivisionByZero(t *testing.T) {
	rep := Compute([]PricedHolding{
		{Holding: holding("FREE", 10, 0), Price: decimal.NewFromInt(5), HasPrice: true},
	})

	require.Len(t, rep.Positions, 1)
	assert.True(t, rep.Positions[0].ProfitPct.IsZero(), "zero cost must yield zero pct")

	// totals guard too: only zero-cost positions in the report
	rep = Compute([]PricedHolding{
		{Holding: holding("FREE", 10, 0), HasPrice: false},
	})
	assert.True(t, rep.TotalProfitPct.IsZero())
}

func TestCompute_TotalsAcrossPositions(t *testing.T) {
	rep := Compute([]PricedHolding{
		{Holding: holding("AAPL", 10, 150), Price: decimal.NewFromInt(160), HasPrice: true},
		{Holding: holding("MSFT", 2, 300), Price: decimal.NewFromInt(250), HasPrice: true},
	})

	// 1500 + 600 cost, 1600 + 500 value
	assert.True(t, rep.TotalCost.Equal(decimal.NewFromInt(2100)), "total cost = %s", rep.TotalCost)
	assert.True(t, rep.TotalValue.Equal(decimal.NewFromInt(2100)), "total value = %s", rep.TotalValue)
	assert.True(t, rep.TotalProfit.IsZero())
	assert.True(t, rep.TotalProfitPct.IsZero())
}

func TestCompute_PreservesInputOrder(t *testing.T) {
	rep := Compute([]PricedHolding{
		{Holding: holding("ZZZ", 1, 1), Price: decimal.NewFromInt(1), HasPrice: true},
		{Holding: holding("AAA", 1, 1), Price: decimal.NewFromInt(1), HasPrice: true},
	})
	require.Len(t, rep.Positions, 2)
	assert.Equal(t, "ZZZ", rep.Positions[0].Ticker)
	assert.Equal(t, "AAA", rep.Positions[1].Ticker)
}

func TestCompute_Empty(t *testing.T) {
	rep := Compute(nil)
	assert.Empty(t, rep.Positions)
	assert.True(t, rep.TotalValue.IsZero())
	assert.True(t, rep.TotalProfitPct.IsZero())
}

func TestRender_Layout(t *testing.T) {
	rep := Compute([]PricedHolding{
		{Holding: holding("AAPL", 10, 150), Price: decimal.NewFromInt(160), HasPrice: true},
		{Holding: holding("XYZ", 4, 25), HasPrice: false},
	})
	out := rep.Render()

	assert.True(t, strings.HasPrefix(out, "Total value: 1600.00\n"), "header first: %q", out)
	assert.Contains(t, out, "AAPL: 10 shares")
	assert.Contains(t, out, "buy: 150.00 | now: 160.00")
	assert.Contains(t, out, "profit: 100.00 (6.7%)")
	// failed quote still renders a well-formed line
	assert.Contains(t, out, "XYZ: 4 shares")
	assert.Contains(t, out, "now: 0.00")
	assert.Less(t, strings.Index(out, "AAPL"), strings.Index(out, "XYZ"), "input order preserved")
}
