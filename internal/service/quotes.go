package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PriceProvider returns the latest closing price for a ticker. Any error
// means the price is unknown; callers value the position at zero in that
// case rather than failing the whole report.
type PriceProvider interface {
	GetLastClose(ctx context.Context, ticker string) (decimal.Decimal, error)
}

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooPriceService fetches last-close prices from the Yahoo Finance v8
// chart endpoint. One request per ticker, no caching or retries.
type YahooPriceService struct {
	client  *http.Client
	baseURL string
	log     *logrus.Logger
}

func NewYahooPriceService(log *logrus.Logger) *YahooPriceService {
	return &YahooPriceService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultYahooBaseURL,
		log:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (s *YahooPriceService) GetLastClose(ctx context.Context, ticker string) (decimal.Decimal, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d",
		s.baseURL, url.PathEscape(strings.ToUpper(ticker)))
	s.log.Debugf("fetching last close for %s", ticker)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; foliobot/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote request for %s: status %d", ticker, resp.StatusCode)
	}

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode quote response: %w", err)
	}
	if body.Chart.Error != nil {
		return decimal.Zero, fmt.Errorf("quote error for %s: %s", ticker, body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("no quote data for %s", ticker)
	}

	res := body.Chart.Result[0]

	// last non-null daily close, falling back to the regular market price
	for _, q := range res.Indicators.Quote {
		for i := len(q.Close) - 1; i >= 0; i-- {
			if q.Close[i] != nil {
				return decimal.NewFromFloat(*q.Close[i]), nil
			}
		}
	}
	if res.Meta.RegularMarketPrice > 0 {
		return decimal.NewFromFloat(res.Meta.RegularMarketPrice), nil
	}
	return decimal.Zero, fmt.Errorf("empty quote history for %s", ticker)
}
