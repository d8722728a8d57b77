package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tickerhawk/tickerhawk/Internal/types"
)

const (
	alpacaDataURL      = "https://data.alpaca.markets/v2/stocks/%s/bars?timeframe=1Day&limit=%d&start=%s&adjustment=split"
	defaultBarLimit    = 320
	defaultReqPerSec   = 3
	alpacaPaperBaseURL = "https://paper-api.alpaca.markets"
)

// AlpacaProvider pulls daily stock bars from the Alpaca market-data API. A
// shared rate limiter throttles requests across all symbols.
type AlpacaProvider struct {
	APIKey    string
	SecretKey string
	BarLimit  int
	Client    *http.Client
	Limiter   *rate.Limiter
	Log       zerolog.Logger
}

// NewAlpacaProvider reads credentials from ALPACA_API_KEY / ALPACA_API_SECRET.
func NewAlpacaProvider(log zerolog.Logger) *AlpacaProvider {
	return &AlpacaProvider{
		APIKey:    os.Getenv("ALPACA_API_KEY"),
		SecretKey: os.Getenv("ALPACA_API_SECRET"),
		BarLimit:  defaultBarLimit,
		Client:    &http.Client{Timeout: 30 * time.Second},
		Limiter:   rate.NewLimiter(rate.Limit(defaultReqPerSec), defaultReqPerSec),
		Log:       log,
	}
}

type alpacaBar struct {
	Timestamp string  `json:"t"`
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          []alpacaBar `json:"bars"`
	NextPageToken *string     `json:"next_page_token"`
}

// Bars fetches the trailing daily series for one symbol, oldest first.
func (p *AlpacaProvider) Bars(ctx context.Context, symbol string) ([]types.Candle, error) {
	if p.APIKey == "" || p.SecretKey == "" {
		return nil, fmt.Errorf("alpaca credentials not configured")
	}
	if err := p.Limiter.Wait(ctx); err != nil {
		return nil, err
	}

	limit := p.BarLimit
	if limit <= 0 {
		limit = defaultBarLimit
	}
	// Daily bars only land on trading days, so reach back far enough in
	// calendar days to cover the requested count.
	start := time.Now().UTC().AddDate(0, 0, -limit*7/4).Format(time.RFC3339)
	apiURL := fmt.Sprintf(alpacaDataURL, url.PathEscape(symbol), limit, url.QueryEscape(start))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("APCA-API-KEY-ID", p.APIKey)
	req.Header.Set("APCA-API-SECRET-KEY", p.SecretKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpaca bars request for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpaca bars request for %s: status %s", symbol, resp.Status)
	}

	var body alpacaBarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("alpaca bars decode for %s: %w", symbol, err)
	}

	candles := make([]types.Candle, 0, len(body.Bars))
	for _, b := range body.Bars {
		ts, err := time.Parse(time.RFC3339, b.Timestamp)
		if err != nil {
			continue
		}
		candles = append(candles, types.Candle{
			Date:   ts.UTC().Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	p.Log.Debug().Str("symbol", symbol).Int("bars", len(candles)).Msg("fetched alpaca bars")
	return candles, nil
}

// TradableSymbols lists active US equities through the Alpaca trading API.
func TradableSymbols(log zerolog.Logger) ([]string, error) {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:    os.Getenv("ALPACA_API_KEY"),
		APISecret: os.Getenv("ALPACA_API_SECRET"),
		BaseURL:   alpacaPaperBaseURL,
	})
	assets, err := client.GetAssets(alpaca.GetAssetsRequest{Status: "active"})
	if err != nil {
		return nil, fmt.Errorf("fetch assets: %w", err)
	}
	symbols := make([]string, 0, len(assets))
	for _, asset := range assets {
		if asset.Class == "us_equity" && asset.Tradable {
			symbols = append(symbols, asset.Symbol)
		}
	}
	log.Info().Int("count", len(symbols)).Msg("fetched tradable assets")
	return symbols, nil
}
