// Package catalog resolves whether a token is a verified, high-market-cap
// listing on an external reference catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/songzhibin97/rugscan/internal/models"
)

const (
	defaultBaseURL = "https://api.coingecko.com/api/v3"

	// Listings below this market cap are never treated as official.
	marketCapThreshold = 50_000_000

	cacheTTL = time.Hour
)

type marketEntry struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	MarketCap     float64 `json:"market_cap"`
	MarketCapRank int     `json:"market_cap_rank"`
}

// CoinGecko resolves official listings against the CoinGecko markets API,
// with an injected cache in front and a request budget for the public API.
type CoinGecko struct {
	baseURL    string
	httpClient *resty.Client
	cache      Cache
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewCoinGecko builds a resolver. cache may be nil for uncached lookups.
func NewCoinGecko(httpClient *resty.Client, cache Cache, logger *slog.Logger) *CoinGecko {
	if cache == nil {
		cache = NopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CoinGecko{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		cache:      cache,
		// The public tier allows roughly 30 calls/minute.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
		logger:  logger,
	}
}

// Resolve checks whether symbol is a verified listing with a market cap
// above the threshold. Any transport, decode, or rate failure resolves to
// "not official" rather than an error.
func (c *CoinGecko) Resolve(ctx context.Context, symbol, address string) models.OfficialListing {
	cacheKey := "official:" + strings.ToUpper(symbol)
	if address != "" {
		cacheKey = "official:" + strings.ToLower(address)
	}

	if raw, ok := c.cache.Get(ctx, cacheKey); ok {
		var cached models.OfficialListing
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached
		}
	}

	listing := c.fetch(ctx, symbol, address)

	if raw, err := json.Marshal(listing); err == nil {
		c.cache.Set(ctx, cacheKey, string(raw), cacheTTL)
	}

	return listing
}

func (c *CoinGecko) fetch(ctx context.Context, symbol, address string) models.OfficialListing {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.OfficialListing{}
	}

	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&symbols=%s&per_page=10",
		c.baseURL, strings.ToUpper(symbol))
	if address != "" {
		url = fmt.Sprintf("%s/coins/markets?vs_currency=usd&ids=%s", c.baseURL, address)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		c.logger.Warn("catalog lookup failed", "symbol", symbol, "err", err)
		return models.OfficialListing{}
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("catalog lookup bad status", "symbol", symbol, "status", resp.StatusCode())
		return models.OfficialListing{}
	}

	var entries []marketEntry
	if err := json.Unmarshal(resp.Body(), &entries); err != nil {
		c.logger.Warn("catalog decode failed", "symbol", symbol, "err", err)
		return models.OfficialListing{}
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Symbol, symbol) && entry.MarketCap >= marketCapThreshold {
			return models.OfficialListing{
				IsOfficial: true,
				MarketCap:  entry.MarketCap,
				Name:       entry.Name,
			}
		}
	}
	return models.OfficialListing{}
}
