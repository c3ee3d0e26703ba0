// Package mobula implements the primary market data source.
package mobula

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/rugscan/internal/models"
	"github.com/songzhibin97/rugscan/internal/utils/request"
)

type MobulaDataSource struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

func NewMobulaDataSource(apiKey string) *MobulaDataSource {
	return &MobulaDataSource{
		baseURL:    "https://api.mobula.io/api/1",
		apiKey:     apiKey,
		httpClient: request.Request,
	}
}

func (m *MobulaDataSource) Name() string {
	return "mobula"
}

type marketResponse struct {
	Data struct {
		Price             float64 `json:"price"`
		MarketCap         float64 `json:"market_cap"`
		MarketCapDiluted  float64 `json:"market_cap_diluted"`
		Liquidity         float64 `json:"liquidity"`
		Volume            float64 `json:"volume"`
		ATH               float64 `json:"ath"`
		PriceChange7d     float64 `json:"price_change_7d"`
		PriceChange1m     float64 `json:"price_change_1m"`
		TotalSupply       float64 `json:"total_supply"`
		CirculatingSupply float64 `json:"circulating_supply"`
		MaxSupply         float64 `json:"max_supply"`
		ListedAt          string  `json:"listed_at"`
	} `json:"data"`
}

// FetchMarket implements collector.MarketSource. Zero-valued metrics from
// the API stay nil on the snapshot so scoring can tell "absent" from "0".
func (m *MobulaDataSource) FetchMarket(ctx context.Context, symbol, address string, chain models.Chain) (*models.TokenSnapshot, error) {
	url := fmt.Sprintf("%s/market/data?asset=%s", m.baseURL, symbol)
	if address != "" {
		url = fmt.Sprintf("%s/market/data?asset=%s&blockchain=%s", m.baseURL, address, blockchainParam(chain))
	}

	req := m.httpClient.R().SetContext(ctx)
	if m.apiKey != "" {
		req.SetHeader("Authorization", m.apiKey)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result marketResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	d := result.Data
	snap := &models.TokenSnapshot{
		Symbol:            symbol,
		Chain:             chain,
		CurrentPrice:      optional(d.Price),
		MarketCap:         optional(d.MarketCap),
		FDV:               optional(d.MarketCapDiluted),
		LiquidityUSD:      optional(d.Liquidity),
		Volume24h:         optional(d.Volume),
		AllTimeHigh:       optional(d.ATH),
		PriceChange7d:     optional(d.PriceChange7d),
		PriceChange30d:    optional(d.PriceChange1m),
		TotalSupply:       optional(d.TotalSupply),
		CirculatingSupply: optional(d.CirculatingSupply),
		MaxSupply:         optional(d.MaxSupply),
	}
	return snap, nil
}

func blockchainParam(chain models.Chain) string {
	switch chain {
	case models.ChainSolana:
		return "solana"
	case models.ChainCardano:
		return "cardano"
	default:
		return "ethereum"
	}
}

func optional(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
