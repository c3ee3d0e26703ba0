// Package binance implements a fallback market source backed by the
// Binance public ticker API. Only exchange-listed tokens resolve here, so
// it runs after the aggregator sources.
package binance

import (
	"context"
	"fmt"
	"strconv"

	"github.com/adshao/go-binance/v2"

	"github.com/songzhibin97/rugscan/internal/models"
)

type BinanceDataSource struct {
	client *binance.Client
	quote  string
}

// NewBinanceDataSource builds the source. Market endpoints need no key, so
// empty credentials are fine.
func NewBinanceDataSource(apiKey, secretKey string) *BinanceDataSource {
	return &BinanceDataSource{
		client: binance.NewClient(apiKey, secretKey),
		quote:  "USDT",
	}
}

func (b *BinanceDataSource) Name() string {
	return "binance"
}

// FetchMarket implements collector.MarketSource. Binance has no supply or
// liquidity view, so the snapshot carries price, quote volume, and the 24h
// trade count with the estimate flag set.
func (b *BinanceDataSource) FetchMarket(ctx context.Context, symbol, address string, chain models.Chain) (*models.TokenSnapshot, error) {
	pair := symbol + b.quote

	stats, err := b.client.NewListPriceChangeStatsService().Symbol(pair).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticker stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("symbol not listed: %s", pair)
	}
	ticker := stats[0]

	price, err := strconv.ParseFloat(ticker.LastPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price: %w", err)
	}
	quoteVolume, err := strconv.ParseFloat(ticker.QuoteVolume, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse volume: %w", err)
	}

	txCount := int(ticker.Count)
	snap := &models.TokenSnapshot{
		Symbol:              symbol,
		Chain:               chain,
		CurrentPrice:        &price,
		Volume24h:           &quoteVolume,
		TxCount24h:          &txCount,
		TxCount24hEstimated: true,
	}
	return snap, nil
}
