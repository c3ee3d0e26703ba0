// Package collector assembles token snapshots by fanning out to market,
// security, chain-index, and social sources and merging their answers.
package collector

import (
	"context"
	"fmt"
	"sync"

	"github.com/songzhibin97/rugscan/internal/data"
	"github.com/songzhibin97/rugscan/internal/models"
)

// MarketSource supplies the price, supply, and liquidity core of a
// snapshot. Sources are tried in order; the first success wins.
type MarketSource interface {
	Name() string
	FetchMarket(ctx context.Context, symbol, address string, chain models.Chain) (*models.TokenSnapshot, error)
}

// SecuritySource supplies contract-level security scan data for EVM chains.
type SecuritySource interface {
	Name() string
	FetchSecurity(ctx context.Context, address string, chain models.Chain) (*models.SecurityData, error)
}

// HolderIndex is the chain-index view of ownership: counts, top balances,
// and the Solana authority bits.
type HolderIndex struct {
	HolderCount     *int
	TopHolders      []models.HolderBalance
	Top10HoldersPct *float64
	FreezeAuthority *bool
	MintAuthority   *bool
}

// ChainIndexSource supplies holder and authority data from an on-chain
// indexer.
type ChainIndexSource interface {
	Name() string
	FetchHolders(ctx context.Context, address string, chain models.Chain) (*HolderIndex, error)
}

// SocialSource supplies an adoption risk score from social presence.
type SocialSource interface {
	Name() string
	FetchAdoptionScore(ctx context.Context, symbol, handle string) (int, error)
}

type Logger interface {
	Error(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
}

// MultiSourceCollector implements data.SnapshotCollector by merging the
// configured sources into one snapshot. Market sources fall back
// sequentially; the enrichment sources run concurrently on top of the
// market base.
type MultiSourceCollector struct {
	markets  []MarketSource
	security SecuritySource
	index    ChainIndexSource
	social   SocialSource
	logger   Logger
}

var _ data.SnapshotCollector = (*MultiSourceCollector)(nil)

func NewMultiSourceCollector(markets []MarketSource, security SecuritySource, index ChainIndexSource, social SocialSource, logger Logger) *MultiSourceCollector {
	return &MultiSourceCollector{
		markets:  markets,
		security: security,
		index:    index,
		social:   social,
		logger:   logger,
	}
}

// Collect implements data.SnapshotCollector. A snapshot needs at least one
// market source to succeed; every enrichment source is best effort and its
// failure leaves the corresponding fields nil.
func (c *MultiSourceCollector) Collect(ctx context.Context, req data.CollectRequest) (*models.TokenSnapshot, error) {
	snap, err := c.collectMarket(ctx, req)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var wg sync.WaitGroup

	if c.security != nil && req.Address != "" && req.Chain != models.ChainSolana {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sec, err := c.security.FetchSecurity(ctx, req.Address, req.Chain)
			if err != nil {
				c.logger.Error("failed to collect security data", "source", c.security.Name(), "error", err)
				return
			}
			mu.Lock()
			snap.Security = sec
			mu.Unlock()
			c.logger.Info("collected security data", "source", c.security.Name(), "symbol", req.Symbol)
		}()
	}

	if c.index != nil && req.Address != "" && req.Chain == models.ChainSolana {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx, err := c.index.FetchHolders(ctx, req.Address, req.Chain)
			if err != nil {
				c.logger.Error("failed to collect holder index", "source", c.index.Name(), "error", err)
				return
			}
			mu.Lock()
			mergeHolderIndex(snap, idx)
			mu.Unlock()
			c.logger.Info("collected holder index", "source", c.index.Name(), "symbol", req.Symbol)
		}()
	}

	if c.social != nil && (req.TwitterHandle != "" || req.Symbol != "") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := c.social.FetchAdoptionScore(ctx, req.Symbol, req.TwitterHandle)
			if err != nil {
				c.logger.Error("failed to collect social metrics", "source", c.social.Name(), "error", err)
				return
			}
			mu.Lock()
			snap.SocialAdoptionScore = &score
			mu.Unlock()
			c.logger.Info("collected social metrics", "source", c.social.Name(), "symbol", req.Symbol)
		}()
	}

	wg.Wait()

	snap.Symbol = req.Symbol
	snap.Chain = req.Chain
	return snap, nil
}

func (c *MultiSourceCollector) collectMarket(ctx context.Context, req data.CollectRequest) (*models.TokenSnapshot, error) {
	for _, source := range c.markets {
		snap, err := source.FetchMarket(ctx, req.Symbol, req.Address, req.Chain)
		if err == nil && snap != nil {
			c.logger.Info("collected market data", "source", source.Name(), "symbol", req.Symbol)
			return snap, nil
		}
		c.logger.Error("failed to collect market data", "source", source.Name(), "error", err)
	}
	return nil, fmt.Errorf("failed to collect market data from all sources")
}

// mergeHolderIndex copies indexer fields onto the snapshot without
// clobbering values a market source already filled.
func mergeHolderIndex(snap *models.TokenSnapshot, idx *HolderIndex) {
	if idx.HolderCount != nil {
		snap.HolderCount = idx.HolderCount
	}
	if len(idx.TopHolders) > 0 {
		snap.TopHolders = idx.TopHolders
	}
	if idx.Top10HoldersPct != nil && snap.Top10HoldersPct == nil {
		snap.Top10HoldersPct = idx.Top10HoldersPct
	}
	if idx.FreezeAuthority != nil {
		snap.FreezeAuthorityExists = idx.FreezeAuthority
	}
	if idx.MintAuthority != nil {
		snap.MintAuthorityExists = idx.MintAuthority
	}
}
