package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/songzhibin97/rugscan/internal/catalog"
	"github.com/songzhibin97/rugscan/internal/classify"
	"github.com/songzhibin97/rugscan/internal/classify/llm"
	"github.com/songzhibin97/rugscan/internal/configs"
	"github.com/songzhibin97/rugscan/internal/data"
	"github.com/songzhibin97/rugscan/internal/data/collector"
	"github.com/songzhibin97/rugscan/internal/data/collector/binance"
	"github.com/songzhibin97/rugscan/internal/data/collector/goplus"
	"github.com/songzhibin97/rugscan/internal/data/collector/helius"
	"github.com/songzhibin97/rugscan/internal/data/collector/mobula"
	"github.com/songzhibin97/rugscan/internal/data/collector/twitter"
	"github.com/songzhibin97/rugscan/internal/data/storage"
	"github.com/songzhibin97/rugscan/internal/models"
	"github.com/songzhibin97/rugscan/internal/scoring"
	"github.com/songzhibin97/rugscan/internal/utils/request"
)

type ScanSystem struct {
	config    *configs.Config
	collector data.SnapshotCollector
	storage   data.ScanStorage
	engine    *scoring.Engine
}

func NewScanSystem(
	config *configs.Config,
	snapCollector data.SnapshotCollector,
	scanStorage data.ScanStorage,
	engine *scoring.Engine,
) *ScanSystem {
	return &ScanSystem{
		config:    config,
		collector: snapCollector,
		storage:   scanStorage,
		engine:    engine,
	}
}

// Run scans every configured token once: reuse a fresh stored result if
// one exists, otherwise collect, score, persist, and print.
func (s *ScanSystem) Run(ctx context.Context) error {
	plan := models.PlanFree
	if s.config.Plan == string(models.PlanPremium) {
		plan = models.PlanPremium
	}

	scanTTL, err := time.ParseDuration(s.config.ScanTTL)
	if err != nil {
		scanTTL = time.Hour
	}

	for _, token := range s.config.Tokens {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.scanToken(ctx, token, plan, scanTTL); err != nil {
			log.Error("scan failed", "symbol", token.Symbol, "err", err)
		}
	}
	return nil
}

func (s *ScanSystem) scanToken(ctx context.Context, token configs.TokenConfig, plan models.Plan, scanTTL time.Duration) error {
	chain := models.Chain(token.Chain)
	if chain == "" {
		chain = models.ChainEVM
	}

	if s.storage != nil && token.Address != "" {
		cached, err := s.storage.LatestScan(ctx, token.Address, chain, scanTTL)
		if err != nil {
			log.Error("stored scan lookup failed", "symbol", token.Symbol, "err", err)
		}
		if cached != nil {
			log.Info("reusing stored scan", "symbol", token.Symbol, "score", cached.OverallScore)
			return printResult(cached)
		}
	}

	snapshot, err := s.collector.Collect(ctx, data.CollectRequest{
		Symbol:        token.Symbol,
		Address:       token.Address,
		Chain:         chain,
		TwitterHandle: token.TwitterHandle,
	})
	if err != nil {
		return err
	}
	snapshot.Name = token.Name

	meta := &models.TokenMetadata{
		Symbol:               token.Symbol,
		Name:                 token.Name,
		Address:              token.Address,
		Chain:                chain,
		TwitterHandle:        token.TwitterHandle,
		ManualClassification: token.ManualClassification,
	}

	result, err := s.engine.ScoreToken(ctx, snapshot, plan, meta)
	if err != nil {
		return err
	}

	log.Info("token scored",
		"symbol", token.Symbol, "score", result.OverallScore, "tier", result.Tier)

	if s.storage != nil {
		if err := s.storage.SaveScan(ctx, token.Symbol, token.Address, chain, result); err != nil {
			log.Error("failed to persist scan", "symbol", token.Symbol, "err", err)
		}
	}

	return printResult(result)
}

func printResult(result *models.RiskResult) error {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}

var (
	flagconf string

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   true,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.json", "config path, eg: -conf config.json")
}

func main() {
	flag.Parse()

	config, err := configs.Load(flagconf)
	if err != nil {
		log.Error("Error loading config", "err", err)
		return
	}

	log.Debug("Loaded config", "tokens", len(config.Tokens), "plan", config.Plan)

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}

	snapCollector := collector.NewMultiSourceCollector(
		[]collector.MarketSource{
			mobula.NewMobulaDataSource(config.Providers.MobulaAPIKey),
			binance.NewBinanceDataSource(config.Providers.BinanceAPIKey, config.Providers.BinanceSecretKey),
		},
		goplus.NewGoPlusDataSource(config.Providers.GoPlusChainID),
		helius.NewHeliusDataSource(config.Providers.HeliusAPIKey),
		twitter.NewTwitterDataSource(config.Providers.TwitterBearerToken),
		log,
	)

	log.Debug("init collector")

	var scanStorage data.ScanStorage
	if config.Database.ConnStr != "" {
		storager, err := storage.NewPostgresStorage(config.Database.ConnStr)
		if err != nil {
			log.Error("Error creating storage", "err", err)
			return
		}
		defer storager.Close()
		scanStorage = storager

		log.Debug("init storager")
	}

	var catalogCache catalog.Cache = catalog.NopCache{}
	if config.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer client.Close()
		catalogCache = catalog.NewRedisCache(client)

		log.Debug("init redis cache")
	}

	resolver := catalog.NewCoinGecko(request.Request, catalogCache, log)

	var detector *classify.Detector
	if config.LLM.APIKey != "" {
		detector = classify.NewDetector(
			llm.NewClient(config.LLM.APIKey, config.LLM.BaseURL, config.LLM.Model), 0, log)
	} else {
		detector = classify.NewDetector(nil, 0, log)
	}

	log.Debug("init detector")

	engine := scoring.NewEngine(detector, resolver, log)

	system := NewScanSystem(config, snapCollector, scanStorage, engine)

	ctx := context.Background()
	if err := system.Run(ctx); err != nil {
		log.Error("System error", "err", err)
	}
}
