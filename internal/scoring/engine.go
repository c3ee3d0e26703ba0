package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/songzhibin97/rugscan/internal/models"
)

var stablecoinSymbols = map[string]bool{
	"USDT": true, "USDC": true, "DAI": true, "BUSD": true,
	"TUSD": true, "USDP": true, "FRAX": true, "USDD": true,
}

// Engine scores token snapshots. It holds no mutable state and is safe to
// use concurrently; all I/O goes through the injected collaborators.
type Engine struct {
	classifier Classifier
	catalog    CatalogResolver
	logger     *slog.Logger
}

// NewEngine builds an engine. catalog may be nil, in which case the
// official-token stage never fires. classifier may be nil, in which case
// tokens score with a neutral utility classification.
func NewEngine(classifier Classifier, catalog CatalogResolver, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		classifier: classifier,
		catalog:    catalog,
		logger:     logger,
	}
}

// ScoreToken runs the full pipeline: classification, the ten factors, the
// weighted sum, the override cascade, and result assembly. The snapshot is
// not mutated and the returned result is never retained by the engine.
func (e *Engine) ScoreToken(ctx context.Context, snapshot *models.TokenSnapshot, plan models.Plan, meta *models.TokenMetadata) (*models.RiskResult, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("scoring: nil snapshot")
	}
	if plan != models.PlanPremium {
		plan = models.PlanFree
	}

	symbol := snapshot.Symbol
	name := snapshot.Name
	chain := snapshot.Chain
	if meta != nil {
		if meta.Symbol != "" {
			symbol = meta.Symbol
		}
		if meta.Name != "" {
			name = meta.Name
		}
		if meta.Chain != "" {
			chain = meta.Chain
		}
	}
	if chain == "" {
		chain = models.ChainEVM
	}

	// Known stablecoin with a real market cap: fixed low-risk profile,
	// everything else is bypassed.
	if stablecoinSymbols[strings.ToUpper(symbol)] && fval(snapshot.MarketCap) > 100_000_000 {
		e.logger.Debug("stablecoin override", "symbol", symbol)
		return stablecoinResult(symbol, plan), nil
	}

	class := e.classify(ctx, symbol, name, meta)
	e.logger.Debug("classification resolved",
		"symbol", symbol, "is_meme", class.IsMeme, "confidence", class.Confidence)

	breakdown := ComputeBreakdown(snapshot)
	weights := WeightsFor(class.IsMeme, chain)
	base := WeightedScore(breakdown, weights)

	official := e.lookupOfficial(ctx, snapshot, symbol, meta)

	st := &cascadeState{
		snapshot: snapshot,
		class:    class,
		official: official,
		dead:     CheckDeadToken(snapshot),
		flags:    ExtractCriticalFlags(snapshot),
		chain:    chain,
		name:     name,
		symbol:   symbol,
		score:    base,
	}
	runCascade(st)

	final := int(math.Round(st.score))
	result := &models.RiskResult{
		OverallScore: final,
		Tier:         classifyTier(final),
		Confidence:   confidenceFor(snapshot.HasSecurityData(), plan),
		Breakdown:    breakdown,
		DataSources:  dataSources(snapshot),
		Plan:         plan,
		ScoredAt:     time.Now().UTC(),
	}

	if plan == models.PlanFree {
		if final > 40 {
			result.UpgradeMessage = "Premium unlocks forecasts, critical flags, and detailed insights"
		}
		return result, nil
	}

	flags := st.flags
	if st.deadFlag != "" {
		flags = append(flags, st.deadFlag)
	}
	result.CriticalFlags = flags
	result.PositiveSignals = ExtractPositiveSignals(snapshot)
	result.UpcomingRisks = upcomingRisks(snapshot)
	result.Classification = class

	insights := []string{classificationInsight(class)}
	if class.IsMeme {
		insights = append(insights, "Meme baseline applied: +15 risk points for volatility and speculative nature")
	}
	insights = append(insights, GenerateInsights(breakdown, snapshot.HasSecurityData())...)
	if snapshot.SocialAdoptionScore != nil {
		insights = append(insights,
			fmt.Sprintf("Social metrics: adoption risk score %d/100 based on social presence", *snapshot.SocialAdoptionScore))
	}
	result.Insights = insights

	return result, nil
}

// classify resolves the token class, preferring the injected classifier
// and degrading to a neutral utility classification when nothing is known.
func (e *Engine) classify(ctx context.Context, symbol, name string, meta *models.TokenMetadata) *models.Classification {
	resolved := models.TokenMetadata{}
	if meta != nil {
		resolved = *meta
	}
	if resolved.Symbol == "" {
		resolved.Symbol = symbol
	}
	if resolved.Name == "" {
		resolved.Name = name
	}

	if e.classifier != nil && (resolved.Symbol != "" || resolved.Name != "" || resolved.ManualClassification != "") {
		if c := e.classifier.Resolve(ctx, &resolved); c != nil {
			return c
		}
	}
	return &models.Classification{
		IsMeme:     false,
		Confidence: 50,
		Rationale:  "No metadata available for classification",
	}
}

// lookupOfficial consults the reference catalog for tokens large enough to
// plausibly be listed. Failures are logged and treated as "not listed".
func (e *Engine) lookupOfficial(ctx context.Context, snapshot *models.TokenSnapshot, symbol string, meta *models.TokenMetadata) models.OfficialListing {
	if e.catalog == nil || symbol == "" || fval(snapshot.MarketCap) <= 50_000_000 {
		return models.OfficialListing{}
	}
	address := ""
	if meta != nil {
		address = meta.Address
	}
	listing := e.catalog.Resolve(ctx, symbol, address)
	if listing.IsOfficial {
		e.logger.Debug("official token detected",
			"symbol", symbol, "market_cap", listing.MarketCap)
	}
	return listing
}

func classifyTier(score int) models.RiskTier {
	switch {
	case score >= 75:
		return models.TierCritical
	case score >= 50:
		return models.TierHigh
	case score >= 35:
		return models.TierMedium
	default:
		return models.TierLow
	}
}

// confidenceFor reflects data completeness, not score magnitude.
func confidenceFor(hasSecurity bool, plan models.Plan) int {
	if hasSecurity {
		if plan == models.PlanPremium {
			return 96
		}
		return 85
	}
	if plan == models.PlanPremium {
		return 78
	}
	return 70
}

func dataSources(s *models.TokenSnapshot) []string {
	var sources []string
	if fval(s.MarketCap) > 0 {
		sources = append(sources, "Mobula")
	}
	if ival(s.TxCount24h) > 0 && !s.TxCount24hEstimated {
		sources = append(sources, "Moralis")
	}
	if s.HasSecurityData() {
		sources = append(sources, "GoPlus Security")
	}
	if s.Chain == models.ChainSolana && ival(s.HolderCount) > 0 {
		sources = append(sources, "Helius")
	}
	if len(sources) == 0 {
		sources = append(sources, "Mobula (security fallback active)")
	}
	return sources
}

func upcomingRisks(s *models.TokenSnapshot) *models.UpcomingRisks {
	unlock := fval(s.NextUnlock30dPct)
	forecast := "LOW"
	switch {
	case unlock > 0.3:
		forecast = "EXTREME"
	case unlock > 0.15:
		forecast = "HIGH"
	case unlock > 0.05:
		forecast = "MEDIUM"
	}
	return &models.UpcomingRisks{Next30Days: unlock, Forecast: forecast}
}

func classificationInsight(c *models.Classification) string {
	prefix := "AI classification"
	if c.IsManualOverride {
		prefix = "Manual classification"
	}
	kind := "UTILITY TOKEN"
	if c.IsMeme {
		kind = "MEME TOKEN"
	}
	return fmt.Sprintf("%s: %s (%d%% confident) - %s", prefix, kind, c.Confidence, c.Rationale)
}

func stablecoinResult(symbol string, plan models.Plan) *models.RiskResult {
	result := &models.RiskResult{
		OverallScore: 10,
		Tier:         models.TierLow,
		Confidence:   99,
		DataSources:  []string{"Known Stablecoin"},
		Plan:         plan,
		Breakdown: models.RiskBreakdown{
			SupplyDilution:      5,
			HolderConcentration: 10,
			LiquidityDepth:      5,
			Distribution:        5,
			BurnDeflation:       5,
		},
		ScoredAt: time.Now().UTC(),
	}
	if plan == models.PlanPremium {
		result.Insights = []string{
			fmt.Sprintf("Recognized as major stablecoin (%s)", strings.ToUpper(symbol)),
			"Battle-tested and widely trusted in the crypto ecosystem",
			"Low volatility risk due to USD peg mechanism",
		}
	}
	return result
}
