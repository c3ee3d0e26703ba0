package scoring

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/songzhibin97/rugscan/internal/models"
)

func breakdownFields(b models.RiskBreakdown) []int {
	return []int{
		b.SupplyDilution, b.HolderConcentration, b.LiquidityDepth,
		b.VestingUnlock, b.ContractControl, b.TaxFee, b.Distribution,
		b.BurnDeflation, b.Adoption, b.AuditTransparency,
	}
}

func TestBreakdownProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	snapGen := func(mc, fdv, liq, top10 float64, holders, tx int) *models.TokenSnapshot {
		snap := &models.TokenSnapshot{Chain: models.ChainEVM}
		if mc > 0 {
			snap.MarketCap = &mc
		}
		if fdv > 0 {
			snap.FDV = &fdv
		}
		if liq > 0 {
			snap.LiquidityUSD = &liq
		}
		if top10 > 0 {
			snap.Top10HoldersPct = &top10
		}
		if holders > 0 {
			snap.HolderCount = &holders
		}
		if tx > 0 {
			snap.TxCount24h = &tx
		}
		return snap
	}

	properties.Property("every factor stays within 0..100", prop.ForAll(
		func(mc, fdv, liq, top10 float64, holders, tx int) bool {
			b := ComputeBreakdown(snapGen(mc, fdv, liq, top10, holders, tx))
			for _, v := range breakdownFields(b) {
				if v < 0 || v > 100 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1e12),
		gen.Float64Range(0, 1e13),
		gen.Float64Range(0, 1e9),
		gen.Float64Range(0, 1),
		gen.IntRange(0, 10_000_000),
		gen.IntRange(0, 1_000_000),
	))

	properties.Property("breakdown is deterministic", prop.ForAll(
		func(mc, fdv, liq, top10 float64, holders, tx int) bool {
			snap := snapGen(mc, fdv, liq, top10, holders, tx)
			return ComputeBreakdown(snap) == ComputeBreakdown(snap)
		},
		gen.Float64Range(0, 1e12),
		gen.Float64Range(0, 1e13),
		gen.Float64Range(0, 1e9),
		gen.Float64Range(0, 1),
		gen.IntRange(0, 10_000_000),
		gen.IntRange(0, 1_000_000),
	))

	properties.Property("concentration score never decreases as top10 grows", prop.ForAll(
		func(a, b float64) bool {
			lo, hi := a, b
			if lo > hi {
				lo, hi = hi, lo
			}
			low := NormalizeConcentration(&models.TokenSnapshot{Top10HoldersPct: &lo})
			high := NormalizeConcentration(&models.TokenSnapshot{Top10HoldersPct: &hi})
			return low.Score <= high.Score
		},
		gen.Float64Range(0.01, 1),
		gen.Float64Range(0.01, 1),
	))

	properties.TestingRun(t)
}

func TestScoreTokenProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	engine := NewEngine(utilityClassifier(), nil, nil)

	properties.Property("overall score stays within 0..100", prop.ForAll(
		func(mc, fdv, liq, vol float64, holders, tx int, isMeme bool) bool {
			snap := &models.TokenSnapshot{
				Symbol: "PROP",
				Chain:  models.ChainEVM,
			}
			if mc > 0 {
				snap.MarketCap = &mc
			}
			if fdv > 0 {
				snap.FDV = &fdv
			}
			if liq > 0 {
				snap.LiquidityUSD = &liq
			}
			if vol > 0 {
				snap.Volume24h = &vol
			}
			if holders > 0 {
				snap.HolderCount = &holders
			}
			if tx > 0 {
				snap.TxCount24h = &tx
			}

			e := engine
			if isMeme {
				e = NewEngine(memeClassifier(), nil, nil)
			}
			result, err := e.ScoreToken(context.Background(), snap, models.PlanPremium, nil)
			if err != nil {
				return false
			}
			return result.OverallScore >= 0 && result.OverallScore <= 100
		},
		gen.Float64Range(0, 1e12),
		gen.Float64Range(0, 1e13),
		gen.Float64Range(0, 1e9),
		gen.Float64Range(0, 1e10),
		gen.IntRange(0, 10_000_000),
		gen.IntRange(0, 1_000_000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
