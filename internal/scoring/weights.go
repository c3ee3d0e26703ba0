package scoring

import "github.com/songzhibin97/rugscan/internal/models"

// FactorWeights is a nine-factor weight vector. Vesting is excluded from
// the weighted sum on purpose: unlock pressure is reported separately so a
// long vesting cliff cannot dilute acute on-chain risk.
type FactorWeights struct {
	SupplyDilution      float64
	HolderConcentration float64
	LiquidityDepth      float64
	ContractControl     float64
	TaxFee              float64
	Distribution        float64
	BurnDeflation       float64
	Adoption            float64
	Audit               float64
}

// Standard tokens (DeFi, utility). Balanced across supply control, holder
// distribution and liquidity.
var standardWeights = FactorWeights{
	SupplyDilution:      0.16,
	HolderConcentration: 0.20,
	LiquidityDepth:      0.15,
	ContractControl:     0.14,
	TaxFee:              0.09,
	Distribution:        0.07,
	BurnDeflation:       0.05,
	Adoption:            0.10,
	Audit:               0.04,
}

// Meme coins are sentiment-driven: whales, liquidity and social adoption
// dominate, audits barely matter.
var memeWeights = FactorWeights{
	SupplyDilution:      0.12,
	HolderConcentration: 0.24,
	LiquidityDepth:      0.20,
	ContractControl:     0.11,
	TaxFee:              0.09,
	Distribution:        0.06,
	BurnDeflation:       0.02,
	Adoption:            0.15,
	Audit:               0.01,
}

// Solana utility tokens: freeze/mint authority makes contract control the
// dominant factor; SPL tokens have no tax mechanism.
var solanaWeights = FactorWeights{
	SupplyDilution:      0.11,
	HolderConcentration: 0.18,
	LiquidityDepth:      0.15,
	ContractControl:     0.35,
	TaxFee:              0.00,
	Distribution:        0.05,
	BurnDeflation:       0.03,
	Adoption:            0.10,
	Audit:               0.03,
}

// Cardano utility tokens: minting-policy locks make supply policy the key
// signal; no tax mechanism.
var cardanoWeights = FactorWeights{
	SupplyDilution:      0.25,
	HolderConcentration: 0.13,
	LiquidityDepth:      0.13,
	ContractControl:     0.17,
	TaxFee:              0.00,
	Distribution:        0.12,
	BurnDeflation:       0.06,
	Adoption:            0.09,
	Audit:               0.05,
}

// WeightsFor selects the active profile. Meme classification wins over
// chain: a meme coin is scored as a meme coin no matter where it trades.
func WeightsFor(isMeme bool, chain models.Chain) FactorWeights {
	if isMeme {
		return memeWeights
	}
	switch chain {
	case models.ChainSolana:
		return solanaWeights
	case models.ChainCardano:
		return cardanoWeights
	default:
		return standardWeights
	}
}

// WeightedScore combines the nine weighted factors of a breakdown.
func WeightedScore(b models.RiskBreakdown, w FactorWeights) float64 {
	return float64(b.SupplyDilution)*w.SupplyDilution +
		float64(b.HolderConcentration)*w.HolderConcentration +
		float64(b.LiquidityDepth)*w.LiquidityDepth +
		float64(b.ContractControl)*w.ContractControl +
		float64(b.TaxFee)*w.TaxFee +
		float64(b.Distribution)*w.Distribution +
		float64(b.BurnDeflation)*w.BurnDeflation +
		float64(b.Adoption)*w.Adoption +
		float64(b.AuditTransparency)*w.Audit
}

// Sum returns the total of the nine weights, used to sanity-check profiles.
func (w FactorWeights) Sum() float64 {
	return w.SupplyDilution + w.HolderConcentration + w.LiquidityDepth +
		w.ContractControl + w.TaxFee + w.Distribution + w.BurnDeflation +
		w.Adoption + w.Audit
}
