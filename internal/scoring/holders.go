package scoring

import "github.com/songzhibin97/rugscan/internal/models"

// ConcentrationResult is the normalized holder-concentration view, built
// either from provider percentages or from raw top-holder balances.
type ConcentrationResult struct {
	Top10Pct float64
	Top1Pct  float64
	Score    int
	// HasData is false when neither percentages nor raw balances exist.
	HasData bool
}

// NormalizeConcentration reconciles the two holder-data shapes into one
// concentration score. EVM indexers hand us pre-aggregated percentages;
// Solana indexers hand us raw balances plus total supply.
func NormalizeConcentration(s *models.TokenSnapshot) ConcentrationResult {
	res := ConcentrationResult{}

	if s.Top10HoldersPct != nil {
		res.Top10Pct = *s.Top10HoldersPct
		res.HasData = true
	}

	if len(s.TopHolders) > 0 && s.TotalSupply != nil && *s.TotalSupply > 0 {
		total := *s.TotalSupply
		res.Top1Pct = s.TopHolders[0].Balance / total
		if !res.HasData {
			var top10 float64
			for i, h := range s.TopHolders {
				if i >= 10 {
					break
				}
				top10 += h.Balance
			}
			res.Top10Pct = top10 / total
			res.HasData = true
		}
	}

	if !res.HasData && s.HolderCount == nil {
		return res
	}

	score := 0

	switch {
	case res.Top10Pct > 0.90:
		score += 50
	case res.Top10Pct > 0.80:
		score += 45
	case res.Top10Pct > 0.70:
		score += 40
	case res.Top10Pct > 0.60:
		score += 35
	case res.Top10Pct > 0.50:
		score += 28
	case res.Top10Pct > 0.40:
		score += 20
	case res.Top10Pct > 0.30:
		score += 12
	case res.Top10Pct > 0.20:
		score += 5
	}

	// A single wallet holding 40%+ of supply can unilaterally collapse the
	// market. Floor at 94 no matter what the ladders said.
	if res.Top1Pct >= 0.40 {
		if score < 94 {
			score = 94
		}
	}

	if s.HolderCount != nil {
		switch hc := *s.HolderCount; {
		case hc == 0:
			score += 40
		case hc < 50:
			score += 35
		case hc < 100:
			score += 30
		case hc < 200:
			score += 25
		case hc < 500:
			score += 18
		case hc < 1000:
			score += 10
		case hc < 5000:
			score += 5
		}
		res.HasData = true
	}

	// Wash-trading / bundle patterns: near-total supply sitting in the top
	// 50 or top 100 wallets.
	if s.Top50HoldersPct != nil && *s.Top50HoldersPct > 0.95 {
		score += 30
	}
	if s.Top100HoldersPct != nil && *s.Top100HoldersPct > 0.98 {
		score += 25
	}

	if score > 100 {
		score = 100
	}
	res.Score = score
	return res
}
