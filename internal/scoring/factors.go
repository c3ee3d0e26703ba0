package scoring

import (
	"math"
	"regexp"

	"github.com/songzhibin97/rugscan/internal/models"
)

// Each factor is a pure (snapshot) -> 0..100 function. The shared contract:
// missing inputs map to a risk-conservative score, never to a crash and
// never to zero risk.

var memeSymbolPattern = regexp.MustCompile(`(?i)doge|shib|pepe|floki|inu|moon|pump|69|420`)

func fval(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func ival(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func capScore(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// ComputeBreakdown runs all ten factor calculators. Every field is always
// populated.
func ComputeBreakdown(s *models.TokenSnapshot) models.RiskBreakdown {
	return models.RiskBreakdown{
		SupplyDilution:      scoreSupplyDilution(s),
		HolderConcentration: scoreHolderConcentration(s),
		LiquidityDepth:      scoreLiquidityDepth(s),
		VestingUnlock:       scoreVestingUnlock(s),
		ContractControl:     scoreContractControl(s),
		TaxFee:              scoreTaxFee(s),
		Distribution:        scoreDistribution(s),
		BurnDeflation:       scoreBurnDeflation(s),
		Adoption:            scoreAdoption(s),
		AuditTransparency:   scoreAuditTransparency(s),
	}
}

// scoreSupplyDilution rates future dilution via the FDV/market-cap ratio.
// An unverifiable ratio fails safe to 100, not to a neutral default.
func scoreSupplyDilution(s *models.TokenSnapshot) int {
	if s.FDV == nil || *s.FDV <= 0 || s.MarketCap == nil || *s.MarketCap <= 0 {
		return 100
	}

	ratio := *s.FDV / *s.MarketCap
	var score int
	switch {
	case ratio <= 1:
		score = 10
	case ratio <= 2:
		score = 30
	case ratio <= 5:
		score = 50
	case ratio <= 10:
		score = 70
	default:
		score = 90
	}

	if s.Security != nil && s.Security.IsMintable {
		score += 20
	}

	// Uncapped supply that has never burned anything keeps diluting forever.
	if s.MaxSupply == nil && fval(s.BurnedSupply) == 0 {
		score += 15
	}

	return capScore(score)
}

// scoreHolderConcentration combines the normalized concentration score with
// a unique-buyers wash-trading penalty.
func scoreHolderConcentration(s *models.TokenSnapshot) int {
	conc := NormalizeConcentration(s)
	if !conc.HasData {
		return 50 // no holder signal at all
	}

	score := conc.Score

	if s.UniqueBuyers24h != nil {
		switch ub := *s.UniqueBuyers24h; {
		case ub < 10:
			score += 50
		case ub < 25:
			score += 40
		case ub < 50:
			score += 30
		case ub < 100:
			score += 20
		case ub < 200:
			score += 10
		}
	}

	return capScore(score)
}

// scoreLiquidityDepth rates exit liquidity. Anything under $10K trips the
// zero-liquidity guard and maxes the factor regardless of other signals.
func scoreLiquidityDepth(s *models.TokenSnapshot) int {
	liq := fval(s.LiquidityUSD)
	if s.LiquidityUSD == nil || liq < 10_000 {
		return 100
	}

	score := 0
	switch {
	case liq < 25_000:
		score += 42
	case liq < 50_000:
		score += 32
	case liq < 100_000:
		score += 25
	case liq < 250_000:
		score += 18
	case liq < 500_000:
		score += 10
	case liq < 1_000_000:
		score += 5
	}

	if mc := fval(s.MarketCap); mc > 0 {
		switch ratio := mc / liq; {
		case ratio > 500:
			score += 38
		case ratio > 300:
			score += 32
		case ratio > 200:
			score += 28
		case ratio > 100:
			score += 22
		case ratio > 50:
			score += 15
		case ratio > 20:
			score += 8
		}
	}

	// Liquidity walking out the door is the live rug signal.
	if prev := fval(s.Liquidity1hAgo); prev > 0 {
		switch drop := (prev - liq) / prev; {
		case drop > 0.8:
			score += 60
		case drop > 0.6:
			score += 45
		case drop > 0.4:
			score += 30
		case drop > 0.2:
			score += 15
		}
	}
	if prev := fval(s.Liquidity24hAgo); prev > 0 {
		switch drop := (prev - liq) / prev; {
		case drop > 0.9:
			score += 50
		case drop > 0.7:
			score += 35
		case drop > 0.5:
			score += 20
		}
	}

	if s.Security != nil {
		locked := s.Security.LPLocked != nil && *s.Security.LPLocked
		if !locked && s.Security.LPInOwnerWallet {
			score += 30
		} else if locked {
			score -= 10
			if score < 0 {
				score = 0
			}
		}
	}

	return capScore(score)
}

// scoreVestingUnlock penalizes imminent unlocks and short team vesting.
// Reported but excluded from the weighted sum.
func scoreVestingUnlock(s *models.TokenSnapshot) int {
	score := 0
	if s.NextUnlock30dPct != nil {
		switch unlock := *s.NextUnlock30dPct; {
		case unlock > 0.25:
			score += 30
		case unlock > 0.15:
			score += 20
		case unlock > 0.10:
			score += 15
		case unlock > 0.05:
			score += 10
		}
	}

	if s.TeamVestingMonths != nil {
		switch months := *s.TeamVestingMonths; {
		case months == 0 && fval(s.TeamAllocationPct) > 0.1:
			score += 40
		case months < 12:
			score += 25
		case months < 24:
			score += 15
		}
	}
	return capScore(score)
}

// scoreContractControl rates privileged-key risk. Solana freeze authority
// is catastrophic; an unknown freeze status is never assumed safe.
func scoreContractControl(s *models.TokenSnapshot) int {
	if !s.HasSecurityData() && s.Chain != models.ChainSolana {
		return contractControlFallback(s)
	}

	score := 0
	sec := s.Security

	if sec != nil && sec.IsHoneypot {
		score += 60
	}
	if sec != nil && sec.IsMintable {
		score += 50
	}

	if s.Chain == models.ChainSolana {
		switch {
		case s.FreezeAuthorityExists != nil && *s.FreezeAuthorityExists:
			score += 100
		case s.FreezeAuthorityExists == nil:
			// Most SPL tokens launch with a freeze authority; missing data
			// gets a conservative penalty, not a pass.
			score += 35
		}
	}

	if sec != nil && sec.LPInOwnerWallet {
		score += 40
	}

	if sec != nil && !sec.OwnerRenounced && score == 0 {
		score += 20
	}

	if score == 0 && sec != nil && sec.OwnerRenounced {
		return 0
	}

	if sec == nil && s.Chain == models.ChainSolana && score == 0 {
		return contractControlFallback(s)
	}

	return capScore(score)
}

// contractControlFallback estimates control risk from holder and age
// heuristics when no security provider responded.
func contractControlFallback(s *models.TokenSnapshot) int {
	score := 20 // uncertainty baseline
	if fval(s.Top10HoldersPct) > 0.8 {
		score += 35
	}
	if s.HolderCount != nil && *s.HolderCount < 100 {
		score += 25
	}
	if s.AgeDays != nil && *s.AgeDays < 7 {
		score += 20
	}
	return capScore(score)
}

// scoreTaxFee is only computable with security-provider data; otherwise the
// factor stays at a neutral 50.
func scoreTaxFee(s *models.TokenSnapshot) int {
	if !s.HasSecurityData() {
		return 50
	}
	sec := s.Security

	score := 0
	switch {
	case sec.SellTax > 0.3:
		score += 60
	case sec.SellTax > 0.2:
		score += 40
	case sec.SellTax > 0.1:
		score += 20
	}
	if sec.BuyTax > 0.15 {
		score += 20
	}
	if sec.TaxModifiable {
		score += 30
	}
	return capScore(score)
}

// scoreDistribution rates team allocation and top-10 spread. With no real
// distribution signal the factor assumes concentration, not fairness.
func scoreDistribution(s *models.TokenSnapshot) int {
	if s.Top10HoldersPct == nil && s.TeamAllocationPct == nil {
		return 65
	}

	score := 0
	if s.TeamAllocationPct != nil {
		switch team := *s.TeamAllocationPct; {
		case team > 0.4:
			score += 35
		case team > 0.3:
			score += 25
		case team > 0.2:
			score += 15
		}
	}

	if s.Top10HoldersPct != nil {
		switch top10 := *s.Top10HoldersPct; {
		case top10 >= 0.80:
			score += 55
		case top10 >= 0.70:
			score += 45
		case top10 >= 0.60:
			score += 35
		case top10 >= 0.50:
			score += 25
		case top10 >= 0.40:
			score += 15
		case top10 >= 0.30:
			score += 8
		}
	}

	return capScore(score)
}

// scoreBurnDeflation scales inversely with the burn ratio. Young
// meme-pattern tokens get a binary rule instead of the ladder.
func scoreBurnDeflation(s *models.TokenSnapshot) int {
	if s.TotalSupply == nil || *s.TotalSupply == 0 {
		return 50
	}

	hasCap := s.MaxSupply != nil && *s.MaxSupply > 0
	burned := fval(s.BurnedSupply)

	if !hasCap && burned == 0 {
		return 80 // unlimited, unburned emission
	}

	burnRatio := burned / *s.TotalSupply

	ageDays := 999.0
	if s.AgeDays != nil {
		ageDays = *s.AgeDays
	}
	if memeSymbolPattern.MatchString(s.Symbol) && ageDays <= 60 {
		if burnRatio*100 < 1 {
			return 10
		}
		return 0
	}

	switch {
	case burnRatio > 0.5:
		return 10
	case burnRatio > 0.2:
		return 30
	case burnRatio > 0.05:
		return 50
	case hasCap && burnRatio > 0:
		return 40
	case hasCap:
		return 60
	}
	return 70
}

// scoreAdoption rates on-chain activity. Tokens younger than 7 days get the
// heavy penalties scaled down 30% since early activity is naturally thin.
// A social-metrics adoption score, when present, overrides the heuristic.
func scoreAdoption(s *models.TokenSnapshot) int {
	if s.SocialAdoptionScore != nil {
		return capScore(*s.SocialAdoptionScore)
	}

	ageDays := fval(s.AgeDays)
	ageMult := 1.0
	if s.AgeDays != nil && ageDays < 7 {
		ageMult = 0.7
	}
	scaled := func(n int) int { return int(math.Round(float64(n) * ageMult)) }

	score := 0
	switch tx := ival(s.TxCount24h); {
	case s.TxCount24h == nil || tx == 0:
		score += scaled(45)
	case tx < 5:
		score += scaled(38)
	case tx < 10:
		score += scaled(32)
	case tx < 25:
		score += scaled(26)
	case tx < 50:
		score += 20
	case tx < 100:
		score += 14
	case tx < 250:
		score += 8
	case tx < 500:
		score += 3
	}

	if mc := fval(s.MarketCap); mc > 0 && s.Volume24h != nil {
		switch ratio := *s.Volume24h / mc; {
		case ratio < 0.0001:
			score += scaled(32)
		case ratio < 0.001:
			score += scaled(26)
		case ratio < 0.005:
			score += 20
		case ratio < 0.01:
			score += 14
		case ratio > 5:
			score += 25 // excessive churn, always penalized
		case ratio > 3:
			score += 18
		case ratio > 2:
			score += 12
		}
	}

	if s.AgeDays != nil {
		switch {
		case ageDays < 1:
			score += 8
		case ageDays < 3:
			score += 6
		case ageDays < 7:
			score += 4
		case ageDays < 14:
			score += 2
		case ageDays < 30:
			score += 1
		}
	}

	return capScore(score)
}

// scoreAuditTransparency rates code verification; without security data it
// falls back to a moderate baseline plus a thin-liquidity penalty.
func scoreAuditTransparency(s *models.TokenSnapshot) int {
	if s.HasSecurityData() {
		score := 0
		if !s.Security.IsOpenSource {
			score += 50
		}
		locked := s.Security.LPLocked != nil && *s.Security.LPLocked
		if !locked {
			score += 30
		}
		return capScore(score)
	}

	score := 60
	if liq := fval(s.LiquidityUSD); liq > 0 {
		if fval(s.MarketCap)/liq > 100 {
			score += 20
		}
	}
	return capScore(score)
}
