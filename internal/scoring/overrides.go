package scoring

import (
	"regexp"

	"github.com/songzhibin97/rugscan/internal/models"
)

// cascadeState is the mutable score plus everything the stages consult.
// Stages only ever raise the floor or apply their documented adjustment;
// none silently undoes a later, more specific stage.
type cascadeState struct {
	snapshot *models.TokenSnapshot
	class    *models.Classification
	official models.OfficialListing
	dead     DeadTokenCheck
	flags    []string
	chain    models.Chain
	name     string
	symbol   string

	// deadFlag is reported alongside the flags but kept out of the
	// critical-flag escalation count, which covers contract and holder
	// patterns only.
	deadFlag string

	score float64
}

type cascadeStage struct {
	name  string
	apply func(*cascadeState)
}

// cascade is the fixed override order. The stablecoin short-circuit runs
// before any factor is computed and so lives in the engine, not here.
var cascade = []cascadeStage{
	{"meme_baseline", applyMemeBaseline},
	{"official_token", applyOfficialOverride},
	{"dead_token", applyDeadTokenOverride},
	{"top1_holder", applyTopHolderOverride},
	{"solana_meme_rug", applySolanaMemeRug},
	{"critical_flags", applyCriticalFlagEscalation},
}

func runCascade(st *cascadeState) {
	for _, stage := range cascade {
		stage.apply(st)
	}
	if st.score > 100 {
		st.score = 100
	}
	if st.score < 0 {
		st.score = 0
	}
}

// applyMemeBaseline adds a flat 15 points to meme-classified tokens before
// any other stage runs. Meme coins carry baseline speculative risk the
// factors alone do not capture.
func applyMemeBaseline(st *cascadeState) {
	if st.class == nil || !st.class.IsMeme {
		return
	}
	st.score += 15
	if st.score > 100 {
		st.score = 100
	}
}

// applyOfficialOverride de-risks catalog-verified, high-market-cap assets.
// The bonus shrinks for meme-classified tokens: being listed does not make
// a meme coin less volatile.
func applyOfficialOverride(st *cascadeState) {
	if !st.official.IsOfficial {
		return
	}

	isMeme := st.class != nil && st.class.IsMeme
	bonus := 45.0
	if isMeme {
		bonus = 25.0
	}
	st.score -= bonus

	switch mc := st.official.MarketCap; {
	case mc > 1_000_000_000:
		if isMeme {
			st.score -= 5
		} else {
			st.score -= 10
		}
	case mc > 500_000_000:
		if isMeme {
			st.score -= 3
		} else {
			st.score -= 5
		}
	}

	if st.score < 0 {
		st.score = 0
	}
}

// applyDeadTokenOverride forces abandoned tokens to the detector's floor.
// Catalog-verified assets are skipped: noisy data must not flag a listed
// asset as dead.
func applyDeadTokenOverride(st *cascadeState) {
	if !st.dead.IsDead || st.official.IsOfficial {
		return
	}
	if st.score < float64(st.dead.Score) {
		st.score = float64(st.dead.Score)
	}
	st.deadFlag = "DEAD TOKEN: " + st.dead.Reason
}

// applyTopHolderOverride re-applies the 40% single-holder rule at the
// aggregate level, on raw holder data, independent of the per-factor score.
func applyTopHolderOverride(st *cascadeState) {
	s := st.snapshot
	if len(s.TopHolders) == 0 || s.TotalSupply == nil || *s.TotalSupply <= 0 {
		return
	}
	top1 := s.TopHolders[0].Balance / *s.TotalSupply
	if top1 >= 0.40 && st.score < 94 {
		st.score = 94
	}
}

var rugNamePattern = regexp.MustCompile(`(?i)official|real|2\.0|67|69|420|1000x|pump|moon`)

// applySolanaMemeRug accumulates coordinated-rug pattern penalties for
// young Solana memes, then forces any resulting high score into the
// critical zone. These patterns must never be left at a merely HIGH tier.
func applySolanaMemeRug(st *cascadeState) {
	if st.class == nil || !st.class.IsMeme || st.chain != models.ChainSolana {
		return
	}
	s := st.snapshot
	if s.AgeDays != nil && *s.AgeDays > 60 {
		return
	}

	penalty := 0.0

	if fval(s.MarketCap) > 15_000_000 && fval(s.LiquidityUSD) < 1_200_000 {
		penalty += 40 // high cap backed by thin exit liquidity
	}
	if fval(s.MarketCap) > 10_000_000 && ival(s.HolderCount) < 1500 {
		penalty += 30 // bundled wallets
	}
	if rugNamePattern.MatchString(st.name + st.symbol) {
		penalty += 20
	}
	if fval(s.Volume24h) > 5_000_000 && ival(s.HolderCount) < 1000 {
		penalty += 20 // wash trading
	}

	burnedPct := 0.0
	if s.BurnedSupply != nil && s.TotalSupply != nil && *s.TotalSupply > 0 {
		burnedPct = *s.BurnedSupply / *s.TotalSupply * 100
	}
	if burnedPct < 1 {
		penalty += 20
	}

	st.score += penalty

	if st.score >= 70 && st.score < 92 {
		st.score = 92
	}
}

// applyCriticalFlagEscalation escalates on the count of critical flags:
// three or more forces at least 75, one or two adds a flat 15.
func applyCriticalFlagEscalation(st *cascadeState) {
	switch n := len(st.flags); {
	case n >= 3:
		if st.score < 75 {
			st.score = 75
		}
	case n >= 1:
		st.score += 15
		if st.score > 100 {
			st.score = 100
		}
	}
}
