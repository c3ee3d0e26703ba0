package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/songzhibin97/rugscan/internal/models"
)

func TestApplyMemeBaseline(t *testing.T) {
	t.Run("adds 15 to memes", func(t *testing.T) {
		st := &cascadeState{class: &models.Classification{IsMeme: true}, score: 40}
		applyMemeBaseline(st)
		assert.Equal(t, 55.0, st.score)
	})

	t.Run("utility untouched", func(t *testing.T) {
		st := &cascadeState{class: &models.Classification{IsMeme: false}, score: 40}
		applyMemeBaseline(st)
		assert.Equal(t, 40.0, st.score)
	})

	t.Run("clamps at 100", func(t *testing.T) {
		st := &cascadeState{class: &models.Classification{IsMeme: true}, score: 95}
		applyMemeBaseline(st)
		assert.Equal(t, 100.0, st.score)
	})
}

func TestApplyOfficialOverride(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		official models.OfficialListing
		isMeme   bool
		want     float64
	}{
		{
			name:  "not listed is untouched",
			score: 60,
			want:  60,
		},
		{
			name:     "utility listing gets full discount",
			score:    60,
			official: models.OfficialListing{IsOfficial: true, MarketCap: 100_000_000},
			want:     15,
		},
		{
			name:     "meme listing gets reduced discount",
			score:    60,
			official: models.OfficialListing{IsOfficial: true, MarketCap: 100_000_000},
			isMeme:   true,
			want:     35,
		},
		{
			name:     "billion cap utility bonus",
			score:    60,
			official: models.OfficialListing{IsOfficial: true, MarketCap: 2_000_000_000},
			want:     5,
		},
		{
			name:     "billion cap meme bonus",
			score:    60,
			official: models.OfficialListing{IsOfficial: true, MarketCap: 2_000_000_000},
			isMeme:   true,
			want:     30,
		},
		{
			name:     "half billion utility bonus",
			score:    60,
			official: models.OfficialListing{IsOfficial: true, MarketCap: 700_000_000},
			want:     10,
		},
		{
			name:     "floors at zero",
			score:    20,
			official: models.OfficialListing{IsOfficial: true, MarketCap: 2_000_000_000},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &cascadeState{
				class:    &models.Classification{IsMeme: tt.isMeme},
				official: tt.official,
				score:    tt.score,
			}
			applyOfficialOverride(st)
			assert.Equal(t, tt.want, st.score)
		})
	}
}

func TestApplyDeadTokenOverride(t *testing.T) {
	t.Run("raises to the detector floor and flags", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{},
			dead:     DeadTokenCheck{IsDead: true, Score: 95, Reason: "liquidity < $500 (200)"},
			score:    40,
		}
		applyDeadTokenOverride(st)
		assert.Equal(t, 95.0, st.score)
		assert.Contains(t, st.deadFlag, "DEAD TOKEN")
		assert.Empty(t, st.flags, "the dead flag must not join the escalation count")
	})

	t.Run("official listings are never dead", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{},
			dead:     DeadTokenCheck{IsDead: true, Score: 95},
			official: models.OfficialListing{IsOfficial: true},
			score:    40,
		}
		applyDeadTokenOverride(st)
		assert.Equal(t, 40.0, st.score)
		assert.Empty(t, st.deadFlag)
	})

	t.Run("never lowers an already higher score", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{},
			dead:     DeadTokenCheck{IsDead: true, Score: 90},
			score:    97,
		}
		applyDeadTokenOverride(st)
		assert.Equal(t, 97.0, st.score)
	})
}

func TestApplyTopHolderOverride(t *testing.T) {
	t.Run("forty percent whale floors at 94", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{
				TopHolders:  []models.HolderBalance{{Address: "whale", Balance: 450_000}},
				TotalSupply: fp(1_000_000),
			},
			score: 30,
		}
		applyTopHolderOverride(st)
		assert.Equal(t, 94.0, st.score)
	})

	t.Run("below threshold untouched", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{
				TopHolders:  []models.HolderBalance{{Address: "whale", Balance: 350_000}},
				TotalSupply: fp(1_000_000),
			},
			score: 30,
		}
		applyTopHolderOverride(st)
		assert.Equal(t, 30.0, st.score)
	})

	t.Run("no raw holder data untouched", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{Top10HoldersPct: fp(0.99)},
			score:    30,
		}
		applyTopHolderOverride(st)
		assert.Equal(t, 30.0, st.score)
	})
}

func TestApplySolanaMemeRug(t *testing.T) {
	meme := &models.Classification{IsMeme: true}

	t.Run("only young solana memes qualify", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{AgeDays: fp(5)},
			class:    meme,
			chain:    models.ChainEVM,
			score:    50,
		}
		applySolanaMemeRug(st)
		assert.Equal(t, 50.0, st.score)

		st = &cascadeState{
			snapshot: &models.TokenSnapshot{AgeDays: fp(120)},
			class:    meme,
			chain:    models.ChainSolana,
			score:    50,
		}
		applySolanaMemeRug(st)
		assert.Equal(t, 50.0, st.score)
	})

	t.Run("all rug patterns stack and pin critical", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{
				AgeDays:      fp(3),
				MarketCap:    fp(20_000_000),
				LiquidityUSD: fp(500_000),
				HolderCount:  ip(800),
				Volume24h:    fp(8_000_000),
				TotalSupply:  fp(1e9),
				BurnedSupply: fp(0),
			},
			class:  meme,
			chain:  models.ChainSolana,
			name:   "Official Pump 2.0",
			symbol: "PUMP69",
			score:  10,
		}
		applySolanaMemeRug(st)
		// 40 + 30 + 20 + 20 + 20 lands at 140, clamped later by runCascade.
		assert.Equal(t, 140.0, st.score)
	})

	t.Run("high scores pin to 92", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{
				AgeDays:      fp(3),
				MarketCap:    fp(20_000_000),
				LiquidityUSD: fp(500_000),
				TotalSupply:  fp(1e9),
				BurnedSupply: fp(5e8),
				HolderCount:  ip(50_000),
			},
			class:  meme,
			chain:  models.ChainSolana,
			name:   "quietcoin",
			symbol: "QUIET",
			score:  35,
		}
		applySolanaMemeRug(st)
		// 35 + 40 = 75, inside [70, 92) so it pins to 92.
		assert.Equal(t, 92.0, st.score)
	})

	t.Run("burned supply avoids the burn penalty", func(t *testing.T) {
		st := &cascadeState{
			snapshot: &models.TokenSnapshot{
				AgeDays:      fp(3),
				TotalSupply:  fp(1e9),
				BurnedSupply: fp(5e7),
				HolderCount:  ip(50_000),
			},
			class:  meme,
			chain:  models.ChainSolana,
			name:   "quietcoin",
			symbol: "QUIET",
			score:  20,
		}
		applySolanaMemeRug(st)
		assert.Equal(t, 20.0, st.score)
	})
}

func TestApplyCriticalFlagEscalation(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
		score float64
		want  float64
	}{
		{"no flags", nil, 40, 40},
		{"one flag adds 15", []string{"a"}, 40, 55},
		{"two flags add 15", []string{"a", "b"}, 40, 55},
		{"three flags floor at 75", []string{"a", "b", "c"}, 40, 75},
		{"three flags do not lower", []string{"a", "b", "c"}, 90, 90},
		{"one flag clamps at 100", []string{"a"}, 95, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &cascadeState{flags: tt.flags, score: tt.score}
			applyCriticalFlagEscalation(st)
			assert.Equal(t, tt.want, st.score)
		})
	}
}

func TestRunCascadeClampsRange(t *testing.T) {
	st := &cascadeState{
		snapshot: &models.TokenSnapshot{
			AgeDays:      fp(3),
			MarketCap:    fp(20_000_000),
			LiquidityUSD: fp(500_000),
			HolderCount:  ip(800),
			Volume24h:    fp(8_000_000),
			TotalSupply:  fp(1e9),
		},
		class:  &models.Classification{IsMeme: true},
		chain:  models.ChainSolana,
		name:   "Official Pump 2.0",
		symbol: "PUMP69",
		score:  60,
	}
	runCascade(st)
	assert.LessOrEqual(t, st.score, 100.0)
	assert.GreaterOrEqual(t, st.score, 0.0)
}
