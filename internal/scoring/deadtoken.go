package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/songzhibin97/rugscan/internal/models"
)

// DeadTokenCheck is the abandonment verdict for a snapshot.
type DeadTokenCheck struct {
	IsDead bool
	Score  int // floor to force the overall score to when dead
	Reason string
}

// CheckDeadToken inspects liquidity, volume, drawdown and activity for
// abandonment signals. A token is dead when any combination pushes the
// computed floor to 90 or above.
func CheckDeadToken(s *models.TokenSnapshot) DeadTokenCheck {
	var reasons []string
	base := 0

	if s.LiquidityUSD == nil || *s.LiquidityUSD < 500 {
		reasons = append(reasons, fmt.Sprintf("liquidity < $500 (%.0f)", fval(s.LiquidityUSD)))
		base = 100
	}

	if s.Volume24h == nil || *s.Volume24h < 100 {
		reasons = append(reasons, fmt.Sprintf("24h volume < $100 (%.0f)", fval(s.Volume24h)))
		if base < 95 {
			base = 95
		}
	}

	if s.AllTimeHigh != nil && *s.AllTimeHigh > 0 && s.CurrentPrice != nil {
		drop := 1 - (*s.CurrentPrice / *s.AllTimeHigh)
		if drop > 0.98 {
			reasons = append(reasons, fmt.Sprintf("down %.1f%% from ATH", drop*100))
			if base < 92 {
				base = 92
			}
		}
	}

	if s.TxCount24h != nil && *s.TxCount24h == 0 {
		reasons = append(reasons, "zero transactions in 24h")
		if base < 90 {
			base = 90
		}
	}

	if s.PriceChange7d != nil && *s.PriceChange7d < -90 {
		reasons = append(reasons, fmt.Sprintf("down %.0f%% in 7 days", math.Abs(*s.PriceChange7d)))
		if base < 85 {
			base = 85
		}
	}
	if s.PriceChange30d != nil && *s.PriceChange30d < -95 {
		reasons = append(reasons, fmt.Sprintf("down %.0f%% in 30 days", math.Abs(*s.PriceChange30d)))
		if base < 88 {
			base = 88
		}
	}

	// A remnant holder base only matters once another death signal fired.
	if s.HolderCount != nil && *s.HolderCount < 10 && base > 0 {
		reasons = append(reasons, fmt.Sprintf("only %d holders", *s.HolderCount))
		if base < 90 {
			base = 90
		}
	}

	reason := "not dead"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, ", ")
	}

	return DeadTokenCheck{
		IsDead: base >= 90,
		Score:  base,
		Reason: reason,
	}
}
