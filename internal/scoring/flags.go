package scoring

import (
	"fmt"

	"github.com/songzhibin97/rugscan/internal/models"
)

// ExtractCriticalFlags lists the dangerous patterns present in a snapshot.
// The cascade escalates on the count of these.
func ExtractCriticalFlags(s *models.TokenSnapshot) []string {
	var flags []string

	if sec := s.Security; sec != nil {
		if sec.IsHoneypot {
			flags = append(flags, "HONEYPOT DETECTED - cannot sell")
		}
		if sec.IsMintable && !sec.OwnerRenounced {
			flags = append(flags, "Owner can mint unlimited tokens")
		}
		if sec.TaxModifiable {
			flags = append(flags, "Taxes can be changed anytime")
		}
		if sec.SellTax > 0.2 {
			flags = append(flags, fmt.Sprintf("High sell tax: %.0f%%", sec.SellTax*100))
		}
		// Only flag when the provider explicitly said the LP is unlocked.
		if sec.LPLocked != nil && !*sec.LPLocked {
			flags = append(flags, "Liquidity not locked")
		}
	}

	if s.Chain == models.ChainSolana {
		if s.FreezeAuthorityExists != nil && *s.FreezeAuthorityExists {
			flags = append(flags, "FREEZE AUTHORITY - creator can lock wallets")
		}
	}

	if s.NextUnlock30dPct != nil && *s.NextUnlock30dPct > 0.15 {
		flags = append(flags, fmt.Sprintf("%.1f%% unlocking in 30 days", *s.NextUnlock30dPct*100))
	}
	if s.Top10HoldersPct != nil && *s.Top10HoldersPct > 0.7 {
		flags = append(flags, fmt.Sprintf("%.0f%% held by top 10 wallets", *s.Top10HoldersPct*100))
	}

	return flags
}

// ExtractPositiveSignals lists de-risking facts worth surfacing alongside
// the flags.
func ExtractPositiveSignals(s *models.TokenSnapshot) []string {
	var signals []string

	if s.Chain == models.ChainSolana {
		if s.FreezeAuthorityExists != nil && !*s.FreezeAuthorityExists {
			signals = append(signals, "Freeze authority revoked - wallets cannot be frozen")
		}
		if s.MintAuthorityExists != nil && !*s.MintAuthorityExists &&
			(s.Security == nil || !s.Security.IsMintable) {
			signals = append(signals, "Mint authority revoked - supply is fixed")
		}
	}

	if sec := s.Security; sec != nil {
		if sec.OwnerRenounced {
			signals = append(signals, "Ownership renounced - contract cannot be modified")
		}
		if sec.LPLocked != nil && *sec.LPLocked {
			signals = append(signals, "Liquidity locked - rug pull protection")
		}
	}

	return signals
}

// GenerateInsights turns the worst factor scores into reader-facing notes.
func GenerateInsights(b models.RiskBreakdown, hasSecurity bool) []string {
	var insights []string
	if b.ContractControl > 70 {
		if hasSecurity {
			insights = append(insights, "Contract has high risk features (honeypot, mintable, or no renouncement)")
		} else {
			insights = append(insights, "Contract shows centralization patterns - verification unavailable")
		}
	}
	if b.LiquidityDepth > 60 {
		insights = append(insights, "Low liquidity creates high slippage risk")
	}
	if b.VestingUnlock > 60 {
		insights = append(insights, "Major token unlocks expected soon - high sell pressure")
	}
	if b.HolderConcentration > 60 {
		insights = append(insights, "Whale concentration risk - few holders control most supply")
	}
	return insights
}
