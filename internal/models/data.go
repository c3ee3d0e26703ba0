package models

import "time"

// Chain identifies the chain family a token lives on.
type Chain string

const (
	ChainEVM     Chain = "EVM"
	ChainSolana  Chain = "SOLANA"
	ChainCardano Chain = "CARDANO"
)

// Plan selects how much of the result is populated.
type Plan string

const (
	PlanFree    Plan = "FREE"
	PlanPremium Plan = "PREMIUM"
)

// RiskTier buckets the overall score.
type RiskTier string

const (
	TierLow      RiskTier = "LOW"
	TierMedium   RiskTier = "MEDIUM"
	TierHigh     RiskTier = "HIGH"
	TierCritical RiskTier = "CRITICAL"
)

// HolderBalance is one entry of a chain indexer's top-holder list.
type HolderBalance struct {
	Address string  `json:"address"`
	Balance float64 `json:"balance"`
}

// SecurityData is the contract-security provider bundle. A non-nil bundle
// means the provider responded; individual zero values are real answers,
// not missing data.
type SecurityData struct {
	IsHoneypot      bool     `json:"is_honeypot"`
	IsMintable      bool     `json:"is_mintable"`
	OwnerRenounced  bool     `json:"owner_renounced"`
	BuyTax          float64  `json:"buy_tax"`  // 0-1 fraction
	SellTax         float64  `json:"sell_tax"` // 0-1 fraction
	TaxModifiable   bool     `json:"tax_modifiable"`
	IsOpenSource    bool     `json:"is_open_source"`
	LPLocked        *bool    `json:"lp_locked,omitempty"` // nil = provider did not say
	LPInOwnerWallet bool     `json:"lp_in_owner_wallet"`
	CreatorBalance  *float64 `json:"creator_balance,omitempty"`
}

// TokenSnapshot is the sole input to scoring. Providers frequently omit
// data, so every field that can be absent is a pointer; nil is "unknown"
// and is never confusable with a real zero.
type TokenSnapshot struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Chain  Chain  `json:"chain"`

	// Market
	MarketCap       *float64 `json:"market_cap,omitempty"`
	FDV             *float64 `json:"fdv,omitempty"`
	LiquidityUSD    *float64 `json:"liquidity_usd,omitempty"`
	Liquidity1hAgo  *float64 `json:"liquidity_1h_ago,omitempty"`
	Liquidity24hAgo *float64 `json:"liquidity_24h_ago,omitempty"`
	Volume24h       *float64 `json:"volume_24h,omitempty"`
	PriceChange7d   *float64 `json:"price_change_7d,omitempty"`  // percent
	PriceChange30d  *float64 `json:"price_change_30d,omitempty"` // percent
	AllTimeHigh     *float64 `json:"ath,omitempty"`
	CurrentPrice    *float64 `json:"price_usd,omitempty"`

	// Supply
	TotalSupply       *float64 `json:"total_supply,omitempty"`
	CirculatingSupply *float64 `json:"circulating_supply,omitempty"`
	MaxSupply         *float64 `json:"max_supply,omitempty"` // nil = uncapped
	BurnedSupply      *float64 `json:"burned_supply,omitempty"`

	// Holders
	HolderCount      *int            `json:"holder_count,omitempty"`
	Top10HoldersPct  *float64        `json:"top10_holders_pct,omitempty"`  // 0-1 fraction
	Top50HoldersPct  *float64        `json:"top50_holders_pct,omitempty"`  // 0-1 fraction
	Top100HoldersPct *float64        `json:"top100_holders_pct,omitempty"` // 0-1 fraction
	TopHolders       []HolderBalance `json:"top_holders,omitempty"`
	UniqueBuyers24h  *int            `json:"unique_buyers_24h,omitempty"`

	// Activity
	AgeDays             *float64 `json:"age_days,omitempty"`
	AgeDaysEstimated    bool     `json:"age_days_is_estimated,omitempty"`
	TxCount24h          *int     `json:"tx_count_24h,omitempty"`
	TxCount24hEstimated bool     `json:"tx_count_24h_is_estimated,omitempty"`

	// Vesting
	NextUnlock30dPct  *float64 `json:"next_unlock_30d_pct,omitempty"` // 0-1 fraction
	TeamVestingMonths *int     `json:"team_vesting_months,omitempty"`
	TeamAllocationPct *float64 `json:"team_allocation_pct,omitempty"` // 0-1 fraction

	// Contract security (nil = no security provider response)
	Security *SecurityData `json:"security,omitempty"`

	// Solana authorities, from the chain indexer
	FreezeAuthorityExists *bool `json:"freeze_authority_exists,omitempty"`
	MintAuthorityExists   *bool `json:"mint_authority_exists,omitempty"`

	// Pre-computed adoption risk from the social-metrics provider; when
	// set it overrides the on-chain adoption heuristic.
	SocialAdoptionScore *int `json:"social_adoption_score,omitempty"`
}

// HasSecurityData reports whether the contract-security provider responded.
func (s *TokenSnapshot) HasSecurityData() bool {
	return s.Security != nil
}

// TokenMetadata is optional caller-supplied context for a scoring call.
type TokenMetadata struct {
	Symbol               string `json:"symbol"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	TwitterHandle        string `json:"twitter_handle"`
	Address              string `json:"address"`
	Chain                Chain  `json:"chain"`
	ManualClassification string `json:"manual_classification"` // "MEME_TOKEN", "UTILITY_TOKEN" or empty
}

// Classification is the resolved token class. Produced once per scoring
// call and never mutated afterward.
type Classification struct {
	IsMeme           bool   `json:"is_meme"`
	Confidence       int    `json:"confidence"` // 0-100
	Rationale        string `json:"rationale"`
	IsManualOverride bool   `json:"is_manual_override"`
}

// RiskBreakdown holds the ten factor sub-scores, each 0-100. Every factor
// is always computed; absent data maps to a conservative default.
type RiskBreakdown struct {
	SupplyDilution      int `json:"supply_dilution"`
	HolderConcentration int `json:"holder_concentration"`
	LiquidityDepth      int `json:"liquidity_depth"`
	VestingUnlock       int `json:"vesting_unlock"`
	ContractControl     int `json:"contract_control"`
	TaxFee              int `json:"tax_fee"`
	Distribution        int `json:"distribution"`
	BurnDeflation       int `json:"burn_deflation"`
	Adoption            int `json:"adoption"`
	AuditTransparency   int `json:"audit_transparency"`
}

// OfficialListing is the reference-catalog verdict for a token.
type OfficialListing struct {
	IsOfficial bool    `json:"is_official"`
	MarketCap  float64 `json:"market_cap"`
	Name       string  `json:"name"`
}

// UpcomingRisks is the 30-day unlock forecast, premium only.
type UpcomingRisks struct {
	Next30Days float64 `json:"next_30_days"` // 0-1 fraction unlocking
	Forecast   string  `json:"forecast"`     // LOW, MEDIUM, HIGH, EXTREME
}

// ScanSummary is one row of a token's scoring history.
type ScanSummary struct {
	Symbol   string    `json:"symbol"`
	Score    int       `json:"score"`
	Tier     RiskTier  `json:"tier"`
	ScoredAt time.Time `json:"scored_at"`
}

// RiskResult is the immutable outcome of one scoring call.
type RiskResult struct {
	OverallScore int           `json:"overall_risk_score"` // 0-100
	Tier         RiskTier      `json:"risk_level"`
	Confidence   int           `json:"confidence_score"`
	Breakdown    RiskBreakdown `json:"breakdown"`
	DataSources  []string      `json:"data_sources"`
	Plan         Plan          `json:"plan"`

	// Premium only
	CriticalFlags   []string        `json:"critical_flags,omitempty"`
	PositiveSignals []string        `json:"positive_signals,omitempty"`
	Insights        []string        `json:"detailed_insights,omitempty"`
	UpcomingRisks   *UpcomingRisks  `json:"upcoming_risks,omitempty"`
	Classification  *Classification `json:"classification,omitempty"`

	// Free plan nudge when the score is worth a closer look
	UpgradeMessage string `json:"upgrade_message,omitempty"`

	ScoredAt time.Time `json:"scored_at"`
}
