package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/songzhibin97/rugscan/internal/models"
)

// officialTokenWhitelist holds symbols that are never memes: major L1s,
// stablecoins, top DeFi and CEX tokens.
var officialTokenWhitelist = map[string]bool{
	"BTC": true, "ETH": true, "BNB": true, "SOL": true, "ADA": true,
	"AVAX": true, "DOT": true, "MATIC": true, "ATOM": true, "NEAR": true,
	"USDT": true, "USDC": true, "DAI": true, "BUSD": true, "TUSD": true,
	"USDP": true, "FRAX": true, "USDD": true,
	"UNI": true, "AAVE": true, "SNX": true, "COMP": true, "MKR": true,
	"CRV": true, "BAL": true, "SUSHI": true, "YFI": true, "LDO": true,
	"FTT": true, "CRO": true, "HT": true, "OKB": true, "KCS": true, "LEO": true,
	"LINK": true, "SAND": true, "MANA": true, "AXS": true, "ENJ": true,
	"CHZ": true, "GRT": true, "FIL": true, "XTZ": true, "ALGO": true,
}

var (
	memeKeywords    = regexp.MustCompile(`(?i)doge|shib|pepe|floki|wojak|chad|moon|rocket|100x|1000x|inu|elon|safe|baby|mini|pump|69|420|based`)
	utilityKeywords = regexp.MustCompile(`(?i)swap|finance|protocol|bridge|vault|stake|lend|yield|dao|network`)
	jsonBlock       = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Detector resolves token classification in three attempts: manual
// override, whitelist/keyword fast path, then the LLM. It never fails a
// scoring call; every path ends in a usable classification.
type Detector struct {
	llm     LLM
	timeout time.Duration
	logger  *slog.Logger
}

// NewDetector builds a detector. llm may be nil to disable the external
// call entirely; timeout bounds each LLM request.
func NewDetector(llm LLM, timeout time.Duration, logger *slog.Logger) *Detector {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{llm: llm, timeout: timeout, logger: logger}
}

// Resolve classifies a token. The result is complete and immutable; the
// caller must not expect an error path.
func (d *Detector) Resolve(ctx context.Context, meta *models.TokenMetadata) *models.Classification {
	if meta == nil {
		meta = &models.TokenMetadata{}
	}

	// Manual override is honored verbatim and marked so nothing later
	// second-guesses it.
	if meta.ManualClassification != "" {
		return &models.Classification{
			IsMeme:           meta.ManualClassification == "MEME_TOKEN",
			Confidence:       100,
			Rationale:        "Manual classification by user",
			IsManualOverride: true,
		}
	}

	symbol := strings.ToUpper(strings.TrimSpace(meta.Symbol))
	if officialTokenWhitelist[symbol] {
		return &models.Classification{
			IsMeme:     false,
			Confidence: 100,
			Rationale:  "Official token in whitelist (major L1/DeFi/stablecoin)",
		}
	}

	hasMemeKeywords := memeKeywords.MatchString(meta.Symbol + " " + meta.Name)
	hasUtilityKeywords := utilityKeywords.MatchString(meta.Name)

	if hasMemeKeywords && !hasUtilityKeywords {
		return &models.Classification{
			IsMeme:     true,
			Confidence: 95,
			Rationale:  "Contains obvious meme keywords (doge/shib/pepe/moon/inu pattern)",
		}
	}

	if d.llm != nil {
		if c := d.classifyWithLLM(ctx, meta); c != nil {
			return c
		}
	}

	// Deterministic fallback with reduced confidence.
	confidence := 50
	if hasMemeKeywords {
		confidence = 60
	}
	return &models.Classification{
		IsMeme:     hasMemeKeywords,
		Confidence: confidence,
		Rationale:  "Fallback pattern-based classification (AI unavailable)",
	}
}

const classifySystemPrompt = "You are a cryptocurrency analyst. You classify tokens as MEME or UTILITY and always answer with strict JSON."

func (d *Detector) classifyWithLLM(ctx context.Context, meta *models.TokenMetadata) *models.Classification {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	prompt := buildClassifyPrompt(meta)

	text, err := d.llm.Complete(ctx, classifySystemPrompt, prompt)
	if err != nil {
		d.logger.Warn("llm classification failed", "symbol", meta.Symbol, "err", err)
		return nil
	}

	match := jsonBlock.FindString(text)
	if match == "" {
		d.logger.Warn("llm returned no json", "symbol", meta.Symbol)
		return nil
	}

	var parsed struct {
		Classification string `json:"classification"`
		Confidence     int    `json:"confidence"`
		Reasoning      string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		d.logger.Warn("failed to parse llm classification", "symbol", meta.Symbol, "err", err)
		return nil
	}

	confidence := parsed.Confidence
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}
	rationale := parsed.Reasoning
	if rationale == "" {
		rationale = "AI classification"
	}

	return &models.Classification{
		IsMeme:     parsed.Classification == "MEME",
		Confidence: confidence,
		Rationale:  rationale,
	}
}

func buildClassifyPrompt(meta *models.TokenMetadata) string {
	name := meta.Name
	if name == "" {
		name = "Unknown"
	}
	description := meta.Description
	if description == "" {
		description = "None"
	}

	return fmt.Sprintf(`Classify if this token is a MEME token or UTILITY token.

MEME tokens: created for fun/community, no real utility, often animal names, viral/joke themes
UTILITY tokens: real product/service, governance, staking, DeFi protocol, infrastructure

FEW-SHOT EXAMPLES:
- "DOGE" (Dogecoin) -> MEME (dog-themed, community coin)
- "SHIB" (Shiba Inu) -> MEME (dog theme, viral community)
- "UNI" (Uniswap) -> UTILITY (DEX protocol token)
- "PEPE" -> MEME (frog meme character)
- "AAVE" -> UTILITY (lending protocol)
- "BONK" -> MEME (dog sound, Solana meme)
- "LINK" (Chainlink) -> UTILITY (oracle network)

Token to analyze:
Symbol: %s
Name: %s
Description: %s

Respond with JSON:
{
  "classification": "MEME" or "UTILITY",
  "confidence": 0-100,
  "reasoning": "one sentence explanation"
}`, meta.Symbol, name, description)
}
