// Package goplus implements the contract security source for EVM chains.
package goplus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/rugscan/internal/models"
	"github.com/songzhibin97/rugscan/internal/utils/request"
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

type GoPlusDataSource struct {
	baseURL    string
	chainID    string
	httpClient *resty.Client
}

// NewGoPlusDataSource builds the source. chainID is the numeric EVM chain
// id the API expects; empty defaults to Ethereum mainnet.
func NewGoPlusDataSource(chainID string) *GoPlusDataSource {
	if chainID == "" {
		chainID = "1"
	}
	return &GoPlusDataSource{
		baseURL:    "https://api.gopluslabs.io/api/v1",
		chainID:    chainID,
		httpClient: request.Request,
	}
}

func (g *GoPlusDataSource) Name() string {
	return "goplus"
}

// The security API encodes booleans as "0"/"1" strings and omits fields it
// could not determine. Absent fields must stay absent downstream.
type securityEntry struct {
	IsHoneypot         string `json:"is_honeypot"`
	IsMintable         string `json:"is_mintable"`
	OwnerAddress       string `json:"owner_address"`
	BuyTax             string `json:"buy_tax"`
	SellTax            string `json:"sell_tax"`
	SlippageModifiable string `json:"slippage_modifiable"`
	IsOpenSource       string `json:"is_open_source"`
	CreatorPercent     string `json:"creator_percent"`
	LPHolders          []struct {
		Address  string `json:"address"`
		IsLocked int    `json:"is_locked"`
		Percent  string `json:"percent"`
	} `json:"lp_holders"`
}

type securityResponse struct {
	Code   int                      `json:"code"`
	Result map[string]securityEntry `json:"result"`
}

// FetchSecurity implements collector.SecuritySource.
func (g *GoPlusDataSource) FetchSecurity(ctx context.Context, address string, chain models.Chain) (*models.SecurityData, error) {
	url := fmt.Sprintf("%s/token_security/%s?contract_addresses=%s",
		g.baseURL, g.chainID, strings.ToLower(address))

	resp, err := g.httpClient.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result securityResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	entry, ok := result.Result[strings.ToLower(address)]
	if !ok {
		return nil, fmt.Errorf("no security data for address: %s", address)
	}

	sec := &models.SecurityData{
		IsHoneypot:    entry.IsHoneypot == "1",
		IsMintable:    entry.IsMintable == "1",
		TaxModifiable: entry.SlippageModifiable == "1",
		IsOpenSource:  entry.IsOpenSource == "1",
	}

	renounced := entry.OwnerAddress == "" || strings.EqualFold(entry.OwnerAddress, zeroAddress)
	sec.OwnerRenounced = renounced

	if v, err := strconv.ParseFloat(entry.BuyTax, 64); err == nil {
		sec.BuyTax = v
	}
	if v, err := strconv.ParseFloat(entry.SellTax, 64); err == nil {
		sec.SellTax = v
	}
	if v, err := strconv.ParseFloat(entry.CreatorPercent, 64); err == nil {
		sec.CreatorBalance = &v
	}

	if len(entry.LPHolders) > 0 {
		locked := false
		inOwner := false
		for _, lp := range entry.LPHolders {
			if lp.IsLocked == 1 {
				locked = true
			}
			if entry.OwnerAddress != "" && strings.EqualFold(lp.Address, entry.OwnerAddress) {
				inOwner = true
			}
		}
		sec.LPLocked = &locked
		sec.LPInOwnerWallet = inOwner
	}

	return sec, nil
}
