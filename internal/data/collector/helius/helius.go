// Package helius implements the Solana chain-index source over the Helius
// RPC endpoint.
package helius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/rugscan/internal/data/collector"
	"github.com/songzhibin97/rugscan/internal/models"
	"github.com/songzhibin97/rugscan/internal/utils/request"
)

type HeliusDataSource struct {
	rpcURL     string
	httpClient *resty.Client
}

func NewHeliusDataSource(apiKey string) *HeliusDataSource {
	return &HeliusDataSource{
		rpcURL:     "https://mainnet.helius-rpc.com/?api-key=" + apiKey,
		httpClient: request.Request,
	}
}

func (h *HeliusDataSource) Name() string {
	return "helius"
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type largestAccountsResult struct {
	Result struct {
		Value []struct {
			Address  string `json:"address"`
			Amount   string `json:"amount"`
			Decimals int    `json:"decimals"`
		} `json:"value"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

type mintAccountResult struct {
	Result struct {
		Value struct {
			Data struct {
				Parsed struct {
					Info struct {
						Supply          string  `json:"supply"`
						Decimals        int     `json:"decimals"`
						FreezeAuthority *string `json:"freezeAuthority"`
						MintAuthority   *string `json:"mintAuthority"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"value"`
	} `json:"result"`
	Error *rpcError `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FetchHolders implements collector.ChainIndexSource. It combines the
// largest token accounts with the mint's authority flags. The RPC caps the
// largest-accounts list at 20 entries, which covers the top-10 and top-1
// checks downstream.
func (h *HeliusDataSource) FetchHolders(ctx context.Context, address string, chain models.Chain) (*collector.HolderIndex, error) {
	idx := &collector.HolderIndex{}

	var accounts largestAccountsResult
	if err := h.call(ctx, "getTokenLargestAccounts", []interface{}{address}, &accounts); err != nil {
		return nil, err
	}
	if accounts.Error != nil {
		return nil, fmt.Errorf("rpc error: %s", accounts.Error.Message)
	}

	for _, acc := range accounts.Result.Value {
		raw, err := strconv.ParseFloat(acc.Amount, 64)
		if err != nil {
			continue
		}
		balance := raw
		for i := 0; i < acc.Decimals; i++ {
			balance /= 10
		}
		idx.TopHolders = append(idx.TopHolders, models.HolderBalance{
			Address: acc.Address,
			Balance: balance,
		})
	}

	var mint mintAccountResult
	params := []interface{}{address, map[string]string{"encoding": "jsonParsed"}}
	if err := h.call(ctx, "getAccountInfo", params, &mint); err != nil {
		return nil, err
	}
	if mint.Error != nil {
		return nil, fmt.Errorf("rpc error: %s", mint.Error.Message)
	}

	info := mint.Result.Value.Data.Parsed.Info
	freeze := info.FreezeAuthority != nil
	mintable := info.MintAuthority != nil
	idx.FreezeAuthority = &freeze
	idx.MintAuthority = &mintable

	return idx, nil
}

func (h *HeliusDataSource) call(ctx context.Context, method string, params []interface{}, out interface{}) error {
	body := rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params}

	resp, err := h.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(h.rpcURL)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
