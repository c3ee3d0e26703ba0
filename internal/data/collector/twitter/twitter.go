// Package twitter maps a project's social presence to an adoption risk
// score. No presence or a failed lookup reads as maximum risk.
package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/songzhibin97/rugscan/internal/utils/request"
)

type TwitterDataSource struct {
	baseURL     string
	bearerToken string
	httpClient  *resty.Client
}

func NewTwitterDataSource(bearerToken string) *TwitterDataSource {
	return &TwitterDataSource{
		baseURL:     "https://api.twitter.com/2",
		bearerToken: bearerToken,
		httpClient:  request.Request,
	}
}

func (t *TwitterDataSource) Name() string {
	return "twitter"
}

type userResponse struct {
	Data struct {
		Username      string `json:"username"`
		PublicMetrics struct {
			FollowersCount int `json:"followers_count"`
			TweetCount     int `json:"tweet_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

// FetchAdoptionScore implements collector.SocialSource. The returned score
// is a 0-100 risk value: large, active accounts score low and missing or
// tiny accounts score high.
func (t *TwitterDataSource) FetchAdoptionScore(ctx context.Context, symbol, handle string) (int, error) {
	if handle == "" {
		return 0, fmt.Errorf("no social handle for %s", symbol)
	}
	handle = strings.TrimPrefix(handle, "@")

	url := fmt.Sprintf("%s/users/by/username/%s?user.fields=public_metrics", t.baseURL, handle)
	resp, err := t.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+t.bearerToken).
		Get(url)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return 95, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var result userResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return scoreFollowers(result.Data.PublicMetrics.FollowersCount), nil
}

func scoreFollowers(followers int) int {
	switch {
	case followers >= 500_000:
		return 10
	case followers >= 100_000:
		return 20
	case followers >= 25_000:
		return 35
	case followers >= 5_000:
		return 50
	case followers >= 1_000:
		return 65
	case followers > 0:
		return 80
	default:
		return 95
	}
}
