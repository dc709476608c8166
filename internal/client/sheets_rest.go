package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"productbot/assistant/internal/config"
	"productbot/assistant/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type valueRange struct {
	Range          string  `json:"range"`
	MajorDimension string  `json:"majorDimension"`
	Values         [][]any `json:"values"`
}

type restClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	apiKey     string
}

// NewRESTClient creates a SheetsClient that calls the Sheets REST endpoint with an
// API key. It only works for spreadsheets readable with that key.
func NewRESTClient(cfg config.SheetsConfig) SheetsClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("Accept", "application/json")

	return &restClient{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		httpClient: client,
		apiKey:     cfg.APIKey,
	}
}

func (c *restClient) FetchRows(ctx context.Context, spreadsheetID, readRange string) ([]domain.Row, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("spreadsheetId", spreadsheetID).
		SetPathParam("range", readRange).
		SetQueryParam("key", c.apiKey).
		Get("/v4/spreadsheets/{spreadsheetId}/values/{range}")
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", readRange, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status())
	}

	var vr valueRange
	if err := json.Unmarshal([]byte(resp.String()), &vr); err != nil {
		return nil, fmt.Errorf("malformed values response for %s: %w", readRange, err)
	}

	log.Debugf("Fetched %d rows from %s", len(vr.Values), readRange)
	return toRows(vr.Values), nil
}
