package client

import (
	"context"
	"fmt"
	"time"

	"productbot/assistant/internal/config"
	"productbot/assistant/internal/domain"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type apiClient struct {
	service *sheets.Service
	timeout time.Duration
}

// APIClientOptions returns the client options for service-account access.
func APIClientOptions(cfg config.SheetsConfig) []option.ClientOption {
	return []option.ClientOption{
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	}
}

// NewAPIClient creates a SheetsClient backed by the official Sheets v4 client.
func NewAPIClient(ctx context.Context, cfg config.SheetsConfig, opts ...option.ClientOption) (SheetsClient, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &apiClient{
		service: service,
		timeout: time.Duration(cfg.Timeout) * time.Second,
	}, nil
}

func (c *apiClient) FetchRows(ctx context.Context, spreadsheetID, readRange string) ([]domain.Row, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get values %s: %w", readRange, err)
	}

	log.Debugf("Fetched %d rows from %s", len(resp.Values), readRange)
	return toRows(resp.Values), nil
}
