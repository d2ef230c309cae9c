// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"resty.dev/v3"

	"github.com/platform-engineering-labs/tickd/internal/api/model"
	"github.com/platform-engineering-labs/tickd/internal/health"
)

type Client struct {
	endpoint string
	resty    *resty.Client
}

func NewClient(endpoint string, net *http.Client) *Client {
	client := resty.New()

	if net != nil {
		client = resty.NewWithClient(net)
	}

	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		resty:    client,
	}
}

// Times queries GET /times for the given zones.
func (c *Client) Times(zones []string, includeQuality bool) (*model.TimesResponse, error) {
	params := url.Values{"tz": zones}
	if includeQuality {
		params.Set("include_quality", "true")
	}

	resp, err := c.resty.R().
		SetQueryParamsFromValues(params).
		Get(c.endpoint + TimesRoute)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return nil, syscall.ECONNREFUSED
		}

		return nil, err
	}

	//nolint:errcheck
	defer resp.Body.Close()

	switch resp.StatusCode() {
	case http.StatusOK:
		var times model.TimesResponse
		if err := json.NewDecoder(resp.Body).Decode(&times); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return &times, nil
	case http.StatusBadRequest:
		var errorResponse model.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorResponse); err != nil {
			return nil, fmt.Errorf("failed to decode error response: %w", err)
		}
		return nil, errorResponse
	default:
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}
}

// Health queries GET /health. The report is returned for both 200 and 503.
func (c *Client) Health() (*health.Report, error) {
	resp, err := c.resty.R().Get(c.endpoint + HealthRoute)
	if err != nil {
		return nil, err
	}

	//nolint:errcheck
	defer resp.Body.Close()

	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusServiceUnavailable {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var report health.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &report, nil
}

const readyPollInterval = 250 * time.Millisecond

// WaitOnAvailable polls /ready until the daemon answers, giving up after
// the given number of attempts.
func (c *Client) WaitOnAvailable(attempts int) bool {
	for i := 0; i < attempts; i++ {
		resp, _ := c.resty.R().Get(c.endpoint + ReadyRoute)
		if resp != nil && resp.StatusCode() == http.StatusOK {
			return true
		}

		time.Sleep(readyPollInterval)
	}

	return false
}
