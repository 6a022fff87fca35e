package reports

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"tcncore/internal/models"
	"tcncore/internal/providers"
	"tcncore/internal/structures"
)

// ReportsApi is the remote report source: transport-encoded signed
// reports grouped by retrieval interval.
type ReportsApi interface {
	GetReports(interval models.ReportsInterval) ([]string, error)
	PostReport(encoded string) error
}

type Client struct {
	http   *resty.Client
	logger providers.Logger
}

func NewClient(conf *structures.Config, logger providers.Logger) ReportsApi {
	timeout := conf.Reports.RequestTimeout
	if timeout <= 0 {
		timeout = 10
	}

	client := resty.New().
		SetBaseURL(conf.Reports.ApiUrl).
		SetTimeout(timeout * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{http: client, logger: logger}
}

func (c *Client) GetReports(interval models.ReportsInterval) ([]string, error) {
	var reports []string
	resp, err := c.http.R().
		SetQueryParam("intervalNumber", strconv.FormatUint(interval.Number, 10)).
		SetQueryParam("intervalLength", strconv.FormatUint(interval.Length, 10)).
		SetResult(&reports).
		Get("/v1/reports")
	if err != nil {
		return nil, fmt.Errorf("fetching reports for interval %d: %w", interval.Number, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching reports for interval %d: status %d", interval.Number, resp.StatusCode())
	}
	return reports, nil
}

func (c *Client) PostReport(encoded string) error {
	resp, err := c.http.R().
		SetHeader("Content-Type", "text/plain").
		SetBody(encoded).
		Post("/v1/reports")
	if err != nil {
		return fmt.Errorf("posting report: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("posting report: status %d", resp.StatusCode())
	}
	c.logger.Infof(providers.TypePost, "Submitted report, status %d", resp.StatusCode())
	return nil
}
