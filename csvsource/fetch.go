// Package csvsource reads the Safe Harbor desired state and chain directory
// from CSV exports, typically Google Sheets "export?format=csv" URLs.
package csvsource

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/log"
)

// ErrNotCSV indicates the server answered with something other than CSV.
var ErrNotCSV = errors.New("csvsource: invalid content type, expected CSV data; check the URL format")

// HTTPError is a non-2xx response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("csvsource: HTTP error fetching %s: status %d", e.URL, e.StatusCode)
}

// Record is one CSV row keyed by header column.
type Record map[string]string

// Fetcher downloads and parses CSV documents.
type Fetcher struct {
	client        *http.Client
	logger        log.Logger
	maxRetries    uint64
	retryInterval time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client. Default is a client with a 30s timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithRetry sets how often and how far apart transient failures are retried.
// Default is 3 retries, one second apart.
func WithRetry(maxRetries uint64, interval time.Duration) Option {
	return func(f *Fetcher) {
		f.maxRetries = maxRetries
		f.retryInterval = interval
	}
}

// WithLogger sets the logger. Default is log.Root().
func WithLogger(logger log.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:        &http.Client{Timeout: 30 * time.Second},
		logger:        log.Root(),
		maxRetries:    3,
		retryInterval: time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads url and parses it as CSV with a header row. Fields are
// trimmed and blank lines skipped. Transport errors and 5xx responses are
// retried; other failures are returned immediately.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]Record, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(f.retryInterval), f.maxRetries),
		ctx,
	)
	body, err := backoff.RetryNotifyWithData(func() ([]byte, error) {
		return f.download(ctx, url)
	}, policy, func(err error, wait time.Duration) {
		f.logger.Warn("Retrying CSV download", "url", url, "err", err, "wait", wait)
	})
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(body))
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := &HTTPError{URL: url, StatusCode: resp.StatusCode}
		if resp.StatusCode >= 500 {
			return nil, herr
		}
		return nil, backoff.Permanent(herr)
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/csv") {
		return nil, backoff.Permanent(ErrNotCSV)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Parse reads CSV with a header row into records keyed by column name.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvsource: read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	records := []Record{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvsource: read row: %w", err)
		}
		if blank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = strings.TrimSpace(row[i])
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
