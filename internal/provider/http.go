package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultHTTPTimeout     = 5 * time.Second
	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxElapsed      = 5 * time.Second
	defaultMaxBodyBytes    = 64 << 20
)

// HTTPConfig configures an HTTPProvider
type HTTPConfig struct {
	BaseURL         string
	Timeout         time.Duration // Per attempt
	InitialInterval time.Duration
	MaxElapsed      time.Duration // Total budget across retries
	MaxBodyBytes    int64
	Client          *http.Client // Defaults to an otelhttp-instrumented client
	Logger          *slog.Logger
}

// HTTPProvider fetches point sets from a remote point set manager at
// GET {base}/pointset/{id}
type HTTPProvider struct {
	base   *url.URL
	client *http.Client
	cfg    HTTPConfig
	logger *slog.Logger
}

// NewHTTPProvider creates a provider for the manager at cfg.BaseURL
func NewHTTPProvider(cfg HTTPConfig) (*HTTPProvider, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if cfg.MaxElapsed <= 0 {
		cfg.MaxElapsed = defaultMaxElapsed
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPProvider{base: base, client: client, cfg: cfg, logger: logger}, nil
}

// GetPointSet implements Provider. 5xx responses, 429 and transport
// errors are retried with exponential backoff until MaxElapsed.
func (p *HTTPProvider) GetPointSet(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	target := p.base.JoinPath("pointset", url.PathEscape(id)).String()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.cfg.InitialInterval

	attempts := 0
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempts++
		return p.fetch(ctx, target)
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(p.cfg.MaxElapsed),
		backoff.WithNotify(func(err error, wait time.Duration) {
			p.logger.Warn("point set fetch failed, retrying",
				"id", id, "attempt", attempts, "wait", wait, "error", err)
		}),
	)
	if err == nil {
		return data, nil
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// fetch performs one attempt. Errors that must not be retried are
// wrapped with backoff.Permanent.
func (p *HTTPProvider) fetch(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: build request: %w", ErrUnavailable, err))
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(io.LimitReader(resp.Body, p.cfg.MaxBodyBytes+1))
		if err != nil {
			return nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
		}
		if int64(len(data)) > p.cfg.MaxBodyBytes {
			return nil, backoff.Permanent(fmt.Errorf("%w: body exceeds %d bytes", ErrUnavailable, p.cfg.MaxBodyBytes))
		}
		return data, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode))
	}
}
