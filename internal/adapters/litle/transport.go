package litle

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	pkgerrors "github.com/kevin07696/litle-gateway/pkg/errors"
	"github.com/kevin07696/litle-gateway/pkg/resilience"
)

// TransportConfig contains configuration for the HTTP transport
type TransportConfig struct {
	// HTTP client timeout
	Timeout time.Duration

	// TLS configuration
	InsecureSkipVerify bool

	// Retry configuration. Retries apply to transport-level failures
	// only; the gateway core above never retries.
	MaxRetries int
}

// DefaultTransportConfig returns default transport configuration
func DefaultTransportConfig() *TransportConfig {
	return &TransportConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// HTTPTransport posts XML payloads to the processor endpoints over TLS,
// with exponential-backoff retries and a circuit breaker in front
type HTTPTransport struct {
	config  *TransportConfig
	client  *http.Client
	logger  *zap.Logger
	breaker *circuitBreaker
	backoff resilience.BackoffStrategy
}

// NewHTTPTransport creates an HTTP transport for the gateway
func NewHTTPTransport(config *TransportConfig, logger *zap.Logger) *HTTPTransport {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}

	return &HTTPTransport{
		config: config,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		logger:  logger,
		breaker: newCircuitBreaker(defaultCircuitBreakerConfig()),
		backoff: resilience.DefaultExponentialBackoff(),
	}
}

// Post submits one payload and returns the raw response body
func (t *HTTPTransport) Post(ctx context.Context, url string, payload []byte) ([]byte, error) {
	var body []byte
	err := t.breaker.call(func() error {
		var lastErr error
		for attempt := 0; attempt <= t.config.MaxRetries; attempt++ {
			if attempt > 0 {
				delay := t.backoff.NextDelay(attempt - 1)
				t.logger.Info("Retrying Litle request with exponential backoff",
					zap.Int("attempt", attempt),
					zap.Int("max_retries", t.config.MaxRetries),
					zap.Duration("backoff_delay", delay),
				)
				select {
				case <-ctx.Done():
					return fmt.Errorf("retry cancelled: %w", ctx.Err())
				case <-time.After(delay):
				}
			}

			startTime := time.Now()
			b, err := t.postOnce(ctx, url, payload)
			if err != nil {
				lastErr = err
				var perr *pkgerrors.PaymentError
				if errors.As(err, &perr) && !perr.IsRetriable {
					return err
				}
				t.logger.Warn("Litle request failed",
					zap.Error(err),
					zap.Int("attempt", attempt),
					zap.Duration("elapsed", time.Since(startTime)),
				)
				continue
			}

			t.logger.Info("Received Litle response",
				zap.Duration("elapsed", time.Since(startTime)),
				zap.Int("body_length", len(b)),
			)
			body = b
			return nil
		}
		return fmt.Errorf("failed after %d retries: %w", t.config.MaxRetries, lastErr)
	})

	if err != nil {
		if errors.Is(err, errCircuitOpen) {
			t.logger.Warn("Circuit breaker is open, rejecting Litle request",
				zap.String("circuit_state", t.breaker.currentState().String()),
			)
		}
		return nil, err
	}
	return body, nil
}

func (t *HTTPTransport) postOnce(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, pkgerrors.NewPaymentError("NETWORK_ERROR", "Failed to connect to payment gateway", pkgerrors.CategoryNetworkError, true)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, pkgerrors.NewPaymentError("GATEWAY_ERROR", "Payment gateway error", pkgerrors.CategorySystemError, true)
	}
	if resp.StatusCode >= 400 {
		return nil, pkgerrors.NewPaymentError("REQUEST_ERROR", "Invalid request to payment gateway", pkgerrors.CategoryInvalidRequest, false)
	}
	return body, nil
}
