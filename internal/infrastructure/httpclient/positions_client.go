package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"positions_tracker/internal/app/port"
	"positions_tracker/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// positionsClientImpl implements port.PositionsProvider against the backend
// positions API.
type positionsClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewPositionsClient creates a new instance of positionsClientImpl.
// A non-positive requestsPerSecond disables rate limiting.
func NewPositionsClient(baseURL string, timeout time.Duration, requestsPerSecond float64, burst int, logger *zap.Logger) port.PositionsProvider {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
	return &positionsClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		limiter: limiter,
		logger:  logger.Named("PositionsClient"),
	}
}

// GetPositions implements the port.PositionsProvider interface.
func (c *positionsClientImpl) GetPositions(ctx context.Context, address string, currency string) (*entity.RawPositionsResponse, error) {
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	requestURL := fmt.Sprintf("%s/v1/positions?address=%s&currency=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(currency))

	c.logger.Debug("Requesting positions from backend", zap.String("url", requestURL))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute positions request", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute positions request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Positions API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody),
		)
		return nil, fmt.Errorf("positions API request to %s failed with status %d: %s", requestURL, resp.StatusCode(), string(rawBody))
	}

	parsed, err := decodePositionsResponse(rawBody)
	if err != nil {
		c.logger.Error("Failed to unmarshal positions response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err),
		)
		return nil, err
	}

	c.logger.Debug("Successfully fetched positions",
		zap.String("address", address),
		zap.String("currency", currency),
		zap.Int("positionCount", len(parsed.Positions)))
	return parsed, nil
}

// decodePositionsResponse parses a backend position-list payload. Amounts
// arrive as decimal strings and decode into exact decimals.
func decodePositionsResponse(body []byte) (*entity.RawPositionsResponse, error) {
	var parsed entity.RawPositionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal positions response: %w", err)
	}
	return &parsed, nil
}
