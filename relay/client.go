package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flokiorg/tickethub/logger"
)

// Encoding selects how the request body is sent.
type Encoding string

const (
	EncodingForm Encoding = "form"
	EncodingJSON Encoding = "json"
)

// ErrTransport wraps every failure that prevented a relay response from
// arriving, deadline expiry included.
var ErrTransport = errors.New("relay transport failure")

type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) Accepted() bool {
	return r.StatusCode < http.StatusMultipleChoices
}

// InvalidSignature reports the status the relay uses for a signature it could
// not verify.
func (r *Response) InvalidSignature() bool {
	return r.StatusCode == http.StatusUnauthorized
}

type Client interface {
	Submit(ctx context.Context, endpoint string, req Request) (*Response, error)
}

type HTTPClient struct {
	httpClient *http.Client
	encoding   Encoding
}

func NewHTTPClient(encoding Encoding) *HTTPClient {
	if encoding != EncodingJSON {
		encoding = EncodingForm
	}
	return &HTTPClient{
		// the caller's context carries the real deadline
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		encoding:   encoding,
	}
}

// Submit posts the request and returns whatever status the relay answered
// with. Only transport problems are returned as errors.
func (c *HTTPClient) Submit(ctx context.Context, endpoint string, req Request) (*Response, error) {
	body, contentType, err := c.encode(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		logger.Logger.Error().Err(err).Str("endpoint", endpoint).Msg("Failed to create relay request")
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "Tickethub")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	logger.Logger.Debug().
		Str("endpoint", endpoint).
		Int("status_code", res.StatusCode).
		Str("body", string(resBody)).
		Msg("Relay responded")

	return &Response{StatusCode: res.StatusCode, Body: resBody}, nil
}

func (c *HTTPClient) encode(req Request) (io.Reader, string, error) {
	if c.encoding == EncodingJSON {
		payload, err := json.Marshal(req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal relay request: %w", err)
		}
		return bytes.NewReader(payload), "application/json", nil
	}
	return strings.NewReader(req.Values().Encode()), "application/x-www-form-urlencoded", nil
}
