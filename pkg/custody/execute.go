package custody

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	headerAPIKey      = "X-API-Key"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// envelope is the response shape emitted by the orchestrator. Every field is
// optional; presence is checked explicitly so bare payloads and malformed
// bodies pass through unharmed.
type envelope struct {
	Success *bool           `json:"success"`
	Status  *int            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
	Code    *string         `json:"code"`
}

// execute performs one API exchange and normalizes the outcome. It fills out
// and returns nil on success, or returns exactly one of *APIError or
// *NetworkError. Paths must already be percent-escaped by the caller.
func (c *Client) execute(ctx context.Context, method, path string, body any, out any) error {
	started := time.Now()
	url := c.baseURL + path

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	headers := map[string]string{headerAPIKey: c.apiKey}
	var payload []byte
	if body != nil && method != http.MethodGet && method != http.MethodHead {
		encoded, err := json.Marshal(body)
		if err != nil {
			netErr := &NetworkError{Message: fmt.Sprintf("encode request body: %v", err), Cause: err}
			return c.failNetwork(method, path, netErr, started)
		}
		payload = encoded
		headers[headerContentType] = contentTypeJSON
	}

	c.log.Debugw("custody request", "method", method, "url", url)

	resp, err := c.http.Do(reqCtx, method, url, headers, payload)
	if err != nil {
		return c.failNetwork(method, path, c.classifyTransportError(err), started)
	}

	rawBody := resp.Body()
	env, decoded, parsed := parseBody(rawBody)

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		msg := fmt.Sprintf("HTTP error %d", status)
		if text := strings.TrimSpace(resp.Status()); text != "" {
			msg = text
		}
		if env != nil && env.Error != nil {
			msg = *env.Error
		}
		apiErr := &APIError{StatusCode: status, Message: msg}
		if env != nil && env.Code != nil {
			apiErr.Code = *env.Code
		}
		if parsed {
			apiErr.Raw = decoded
		} else {
			apiErr.Raw = string(rawBody)
		}
		return c.failAPI(method, path, apiErr, started)
	}

	if env != nil && env.Success != nil && !*env.Success {
		msg := "request failed"
		if env.Error != nil {
			msg = *env.Error
		}
		declared := status
		if env.Status != nil {
			declared = *env.Status
		}
		apiErr := &APIError{StatusCode: declared, Message: msg, Raw: decoded}
		if env.Code != nil {
			apiErr.Code = *env.Code
		}
		return c.failAPI(method, path, apiErr, started)
	}

	if out != nil && parsed {
		src := rawBody
		if env != nil && dataPresent(env.Data) {
			src = env.Data
		}
		if err := json.Unmarshal(src, out); err != nil {
			apiErr := &APIError{
				StatusCode: status,
				Message:    fmt.Sprintf("decode response payload: %v", err),
				Raw:        decoded,
			}
			return c.failAPI(method, path, apiErr, started)
		}
	}

	c.observe(method, OutcomeSuccess, started)
	return nil
}

func (c *Client) failAPI(method, path string, apiErr *APIError, started time.Time) error {
	c.log.Warnw("custody api error", "method", method, "path", path, "status", apiErr.StatusCode)
	c.observe(method, OutcomeAPIError, started)
	return apiErr
}

func (c *Client) failNetwork(method, path string, netErr *NetworkError, started time.Time) error {
	c.log.Errorw("custody request failed", "method", method, "path", path, "error", netErr.Message)
	c.observe(method, OutcomeNetworkError, started)
	return netErr
}

// classifyTransportError separates the timeout case, whose message states the
// configured timeout, from every other transport failure, which carries the
// underlying message or a generic fallback.
func (c *Client) classifyTransportError(err error) *NetworkError {
	if isTimeout(err) {
		return &NetworkError{
			Message: fmt.Sprintf("request timed out after %dms", c.timeout.Milliseconds()),
			Cause:   err,
		}
	}
	msg := "network request failed"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	return &NetworkError{Message: msg, Cause: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// parseBody decodes the response body leniently. The generic value preserves
// the body for diagnostics; the typed envelope is non-nil only when the body
// is a JSON object. A body that is not JSON yields parsed=false, not an error.
func parseBody(body []byte) (env *envelope, decoded any, parsed bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil, false
	}
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, nil, false
	}
	var e envelope
	if err := json.Unmarshal(trimmed, &e); err != nil {
		return nil, decoded, true
	}
	return &e, decoded, true
}

// dataPresent reports whether the envelope carried a non-null data field.
func dataPresent(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
