// Package upstream is the HTTP client for the legacy HRMS REST API. Domain
// services depend on the Gateway interface so tests can substitute fakes
// without touching the network.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/envelope"
	"github.com/Devender0077/HRMS-Go-V5-sub000/internal/requestctx"
)

const DefaultTimeout = 15 * time.Second

// Kind classifies upstream failures.
type Kind int

const (
	// KindTransport: the call itself failed (DNS, timeout, connection).
	KindTransport Kind = iota
	// KindApplication: upstream responded with success:false or an error
	// status, carrying its own message.
	KindApplication
	// KindShape: the response matched none of the known envelope shapes.
	KindShape
)

// Error is the typed failure returned by every Gateway method.
type Error struct {
	Kind    Kind
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("upstream %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("upstream %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Gateway is the remote collaborator the mutator and domain services call.
type Gateway interface {
	FetchCollection(ctx context.Context, path string, altKeys ...string) ([]map[string]any, error)
	Post(ctx context.Context, path string, body any) error
	Put(ctx context.Context, path string, body any) error
	Delete(ctx context.Context, path string) error
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchCollection GETs a collection endpoint and unwraps whichever envelope
// shape it uses. The request is bound to ctx, so a caller going away cancels
// the in-flight fetch instead of leaving it to resolve into nowhere.
func (c *Client) FetchCollection(ctx context.Context, path string, altKeys ...string) ([]map[string]any, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &Error{Kind: KindShape, Path: path, Message: "response is not valid JSON", Cause: err}
	}

	result := envelope.Unwrap(decoded, altKeys...)
	if !result.OK {
		kind := KindApplication
		if result.Message == "unrecognized response shape" {
			kind = KindShape
		}
		return nil, &Error{Kind: kind, Path: path, Message: result.Message}
	}
	return result.Items, nil
}

func (c *Client) Post(ctx context.Context, path string, body any) error {
	return c.mutate(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) error {
	return c.mutate(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.mutate(ctx, http.MethodDelete, path, nil)
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	// Mutation endpoints answer either an empty body or an envelope whose
	// success flag is the only part this layer trusts.
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	if flag, present := decoded["success"].(bool); present && !flag {
		return &Error{Kind: KindApplication, Path: path, Message: messageOf(decoded)}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindTransport, Path: path, Message: "encode request body failed", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Path: path, Message: "build request failed", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := requestctx.GetBearerToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Path: path, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Path: path, Message: "read response failed", Cause: err}
	}

	if resp.StatusCode >= 400 {
		message := fmt.Sprintf("upstream returned %d", resp.StatusCode)
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			if msg, ok := decoded["message"].(string); ok && msg != "" {
				message = msg
			}
		}
		return nil, &Error{Kind: KindApplication, Path: path, Message: message}
	}
	return raw, nil
}

func messageOf(obj map[string]any) string {
	if msg, ok := obj["message"].(string); ok && msg != "" {
		return msg
	}
	return "request failed"
}
