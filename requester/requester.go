// Copyright (C) 2024, Streamproofs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/atomic"
)

const defaultTimeout = 30 * time.Second

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// Error is the error object a node attaches to a rejected request. It is
// returned to callers verbatim, [Data] included, so nothing the node said
// is lost.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// EndpointRequester issues JSON-RPC 2.0 calls with positional params
// against a single HTTP endpoint.
type EndpointRequester struct {
	uri     string
	client  *http.Client
	headers http.Header
	nextID  *atomic.Uint64
}

type Option func(*EndpointRequester)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(e *EndpointRequester) {
		e.client = client
	}
}

// WithHeader attaches a header to every request.
func WithHeader(key, value string) Option {
	return func(e *EndpointRequester) {
		e.headers.Set(key, value)
	}
}

func New(uri string, opts ...Option) *EndpointRequester {
	e := &EndpointRequester{
		uri:     uri,
		client:  &http.Client{Timeout: defaultTimeout},
		headers: http.Header{},
		nextID:  atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SendRequest posts one call and decodes its result into [result], which
// may be nil when the caller only cares about success. A node-side
// rejection is returned as a [*Error].
func (e *EndpointRequester) SendRequest(ctx context.Context, method string, params []any, result any) error {
	id := e.nextID.Inc()
	payload, err := json.Marshal(&request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.uri, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range e.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	if parsed.Error != nil {
		return parsed.Error
	}
	if parsed.ID != id {
		return fmt.Errorf("%w: response id %d for request %d", ErrMalformedResponse, parsed.ID, id)
	}
	if result == nil {
		return nil
	}
	if len(parsed.Result) == 0 {
		return fmt.Errorf("%w: missing result", ErrMalformedResponse)
	}
	if err := json.Unmarshal(parsed.Result, result); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return nil
}
