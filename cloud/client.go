// Package cloud is the REST client for the hosted control plane.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"

	"github.com/redisctl/redisctl/common/stats"
)

const DefaultAPIURL = "https://api.redislabs.com/v1"

// DefaultGetTries bounds transport-level retries for idempotent reads.
// Mutating calls are never retried at any layer.
const DefaultGetTries = 4

const requestTimeout = 30 * time.Second

func MakePesterClient() *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = DefaultGetTries
	client.Timeout = requestTimeout
	client.LogHook = func(e pester.ErrEntry) {
		log.Errorf("Retrying after failed attempt: %+v", e)
	}
	return client
}

// Client issues requests against the cloud API. Reads go through a retrying
// pester client; writes use a plain client so create/delete calls are issued
// exactly once. Safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	reader    *pester.Client
	writer    *http.Client
	stat      stats.Receiver
}

func NewClient(apiURL, apiKey, apiSecret string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		baseURL:   strings.TrimRight(apiURL, "/"),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		reader:    MakePesterClient(),
		writer:    &http.Client{Timeout: requestTimeout},
		stat:      stats.DefaultReceiver().Scope("cloud"),
	}
}

// Get fetches a document. Idempotent, retried at the transport level.
func (c *Client) Get(ctx context.Context, path string) (interface{}, error) {
	req, err := c.newRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	c.stat.Counter("gets").Inc(1)
	resp, err := c.reader.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cloud API GET %s", path)
	}
	return c.decode(resp, "GET", path)
}

// Do performs a mutating call. Issued exactly once; callers that need
// completion tracking hand the response to the operation package.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (interface{}, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		payload = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	c.stat.Counter("mutations").Inc(1)
	resp, err := c.writer.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cloud API %s %s", method, path)
	}
	return c.decode(resp, method, path)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "cloud API %s %s", method, path)
	}
	// The API's own (backwards) header naming for key/secret auth.
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-api-secret-key", c.apiSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) decode(resp *http.Response, method, path string) (interface{}, error) {
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "cloud API %s %s: reading response", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.stat.Counter("apiErrors").Inc(1)
		// Pass the API's error body through verbatim.
		return nil, fmt.Errorf("cloud API %s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(content)))
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return map[string]interface{}{}, nil
	}
	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrapf(err, "cloud API %s %s: decoding response", method, path)
	}
	return doc, nil
}
