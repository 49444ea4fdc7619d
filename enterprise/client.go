// Package enterprise is the REST client for the self-managed cluster
// control plane.
package enterprise

import (
	"bytes"
	"context"
	"crypto/tls"
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

// DefaultGetTries bounds transport-level retries for idempotent reads.
const DefaultGetTries = 4

const requestTimeout = 30 * time.Second

// Client issues requests against the cluster API with basic auth. Clusters
// commonly run with self-signed certs, so Insecure disables verification.
// Reads retry at the transport level; writes are issued exactly once.
// Safe for concurrent use.
type Client struct {
	baseURL  string
	username string
	password string
	reader   *pester.Client
	writer   *http.Client
	stat     stats.Receiver
}

func NewClient(url, username, password string, insecure bool) *Client {
	transport := http.DefaultTransport
	if insecure {
		transport = &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	}
	reader := pester.NewExtendedClient(&http.Client{Transport: transport, Timeout: requestTimeout})
	reader.Backoff = pester.ExponentialBackoff
	reader.MaxRetries = DefaultGetTries
	reader.LogHook = func(e pester.ErrEntry) {
		log.Errorf("Retrying after failed attempt: %+v", e)
	}
	return &Client{
		baseURL:  strings.TrimRight(url, "/"),
		username: username,
		password: password,
		reader:   reader,
		writer:   &http.Client{Transport: transport, Timeout: requestTimeout},
		stat:     stats.DefaultReceiver().Scope("enterprise"),
	}
}

func (c *Client) Get(ctx context.Context, path string) (interface{}, error) {
	req, err := c.newRequest(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	c.stat.Counter("gets").Inc(1)
	resp, err := c.reader.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cluster API GET %s", path)
	}
	return c.decode(resp, "GET", path)
}

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
		return nil, errors.Wrapf(err, "cluster API %s %s", method, path)
	}
	return c.decode(resp, method, path)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "cluster API %s %s", method, path)
	}
	req.SetBasicAuth(c.username, c.password)
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
		return nil, errors.Wrapf(err, "cluster API %s %s: reading response", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.stat.Counter("apiErrors").Inc(1)
		return nil, fmt.Errorf("cluster API %s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(content)))
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return map[string]interface{}{}, nil
	}
	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, errors.Wrapf(err, "cluster API %s %s: decoding response", method, path)
	}
	return doc, nil
}
