// Package api provides the typed HTTP client the keywarden CLI uses to
// talk to the local vault daemon over TLS.
package api

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/keywarden/keywarden/internal/models"
)

// Client talks to the vault daemon's command API.
type Client struct {
	// BaseURL is the daemon's address, e.g. https://localhost:8466.
	BaseURL string
	// HTTP performs the requests. New builds it with the pinned CA.
	HTTP *http.Client
}

// New builds a Client trusting only the certificate in caFile, which is
// the daemon's own self-signed serving certificate.
func New(baseURL, caFile string) (*Client, error) {
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			RootCAs:    caPool,
			MinVersion: tls.VersionTLS12,
		},
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}, nil
}

// StoreKey seals and stores a private key on the daemon.
func (c *Client) StoreKey(req models.StoreKeyRequest) error {
	return c.postJSON("/api/keys", req, nil)
}

// RetrieveKey recovers a stored private key from the daemon.
func (c *Client) RetrieveKey(req models.RetrieveKeyRequest) (string, error) {
	var resp models.RetrieveKeyResponse
	if err := c.postJSON("/api/keys/retrieve", req, &resp); err != nil {
		return "", err
	}
	return resp.PrivateKey, nil
}

// DeleteKey removes the stored key for username and keyType.
func (c *Client) DeleteKey(username, keyType string) error {
	req, err := http.NewRequest(http.MethodDelete,
		c.BaseURL+"/api/keys/"+username+"/"+keyType, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, nil)
}

// Clear wipes every key stored on the daemon.
func (c *Client) Clear() error {
	req, err := http.NewRequest(http.MethodDelete, c.BaseURL+"/api/keys", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, nil)
}

// VerifyPassword checks a candidate password against the daemon's policy.
func (c *Client) VerifyPassword(password string) (bool, error) {
	var resp models.VerifyResponse
	err := c.postJSON("/api/verify/password", models.VerifyPasswordRequest{Password: password}, &resp)
	return resp.Valid, err
}

// VerifyKeyFormat checks whether a private key looks like a wallet key.
func (c *Client) VerifyKeyFormat(privateKey string) (bool, error) {
	var resp models.VerifyResponse
	err := c.postJSON("/api/verify/key-format", models.VerifyKeyRequest{PrivateKey: privateKey}, &resp)
	return resp.Valid, err
}

// postJSON sends payload to path and decodes the response into out when
// out is non-nil.
func (c *Client) postJSON(path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request, turning non-2xx answers into errors carrying
// the daemon's message.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
