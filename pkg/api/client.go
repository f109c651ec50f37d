// Package api implements the REST gateway for the vizinhanca backend.
//
// All calls attach the session bearer token when one is available. A 401 on
// any endpoint other than login fires the unauthorized hook so the session
// store can clear persisted credentials; a 401 from login itself just means
// bad credentials and is reported to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/klausmullerDev/vizinhanca-cli/errors"
	"github.com/klausmullerDev/vizinhanca-cli/logging"
)

const loginPath = "/users/login"

// TokenSource supplies the current bearer token. The session store implements
// this; an empty string means no session.
type TokenSource interface {
	Token() string
}

// Client talks to the vizinhanca REST API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	onUnauthorized func()
	logger         *logrus.Entry
}

// New creates a Client for the given base URL.
func New(baseURL string) *Client {
	transport := &http.Transport{
		DisableKeepAlives: false,
		MaxIdleConns:      10,
		IdleConnTimeout:   90 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logging.NewLogger("api"),
	}
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTokenSource wires the session store in as the bearer token provider.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// SetUnauthorizedHook registers the callback fired on a 401 outside login.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// APIError carries the HTTP status and the server-provided message, when the
// body had one. Business-rule rejections surface their message through here.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// ServerMessage extracts the server-provided message from an error chain,
// or returns the empty string.
func ServerMessage(err error) string {
	for err != nil {
		if apiErr, ok := err.(*APIError); ok {
			return apiErr.Message
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = unwrapper.Unwrap()
	}
	return ""
}

// do issues a request and decodes the JSON response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Debug("request failed")
		return errors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// handleErrorResponse maps an error status to the client error taxonomy.
func (c *Client) handleErrorResponse(resp *http.Response, path string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && path == loginPath:
		return errors.Wrap(apiErr, errors.ErrCodeBadCredentials, "email ou senha incorretos")
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.WithField("path", path).Info("session rejected by server")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return errors.Wrap(apiErr, errors.ErrCodeUnauthorized, "sessão expirada, faça login novamente")
	case resp.StatusCode == http.StatusNotFound:
		return errors.Wrap(apiErr, errors.ErrCodeNotFound, "recurso não encontrado")
	case resp.StatusCode == http.StatusConflict:
		return errors.Wrap(apiErr, errors.ErrCodeConflict, apiErr.Error())
	case resp.StatusCode >= 500:
		return errors.Wrap(apiErr, errors.ErrCodeServer, "erro interno do servidor")
	default:
		return errors.Wrap(apiErr, errors.ErrCodeConflict, apiErr.Error())
	}
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

// multipartBody assembles a multipart form from text fields and optional
// file fields (field name → local path).
func multipartBody(fields map[string]string, files map[string]string) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	for key, path := range files {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
		}
		part, err := w.CreateFormFile(key, filepath.Base(path))
		if err != nil {
			f.Close()
			return nil, "", fmt.Errorf("failed to create form file %s: %w", key, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return nil, "", fmt.Errorf("failed to copy %s: %w", path, err)
		}
		f.Close()
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func escape(id string) string {
	return url.PathEscape(id)
}
