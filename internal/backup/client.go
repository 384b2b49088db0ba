// Package backup pulls spreadsheet exports from a running gymtracker and
// stores them on disk.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

const userAgent = "GymTracker/1 backup"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient uses a traced http client when httpClient is nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   time.Minute,
		}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func readError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
}

// Login returns a session token.
func (c *Client) Login(ctx context.Context, username, password string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	payload, err := json.Marshal(auth.Credentials{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/a/login", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login: %w", readError(resp))
	}

	var result auth.LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("login: empty token")
	}
	return result.Token, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/a/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set(auth.TokenHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("logout: %w", readError(resp))
	}
	return nil
}

// Export downloads one workbook and returns the file name the server chose.
func (c *Client) Export(ctx context.Context, token, kind, timeRange string) (_ string, _ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	path := fmt.Sprintf("/gymstats/export/%s?range=%s", kind, timeRange)
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set(auth.TokenHeader, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("export request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("export %s: %w", kind, readError(resp))
	}

	fileName := fmt.Sprintf("gym_%s.xlsx", kind)
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		fileName = filepath.Base(params["filename"])
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read export body: %w", err)
	}
	return fileName, content, nil
}

type Params struct {
	Username  string
	Password  string
	Kinds     []string
	TimeRange string
	Dir       string
}

// Run logs in, stores every requested export under Dir and logs out again.
// It returns the written paths; a failed logout is reported with the
// export error, if any.
func (c *Client) Run(ctx context.Context, params Params) (_ []string, err error) {
	if err := os.MkdirAll(params.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	token, err := c.Login(ctx, params.Username, params.Password)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, c.Logout(ctx, token))
	}()

	var written []string
	for _, kind := range params.Kinds {
		fileName, content, err := c.Export(ctx, token, kind, params.TimeRange)
		if err != nil {
			return written, err
		}

		path := filepath.Join(params.Dir, fileName)
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		log.Debugf("backup: %s export stored to %s (%d bytes)", kind, path, len(content))
		written = append(written, path)
	}

	return written, nil
}
