package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rafael-ulguim1/askgemini/pkg/credential"
	"github.com/rafael-ulguim1/askgemini/pkg/generation"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production Gemini API endpoint (no trailing slash).
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// authHeader carries the API key on every request.
const authHeader = "x-goog-api-key"

// defaultTimeout bounds a single generateContent exchange when no client
// is configured.
const defaultTimeout = 2 * time.Minute

// Adapter implements generation.Generator against the Gemini API. The
// zero Logger discards all output; set it to enable debug logging.
type Adapter struct {
	Credential credential.Credential // API key, applied as x-goog-api-key.
	BaseURL    string                // API base URL (no trailing slash); DefaultBaseURL when empty.
	Client     *http.Client          // HTTP client; falls back to a default with a 2-minute timeout.
	Headers    map[string]string     // Extra headers applied to every request.
	Logger     zerolog.Logger        // Debug logging; zerolog.Nop() by default.

	clientOnce    sync.Once
	defaultClient *http.Client
}

// New creates an Adapter for the given endpoint and credential. An empty
// baseURL selects the production Gemini endpoint.
func New(baseURL string, cred credential.Credential) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Adapter{
		Credential: cred,
		BaseURL:    baseURL,
		Logger:     zerolog.Nop(),
	}
}

// httpClient returns the configured client or a cached default client
// with the default timeout.
func (a *Adapter) httpClient() *http.Client {
	if a.Client != nil {
		return a.Client
	}

	a.clientOnce.Do(func() {
		a.defaultClient = &http.Client{Timeout: defaultTimeout}
	})

	return a.defaultClient
}

// NewRequest builds an *http.Request with the base URL, auth, and custom
// headers already applied.
func (a *Adapter) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := a.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	if !a.Credential.IsZero() {
		req.Header.Set(authHeader, a.Credential.Key())
	}

	for k, v := range a.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// Do sends the request using the configured HTTP client.
func (a *Adapter) Do(req *http.Request) (*http.Response, error) {
	return a.httpClient().Do(req) //nolint:gosec // URL is built from trusted BaseURL config, not user input.
}

// postJSON marshals payload as JSON, sends a POST to the given path,
// classifies the response status, and unmarshals a 2xx body into dest.
// Every error it returns is one of the generation error kinds.
func (a *Adapter) postJSON(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &generation.ResponseError{Reason: "marshal payload", Body: err.Error()}
	}

	req, err := a.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return &generation.RejectionError{Message: "build request: " + err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Do(req)
	if err != nil {
		// Transport-level failures: DNS, connect, timeout. All transient.
		return &generation.TransientError{Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)

		return classifyStatus(resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &generation.ResponseError{Reason: "decode response", Body: err.Error()}
	}

	return nil
}

// classifyStatus maps a non-2xx response onto the error taxonomy:
// 429 and 5xx are transient, everything else is a definitive rejection.
func classifyStatus(status int, retryAfter string, body []byte) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &generation.TransientError{
			RetryAfter: ParseRetryAfter(retryAfter),
			Cause:      fmt.Errorf("status %d: %s", status, apiErrorSummary(body)),
		}
	case status == http.StatusRequestTimeout || status >= 500:
		return &generation.TransientError{
			Cause: fmt.Errorf("status %d: %s", status, apiErrorSummary(body)),
		}
	default:
		code, msg := parseAPIError(body)

		return &generation.RejectionError{
			StatusCode: status,
			Code:       code,
			Message:    msg,
		}
	}
}

// apiError is the error envelope Google APIs return on non-2xx statuses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// parseAPIError extracts the status and message from a Google API error
// body. Unparseable bodies are returned verbatim as the message.
func parseAPIError(body []byte) (code, message string) {
	var e apiError
	if err := json.Unmarshal(body, &e); err != nil || e.Error.Message == "" {
		return "", string(body)
	}

	return e.Error.Status, e.Error.Message
}

// apiErrorSummary renders an error body as a one-line summary.
func apiErrorSummary(body []byte) string {
	code, msg := parseAPIError(body)
	if code != "" {
		return code + ": " + msg
	}

	return msg
}

// ParseRetryAfter parses the Retry-After header value as either seconds
// (integer) or an HTTP-date (RFC 7231). Returns zero if unparseable or
// if the date is in the past.
func ParseRetryAfter(val string) time.Duration {
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(val); err == nil {
		d := time.Until(t)
		if d > 0 {
			return d
		}
		return 0
	}
	return 0
}
