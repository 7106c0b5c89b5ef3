package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openobserve/alertquery/internal/sqlgen"
	"github.com/openobserve/alertquery/internal/wire"
)

// DefaultRemoteTimeout bounds a single remote compile call.
const DefaultRemoteTimeout = 10 * time.Second

// CompileRequest is the remote "compile to SQL" contract.
type CompileRequest struct {
	StreamName     string         `json:"stream_name"`
	StreamType     string         `json:"stream_type"`
	QueryCondition QueryCondition `json:"query_condition"`
}

// QueryCondition carries the versioned tree plus aggregation settings.
type QueryCondition struct {
	Type        string              `json:"type"` // always "custom"
	Conditions  wire.Envelope       `json:"conditions"`
	Aggregation *sqlgen.Aggregation `json:"aggregation,omitempty"`
}

// CompileResponse is the remote compiler's reply.
type CompileResponse struct {
	SQL string `json:"sql"`
}

// RemoteCompiler compiles a condition tree on the backend.
type RemoteCompiler interface {
	CompileSQL(ctx context.Context, req CompileRequest) (string, error)
}

// HTTPCompiler calls the backend compile endpoint over HTTP.
//
// HTTPCompiler is safe for concurrent use.
type HTTPCompiler struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPCompiler creates a client for the compile endpoint at baseURL,
// e.g. "http://localhost:5080".
func NewHTTPCompiler(baseURL string) *HTTPCompiler {
	return &HTTPCompiler{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultRemoteTimeout,
		},
	}
}

// WithTimeout sets a custom timeout for compile requests.
func (c *HTTPCompiler) WithTimeout(timeout time.Duration) *HTTPCompiler {
	c.httpClient.Timeout = timeout
	return c
}

// CompileSQL posts the request and returns the server-compiled SQL.
func (c *HTTPCompiler) CompileSQL(ctx context.Context, req CompileRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal compile request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/alerts/compile_sql", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build compile request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("compile request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("compile request: status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}

	var decoded CompileResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode compile response: %w", err)
	}
	if decoded.SQL == "" {
		return "", fmt.Errorf("compile response carried no sql")
	}
	return decoded.SQL, nil
}
