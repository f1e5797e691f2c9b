package xnat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Repository defines the read operations the engine needs.
type Repository interface {
	ListExperiments(ctx context.Context, project, subject string) ([]Experiment, error)
	ListScans(ctx context.Context, project, subject, experiment string) ([]ScanRecord, error)
}

// FieldWriter defines the scan attribute operations the executor needs.
type FieldWriter interface {
	GetScanField(ctx context.Context, ref ScanRef, field string) (string, error)
	SetScanField(ctx context.Context, ref ScanRef, field, value string) error
}

// Client provides access to the repository's REST API.
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	httpClient *http.Client
}

var (
	_ Repository  = (*Client)(nil)
	_ FieldWriter = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBasicAuth sets username/password credentials.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithToken sets a bearer token; it takes precedence over basic auth.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout adjusts the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a repository client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("xnat base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListExperiments returns the subject's imaging sessions.
func (c *Client) ListExperiments(ctx context.Context, project, subject string) ([]Experiment, error) {
	operation := "list experiments"
	if err := requireFields(operation, map[string]string{"project": project, "subject": subject}); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/data/projects/%s/subjects/%s/experiments",
		c.baseURL, url.PathEscape(project), url.PathEscape(subject))
	params := url.Values{}
	params.Set("format", "json")
	params.Set("columns", "ID,label,date,subject_ID,project,xsiType")

	var payload resultSet[Experiment]
	if err := c.getJSON(ctx, operation, endpoint, params, &payload); err != nil {
		return nil, err
	}
	return payload.ResultSet.Result, nil
}

// ListScans returns the scans recorded under one experiment.
func (c *Client) ListScans(ctx context.Context, project, subject, experiment string) ([]ScanRecord, error) {
	operation := "list scans"
	if err := requireFields(operation, map[string]string{
		"project": project, "subject": subject, "experiment": experiment,
	}); err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/data/projects/%s/subjects/%s/experiments/%s/scans",
		c.baseURL, url.PathEscape(project), url.PathEscape(subject), url.PathEscape(experiment))
	params := url.Values{}
	params.Set("format", "json")
	params.Set("columns", "ID,type,series_description,quality,frames,xsiType,note")

	var payload resultSet[ScanRecord]
	if err := c.getJSON(ctx, operation, endpoint, params, &payload); err != nil {
		return nil, err
	}
	return payload.ResultSet.Result, nil
}

// GetScanField reads a single scan attribute's current value.
func (c *Client) GetScanField(ctx context.Context, ref ScanRef, field string) (string, error) {
	operation := "get scan field"
	if err := ref.validate(operation); err != nil {
		return "", err
	}
	scans, err := c.ListScans(ctx, ref.Project, ref.Subject, ref.Experiment)
	if err != nil {
		return "", err
	}
	for _, scan := range scans {
		if scan.ID != ref.Scan {
			continue
		}
		switch field {
		case "type":
			return scan.Type, nil
		case "quality":
			return scan.Quality, nil
		case "series_description":
			return scan.SeriesDescription, nil
		case "note":
			return scan.Note, nil
		default:
			return "", Wrap(ErrRemote, operation, fmt.Sprintf("unsupported field %q", field), nil)
		}
	}
	return "", Wrap(ErrNotFound, operation, fmt.Sprintf("scan %s not in experiment %s", ref.Scan, ref.Experiment), nil)
}

// SetScanField updates a single scan attribute via the attribute-set endpoint.
func (c *Client) SetScanField(ctx context.Context, ref ScanRef, field, value string) error {
	operation := "set scan field"
	if err := ref.validate(operation); err != nil {
		return err
	}
	if strings.TrimSpace(field) == "" {
		return Wrap(ErrRemote, operation, "field required", nil)
	}
	endpoint := fmt.Sprintf("%s/data/projects/%s/subjects/%s/experiments/%s/scans/%s",
		c.baseURL, url.PathEscape(ref.Project), url.PathEscape(ref.Subject),
		url.PathEscape(ref.Experiment), url.PathEscape(ref.Scan))
	params := url.Values{}
	params.Set("xnat:imageScanData/"+field, value)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Wrap(ErrRemote, operation, "build request", err)
	}
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return Wrap(ErrRemote, operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError(operation, resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) getJSON(ctx context.Context, operation, endpoint string, params url.Values, out any) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return Wrap(ErrRemote, operation, "parse url", err)
	}
	parsed.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return Wrap(ErrRemote, operation, "build request", err)
	}
	c.authorize(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return Wrap(ErrRemote, operation, fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(operation, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return Wrap(ErrRemote, operation, "decode response", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		return
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (r ScanRef) validate(operation string) error {
	fields := map[string]string{
		"project":    r.Project,
		"subject":    r.Subject,
		"experiment": r.Experiment,
		"scan":       r.Scan,
	}
	return requireFields(operation, fields)
}

func requireFields(operation string, fields map[string]string) error {
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return Wrap(ErrRemote, operation, name+" required", nil)
		}
	}
	return nil
}
