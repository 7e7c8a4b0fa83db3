package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL    = "https://api.track.toggl.com"
	defaultReportsURL = "https://track.toggl.com"

	dayLayout     = "2006-01-02"
	nextRowHeader = "X-Next-Row-Number"

	// maxReportCalls bounds the follow-up page requests of one report search
	// so a server that keeps answering with a cursor cannot loop us forever.
	// The initial request is not counted.
	maxReportCalls = 20
)

// Client defines the Toggl Track operations used by the reporting pipeline.
type Client interface {
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
	SearchReport(ctx context.Context, query ReportQuery) ([]ReportRow, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	ReportsURL string
	APIToken   string
	HTTPClient httpDoer
	Logger     *slog.Logger
}

type HTTPClient struct {
	baseURL    string
	reportsURL string
	apiToken   string
	httpClient httpDoer
	log        *slog.Logger
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	apiToken := strings.TrimSpace(cfg.APIToken)
	if apiToken == "" {
		return nil, errors.New("API token is required")
	}

	baseURL, err := resolveURL(cfg.BaseURL, defaultBaseURL)
	if err != nil {
		return nil, err
	}
	reportsURL, err := resolveURL(cfg.ReportsURL, defaultReportsURL)
	if err != nil {
		return nil, err
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	return &HTTPClient{
		baseURL:    baseURL,
		reportsURL: reportsURL,
		apiToken:   apiToken,
		httpClient: doer,
		log:        log,
	}, nil
}

func resolveURL(value, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	value = strings.TrimRight(value, "/")

	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q", value)
	}
	return value, nil
}

// TimeEntry is one row of the flat v9 listing. Duration is in seconds and
// negative while the entry is still running; Stop is nil in that case.
type TimeEntry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	WorkspaceID *int64     `json:"workspace_id"`
	TaskID      *int64     `json:"task_id"`
	Billable    bool       `json:"billable"`
	Tags        []string   `json:"tags"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
}

// ReportRow is one row of the v3 report search. Completed entries carry at
// least one span; the first span holds the authoritative seconds value.
type ReportRow struct {
	UserID      int64        `json:"user_id"`
	Username    string       `json:"username"`
	ProjectID   *int64       `json:"project_id"`
	TaskID      *int64       `json:"task_id"`
	Billable    bool         `json:"billable"`
	Description string       `json:"description"`
	TagIDs      []int64      `json:"tag_ids"`
	Currency    string       `json:"currency"`
	TimeEntries []ReportSpan `json:"time_entries"`
	RowNumber   int          `json:"row_number"`
}

type ReportSpan struct {
	ID      int64     `json:"id"`
	Seconds int64     `json:"seconds"`
	Start   time.Time `json:"start"`
	Stop    time.Time `json:"stop"`
	At      time.Time `json:"at"`
}

// ReportQuery selects report rows server-side before pagination starts.
type ReportQuery struct {
	WorkspaceID string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

type reportRequest struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Description    string `json:"description"`
	FirstRowNumber *int   `json:"first_row_number,omitempty"`
	Grouped        bool   `json:"grouped"`
	OrderBy        string `json:"order_by"`
	OrderDir       string `json:"order_dir"`
}

// RequestError is a non-success response from the Toggl API. The command
// layer maps it to its own exit code, so it stays a distinct type.
type RequestError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s %s failed with status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// ListTimeEntries fetches the flat time entries of the authenticated user
// whose start date falls inside [from, to].
func (c *HTTPClient) ListTimeEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	endpoint, err := url.Parse(c.baseURL + "/api/v9/me/time_entries")
	if err != nil {
		return nil, fmt.Errorf("build time entries URL: %w", err)
	}
	query := endpoint.Query()
	query.Set("start_date", from.Format(dayLayout))
	query.Set("end_date", to.Format(dayLayout))
	endpoint.RawQuery = query.Encode()

	resp, err := c.do(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var entries []TimeEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode time entries: %w", err)
	}
	return entries, nil
}

// SearchReport runs the detailed report search and follows the
// X-Next-Row-Number cursor until the server stops returning one. When the
// cursor chain exceeds maxReportCalls follow-ups the rows collected so far
// are returned and a warning is logged; any non-success page aborts the whole
// fetch without returning partial rows.
func (c *HTTPClient) SearchReport(ctx context.Context, query ReportQuery) ([]ReportRow, error) {
	if strings.TrimSpace(query.WorkspaceID) == "" {
		return nil, errors.New("workspace ID is required for report search")
	}

	rows, next, err := c.fetchReportPage(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	calls := 0
	for next != nil {
		if calls >= maxReportCalls {
			c.log.Warn("report pagination ceiling reached, result is incomplete",
				slog.Int("max_calls", maxReportCalls),
				slog.Int("rows", len(rows)))
			break
		}
		page, nextPage, err := c.fetchReportPage(ctx, query, next)
		if err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		next = nextPage
		calls++
	}
	return rows, nil
}

func (c *HTTPClient) fetchReportPage(ctx context.Context, query ReportQuery, firstRow *int) ([]ReportRow, *int, error) {
	endpoint := fmt.Sprintf(
		"%s/reports/api/v3/workspace/%s/search/time_entries",
		c.reportsURL,
		url.PathEscape(strings.TrimSpace(query.WorkspaceID)),
	)
	body := reportRequest{
		StartDate:      query.StartDate.Format(dayLayout),
		EndDate:        query.EndDate.Format(dayLayout),
		Description:    query.Description,
		FirstRowNumber: firstRow,
		Grouped:        false,
		OrderBy:        "date",
		OrderDir:       "asc",
	}

	resp, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, nil, fmt.Errorf("report page (first row %s): %w", cursorLabel(firstRow), err)
	}
	defer resp.Body.Close()

	var rows []ReportRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, nil, fmt.Errorf("decode report page (first row %s): %w", cursorLabel(firstRow), err)
	}

	next, err := parseNextRow(resp.Header.Get(nextRowHeader))
	if err != nil {
		return nil, nil, fmt.Errorf("report page (first row %s): %w", cursorLabel(firstRow), err)
	}

	c.log.Debug("fetched report page",
		slog.String("first_row", cursorLabel(firstRow)),
		slog.Int("rows", len(rows)),
		slog.String("next_row", cursorLabel(next)))
	return rows, next, nil
}

func (c *HTTPClient) do(ctx context.Context, method, rawURL string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request %s %s: %w", method, rawURL, err)
	}

	req.Header.Set("Authorization", "Basic "+basicAuth(c.apiToken))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &RequestError{
			Method: method,
			URL:    rawURL,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(responseBody)),
		}
	}
	return resp, nil
}

// basicAuth encodes the token in Toggl's token-as-username basic auth scheme.
func basicAuth(apiToken string) string {
	return base64.StdEncoding.EncodeToString([]byte(apiToken + ":api_token"))
}

func parseNextRow(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("parse %s header %q: %w", nextRowHeader, value, err)
	}
	if parsed <= 0 {
		return nil, nil
	}
	return &parsed, nil
}

func cursorLabel(firstRow *int) string {
	if firstRow == nil {
		return "none"
	}
	return strconv.Itoa(*firstRow)
}
