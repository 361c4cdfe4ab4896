// Package stackexchange implements soask.QuestionSearcher and
// soask.AnswerFetcher on top of the Stack Exchange API.
package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/soask"
)

// DefaultBaseURL is the Stack Exchange API root.
const DefaultBaseURL = "https://api.stackexchange.com/2.3"

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 10 * time.Second

// Ensure Client implements the search and fetch interfaces at compile time.
var (
	_ soask.QuestionSearcher = (*Client)(nil)
	_ soask.AnswerFetcher    = (*Client)(nil)
)

// Client queries the Stack Exchange API.
//
// Failed requests never surface as errors: a non-2xx status, a transport
// failure or an unreadable payload is logged as a warning and treated as an
// empty result. Only context cancellation is returned to the caller.
type Client struct {
	client  *http.Client
	baseURL string
	site    string
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the timeout for API requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseURL overrides the API root, e.g. for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithSite sets the Stack Exchange site to query.
// Defaults to soask.DefaultSite.
func WithSite(site string) Option {
	return func(c *Client) {
		c.site = site
	}
}

// WithLogger sets the logger used to report degraded requests.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// Sites whose web address is not <site>.stackexchange.com.
var siteHosts = map[string]string{
	"stackoverflow": "stackoverflow.com",
	"superuser":     "superuser.com",
	"serverfault":   "serverfault.com",
	"askubuntu":     "askubuntu.com",
	"stackapps":     "stackapps.com",
	"mathoverflow":  "mathoverflow.net",
}

// SiteURL returns the web address of a site given its API name, e.g.
// "https://stackoverflow.com" for "stackoverflow". A name that already
// contains a dot is taken as a host.
func SiteURL(site string) string {
	if site == "" {
		site = soask.DefaultSite
	}
	if strings.Contains(site, ".") {
		return "https://" + site
	}
	if host, ok := siteHosts[site]; ok {
		return "https://" + host
	}
	return "https://" + site + ".stackexchange.com"
}

// NewClient creates a new Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		site:    soask.DefaultSite,
		timeout: DefaultTimeout,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// SearchQuestions runs a relevance-sorted advanced search and returns up to
// opts.Limit candidates ranked from 1.
func (c *Client) SearchQuestions(ctx context.Context, query string, opts soask.SearchOptions) ([]soask.QuestionCandidate, error) {
	if query == "" {
		return nil, soask.Errorf(soask.EINVALID, "query required")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "relevance")
	params.Set("q", query)
	params.Set("site", c.site)
	params.Set("pagesize", strconv.Itoa(opts.Limit))
	if opts.AcceptedOnly {
		params.Set("accepted", "true")
	}
	if opts.WithBody {
		params.Set("filter", "withbody")
	}

	var resp wrapper[question]
	if err := c.get(ctx, "/search/advanced", params, &resp); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("question search failed", "query", query, "err", err)
		return []soask.QuestionCandidate{}, nil
	}

	candidates := make([]soask.QuestionCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.QuestionID == 0 {
			continue
		}
		candidates = append(candidates, soask.QuestionCandidate{
			ID:         item.QuestionID,
			Rank:       len(candidates) + 1,
			Title:      html.UnescapeString(item.Title),
			Link:       item.Link,
			Score:      item.Score,
			IsAnswered: item.IsAnswered,
		})
		if len(candidates) == opts.Limit {
			break
		}
	}

	return candidates, nil
}

// FetchAnswers returns the question's answers with bodies, highest score
// first, truncated to limit. A limit below 1 keeps every answer returned.
func (c *Client) FetchAnswers(ctx context.Context, questionID int64, limit int) ([]*soask.Answer, error) {
	if questionID <= 0 {
		return nil, soask.Errorf(soask.EINVALID, "question ID required")
	}

	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "votes")
	params.Set("site", c.site)
	params.Set("filter", "withbody")

	var resp wrapper[answer]
	path := "/questions/" + strconv.FormatInt(questionID, 10) + "/answers"
	if err := c.get(ctx, path, params, &resp); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("answer fetch failed", "question_id", questionID, "err", err)
		return []*soask.Answer{}, nil
	}

	answers := make([]*soask.Answer, 0, len(resp.Items))
	for _, item := range resp.Items {
		qid := item.QuestionID
		if qid == 0 {
			qid = questionID
		}
		answers = append(answers, &soask.Answer{
			ID:         item.AnswerID,
			QuestionID: qid,
			Score:      item.Score,
			IsAccepted: item.IsAccepted,
			RawBody:    item.Body,
		})
	}

	// The API sorts by votes already; re-sort so arrival order never leaks.
	return soask.NewAnswerSet(answers, limit), nil
}

// get performs a GET request against the API and decodes the JSON wrapper.
func (c *Client) get(ctx context.Context, path string, params url.Values, v apiError) error {
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error payloads carry the same wrapper; prefer its message.
		if json.Unmarshal(body, v) == nil && v.apiError() != "" {
			return soask.Errorf(soask.EUPSTREAM, "HTTP %d: %s", resp.StatusCode, v.apiError())
		}
		return soask.Errorf(soask.EUPSTREAM, "HTTP %d for %s", resp.StatusCode, path)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return soask.Errorf(soask.EMALFORMED, "invalid response payload: %v", err)
	}
	if msg := v.apiError(); msg != "" {
		return soask.Errorf(soask.EUPSTREAM, "%s", msg)
	}

	return nil
}

// apiError is implemented by response wrappers that can carry an API error.
type apiError interface {
	apiError() string
}

// wrapper is the common envelope of every Stack Exchange API response.
type wrapper[T any] struct {
	Items          []T    `json:"items"`
	HasMore        bool   `json:"has_more"`
	QuotaMax       int    `json:"quota_max"`
	QuotaRemaining int    `json:"quota_remaining"`
	Backoff        int    `json:"backoff,omitempty"`
	ErrorID        int    `json:"error_id,omitempty"`
	ErrorName      string `json:"error_name,omitempty"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

func (w *wrapper[T]) apiError() string {
	if w.ErrorID == 0 {
		return ""
	}
	return fmt.Sprintf("%s (%d): %s", w.ErrorName, w.ErrorID, w.ErrorMessage)
}

type question struct {
	QuestionID int64  `json:"question_id"`
	Title      string `json:"title"`
	Link       string `json:"link"`
	Score      int    `json:"score"`
	IsAnswered bool   `json:"is_answered"`
}

type answer struct {
	AnswerID   int64  `json:"answer_id"`
	QuestionID int64  `json:"question_id"`
	Score      int    `json:"score"`
	IsAccepted bool   `json:"is_accepted"`
	Body       string `json:"body"`
}
