package wikidata

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/tennis-players/internal/domain/enrichment"
	"github.com/riskibarqy/tennis-players/internal/platform/logging"
	"github.com/riskibarqy/tennis-players/internal/platform/resilience"
)

const (
	defaultAPIURL    = "https://www.wikidata.org/w/api.php"
	defaultLanguage  = "en"
	defaultUserAgent = "tennis-players-api/1.0"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 2 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	APIURL         string
	Timeout        time.Duration
	Language       string
	UserAgent      string
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads claims from the Wikibase action API. Every call is a single
// attempt; failures come back as enrichment.Failed, never as a bare error.
type Client struct {
	httpClient *http.Client
	apiURL     string
	language   string
	userAgent  string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("wikidata")

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.HTTPClient != nil {
		// copied so the default timeout never leaks into a shared client
		clone := *cfg.HTTPClient
		httpClient = &clone
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = defaultLanguage
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		language:   language,
		userAgent:  userAgent,
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker("wikidata", cfg.CircuitBreaker, isTransient, logger),
	}
}

// FetchProperty returns the claims of entityID for property. An entity
// without the property, or an unknown entity, is Empty.
func (c *Client) FetchProperty(ctx context.Context, entityID, property string) enrichment.Result[[]Claim] {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" || property == "" {
		return enrichment.Empty[[]Claim]()
	}

	params := url.Values{}
	params.Set("action", "wbgetclaims")
	params.Set("entity", entityID)
	params.Set("property", property)

	var resp claimsResponse
	if err := c.doJSON(ctx, params, &resp); err != nil {
		c.logger.WarnContext(ctx, "wikidata claims lookup failed",
			"entity_id", entityID,
			"property", property,
			"error", err,
		)
		return enrichment.Failed[[]Claim](err)
	}
	if resp.Error != nil {
		if isMissingEntity(resp.Error) {
			return enrichment.Empty[[]Claim]()
		}
		err := crerr.Wrapf(ErrAPI, "%s: %s", resp.Error.Code, resp.Error.Info)
		c.logger.WarnContext(ctx, "wikidata claims lookup rejected",
			"entity_id", entityID,
			"property", property,
			"error", err,
		)
		return enrichment.Failed[[]Claim](err)
	}

	claims := resp.Claims[property]
	if len(claims) == 0 {
		return enrichment.Empty[[]Claim]()
	}
	return enrichment.Found(claims)
}

// SearchEntity returns the id of the best matching item for name.
func (c *Client) SearchEntity(ctx context.Context, name string) enrichment.Result[string] {
	name = strings.TrimSpace(name)
	if name == "" {
		return enrichment.Empty[string]()
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", name)
	params.Set("language", c.language)
	params.Set("type", "item")
	params.Set("limit", "1")

	var resp searchResponse
	if err := c.doJSON(ctx, params, &resp); err != nil {
		c.logger.WarnContext(ctx, "wikidata entity search failed", "name", name, "error", err)
		return enrichment.Failed[string](err)
	}
	if resp.Error != nil {
		err := crerr.Wrapf(ErrAPI, "%s: %s", resp.Error.Code, resp.Error.Info)
		c.logger.WarnContext(ctx, "wikidata entity search rejected", "name", name, "error", err)
		return enrichment.Failed[string](err)
	}
	if len(resp.Search) == 0 || strings.TrimSpace(resp.Search[0].ID) == "" {
		return enrichment.Empty[string]()
	}
	return enrichment.Found(resp.Search[0].ID)
}

func (c *Client) doJSON(ctx context.Context, params url.Values, target any) error {
	params.Set("format", "json")
	fullURL := c.apiURL + "?" + params.Encode()

	// A caller that already gave up must not count against the breaker.
	if err := ctx.Err(); err != nil {
		return crerr.Mark(crerr.Wrap(err, "wikidata lookup abandoned"), ErrNetwork)
	}

	// The shared request outlives any single caller: it runs detached from
	// cancellation and is bounded by the http client timeout instead.
	shared := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(fullURL, func() (any, error) {
		return c.breaker.Execute(func() (any, error) {
			return c.executeRequest(shared, fullURL)
		})
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return crerr.Mark(crerr.Wrap(ctx.Err(), "wikidata lookup abandoned"), ErrNetwork)
	case res = <-ch:
	}

	if res.Err != nil {
		if crerr.Is(res.Err, resilience.ErrCircuitOpen) {
			return crerr.Mark(crerr.Wrap(res.Err, "wikidata temporarily unavailable"), ErrNetwork)
		}
		return res.Err
	}

	raw, ok := res.Val.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", res.Val)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "decode body=%s", abbreviateBody(raw)), ErrParse)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		sendErr := crerr.Mark(crerr.Wrap(err, "send request"), ErrNetwork)
		if crerr.Is(err, context.Canceled) {
			return nil, sendErr
		}
		return nil, crerr.Mark(sendErr, errTransient)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, crerr.Mark(crerr.Mark(crerr.Wrap(err, "read response body"), ErrNetwork), errTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Mark(crerr.Newf("status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B)), ErrStatus)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			statusErr = crerr.Mark(statusErr, errTransient)
		}
		return nil, statusErr
	}

	// buf goes back to the pool; callers sharing this flight need their own copy
	return append([]byte(nil), buf.B...), nil
}

func isMissingEntity(e *apiError) bool {
	switch e.Code {
	case "no-such-entity", "invalid-entity-id", "invalid-entityid":
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) <= limit {
		return body
	}
	return body[:limit] + "..."
}
