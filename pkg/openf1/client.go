package openf1

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ohler55/ojg/oj"

	"github.com/openf1db/openf1-ingest-go/log"
)

// Entity paths of the OpenF1 API. Note that positions are served on
// the singular path and pit stops on "pit".
const (
	EntitySessions    = "sessions"
	EntityDrivers     = "drivers"
	EntityLaps        = "laps"
	EntityPosition    = "position"
	EntityIntervals   = "intervals"
	EntityCarData     = "car_data"
	EntityWeather     = "weather"
	EntityRaceControl = "race_control"
	EntityPit         = "pit"
	EntityTeamRadio   = "team_radio"
)

const DefaultBaseURL = "https://api.openf1.org/v1"

type (
	Option func(*Client)

	// Client fetches raw records from the OpenF1 API.
	Client struct {
		baseURL    string
		httpClient *http.Client
		log        *log.Logger
	}

	// StatusError is returned when the API answers with a code other
	// than 200.
	StatusError struct {
		Entity string
		Code   int
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.Entity, e.Code)
}

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(url, "/")
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.log = logger
	}
}

func NewClient(opts ...Option) *Client {
	ret := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		log:        log.Default().Named("openf1"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Fetch requests an entity with the given filter expressions and
// returns the raw records. Filters are passed verbatim since the API
// uses comparison operators in query parameters (for example
// "speed>=150&speed<350"). A single attempt is made, there are no
// retries.
func (c *Client) Fetch(
	ctx context.Context,
	entity string,
	filters ...string,
) ([]map[string]any, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, entity)
	if len(filters) > 0 {
		url = fmt.Sprintf("%s?%s", url, strings.Join(filters, "&"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	reqID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)

	c.log.Debug("fetching",
		log.String("entity", entity),
		log.String("url", url),
		log.String("reqId", reqID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Entity: entity, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	parsed, err := oj.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", entity, err)
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("parsing %s response: expected array, got %T",
			entity, parsed)
	}

	ret := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			ret = append(ret, record)
		}
	}
	return ret, nil
}
