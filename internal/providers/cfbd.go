package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/gridironlabs/field-report/internal/models"
)

// Error kinds for the data-fetch chain. ErrNoData means the request
// succeeded but the team/year combination has no matching rows; ErrUpstream
// means the request itself failed. Callers that don't care collapse both
// into the same user-facing message.
var (
	ErrUpstream = errors.New("upstream request failed")
	ErrNoData   = errors.New("no data returned")
)

const defaultBaseURL = "https://api.collegefootballdata.com"

// CFBDClient wraps outbound HTTP calls to the CollegeFootballData API.
// It performs single synchronous calls with no retry; rate limiting and a
// circuit breaker guard the provider, nothing more.
type CFBDClient struct {
	httpClient *http.Client
	logger     *logrus.Logger
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewCFBDClient creates a new CollegeFootballData API client.
func NewCFBDClient(apiKey string, timeout time.Duration, requestsPerSecond int, logger *logrus.Logger) *CFBDClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "cfbd-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("CFBD circuit breaker state changed")
		},
	})

	return &CFBDClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		breaker: cb,
	}
}

// get performs a single GET against the given endpoint and returns the raw
// response body. Non-2xx responses are logged with status and body and
// surface as ErrUpstream.
func (c *CFBDClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.apiKey == "" {
		c.logger.Error("CFBD API key has not been configured")
		return nil, fmt.Errorf("%w: missing CFBD API key", ErrUpstream)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")
		req.URL.RawQuery = params.Encode()

		c.logger.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"params":   params.Encode(),
		}).Debug("CFBD API request")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			c.logger.WithFields(logrus.Fields{
				"endpoint": endpoint,
				"status":   resp.StatusCode,
				"body":     string(data),
			}).Error("CFBD request failed")
			return nil, fmt.Errorf("status %d", resp.StatusCode)
		}

		return data, nil
	})
	if err != nil {
		if !errors.Is(err, ErrUpstream) {
			err = fmt.Errorf("%w: %s: %v", ErrUpstream, endpoint, err)
		}
		return nil, err
	}

	return body.([]byte), nil
}

// PlayerUsage fetches season-wide usage rates for every player in a year.
func (c *CFBDClient) PlayerUsage(ctx context.Context, year string) ([]models.PlayerRecord, error) {
	body, err := c.get(ctx, "player/usage", url.Values{"year": {year}})
	if err != nil {
		return nil, err
	}

	var usage []models.PlayerRecord
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, fmt.Errorf("%w: decoding player usage: %v", ErrUpstream, err)
	}
	return usage, nil
}

// PlayerSeasonPPA fetches per-season predicted-points-added rows for a
// single player on a team.
func (c *CFBDClient) PlayerSeasonPPA(ctx context.Context, year, team, player string) ([]models.PlayerPPA, error) {
	params := url.Values{"year": {year}, "team": {team}, "player": {player}}
	body, err := c.get(ctx, "ppa/players/season", params)
	if err != nil {
		return nil, err
	}

	var ppa []models.PlayerPPA
	if err := json.Unmarshal(body, &ppa); err != nil {
		return nil, fmt.Errorf("%w: decoding season PPA: %v", ErrUpstream, err)
	}
	return ppa, nil
}

// PlayerSeasonStats fetches per-season category statistics for a team.
func (c *CFBDClient) PlayerSeasonStats(ctx context.Context, year, team, category string) ([]models.PlayerStat, error) {
	params := url.Values{"year": {year}, "team": {team}, "category": {category}}
	body, err := c.get(ctx, "stats/player/season", params)
	if err != nil {
		return nil, err
	}

	var stats []models.PlayerStat
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("%w: decoding season stats: %v", ErrUpstream, err)
	}
	return stats, nil
}

// TeamRecords fetches the season record rows for a team. An empty result
// set surfaces as ErrNoData.
func (c *CFBDClient) TeamRecords(ctx context.Context, year, team string) ([]models.TeamRecord, error) {
	params := url.Values{"year": {year}, "team": {team}}
	body, err := c.get(ctx, "records", params)
	if err != nil {
		return nil, err
	}

	var records []models.TeamRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding team records: %v", ErrUpstream, err)
	}
	if len(records) == 0 {
		c.logger.WithFields(logrus.Fields{
			"team": team,
			"year": year,
		}).Warn("No record rows for team")
		return nil, fmt.Errorf("%w: no record for team %s in %s", ErrNoData, team, year)
	}
	return records, nil
}

// BreakerState reports the circuit breaker state for health checks.
func (c *CFBDClient) BreakerState() gobreaker.State {
	return c.breaker.State()
}
