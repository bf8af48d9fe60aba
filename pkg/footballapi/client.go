package footballapi

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/timaocord/wallet-backend/internal/models"
)

// Client fetches fixtures from the football data provider. Mock mode
// generates plausible fixtures so the betting flow works without an API key.
type Client struct {
	BaseURL string
	APIKey  string
	MockAPI bool
	client  *http.Client
}

// NewClient creates a new football API client
func NewClient(baseURL, apiKey string, mockAPI bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// fixtureResponse mirrors the provider's fixture envelope
type fixtureResponse struct {
	Response []struct {
		Fixture struct {
			ID        int   `json:"id"`
			Timestamp int64 `json:"timestamp"`
			Status    struct {
				Short string `json:"short"`
			} `json:"status"`
		} `json:"fixture"`
		League struct {
			Name string `json:"name"`
		} `json:"league"`
		Teams struct {
			Home struct {
				Name string `json:"name"`
			} `json:"home"`
			Away struct {
				Name string `json:"name"`
			} `json:"away"`
		} `json:"teams"`
	} `json:"response"`
}

// GetFixtures retrieves the fixtures scheduled for a given day
func (c *Client) GetFixtures(ctx context.Context, date time.Time) ([]*models.Match, error) {
	if c.MockAPI {
		return c.mockGetFixtures(date)
	}

	url := fmt.Sprintf("%s/fixtures?date=%s", c.BaseURL, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-apisports-key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixtures request failed with status %d", resp.StatusCode)
	}

	var payload fixtureResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures response: %w", err)
	}

	matches := make([]*models.Match, 0, len(payload.Response))
	for _, entry := range payload.Response {
		matches = append(matches, &models.Match{
			ID:         entry.Fixture.ID,
			HomeTeam:   entry.Teams.Home.Name,
			AwayTeam:   entry.Teams.Away.Name,
			League:     entry.League.Name,
			Status:     entry.Fixture.Status.Short,
			Timestamp:  entry.Fixture.Timestamp,
			IsFinished: entry.Fixture.Status.Short == "FT",
		})
	}
	return matches, nil
}

// mockGetFixtures generates random upcoming fixtures for testing
func (c *Client) mockGetFixtures(date time.Time) ([]*models.Match, error) {
	teams := []string{
		"Corinthians", "Palmeiras", "Flamengo", "São Paulo", "Santos",
		"Grêmio", "Internacional", "Fluminense", "Botafogo", "Cruzeiro",
	}

	rng := rand.New(rand.NewSource(date.UnixNano()))
	numFixtures := rng.Intn(4) + 3

	matches := make([]*models.Match, 0, numFixtures)
	for i := 0; i < numFixtures; i++ {
		home := teams[rng.Intn(len(teams))]
		away := teams[rng.Intn(len(teams))]
		for away == home {
			away = teams[rng.Intn(len(teams))]
		}
		kickoff := time.Date(date.Year(), date.Month(), date.Day(), 16+rng.Intn(6), 0, 0, 0, time.UTC)
		matches = append(matches, &models.Match{
			ID:        int(date.Unix()/86400)*100 + i,
			HomeTeam:  home,
			AwayTeam:  away,
			League:    "Brasileirão Série A",
			Status:    models.MatchStatusNotStarted,
			Timestamp: kickoff.Unix(),
		})
	}
	return matches, nil
}
