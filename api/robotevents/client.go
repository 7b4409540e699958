/* client.go
 * Contains the RobotEvents API client and the single-shot lookup functions for resolving
 * event SKUs and team numbers to their upstream numeric ids
 */

package robotevents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production RobotEvents v2 API root
const DefaultBaseURL = "https://www.robotevents.com/api/v2"

// Client issues authenticated requests against the RobotEvents API.
// Sleep and Limiter are exposed so tests can simulate time and disable throttling
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Limiter *rate.Limiter
	Logger  *zap.Logger
	Sleep   func(time.Duration)
}

// Function for initialising a Client with sane defaults
// Preconditions: Receives strings containing the API base URL (empty selects DefaultBaseURL),
// the bearer token, and a zap logger (nil selects a no-op logger)
// Postconditions: Returns pointer to a ready-to-use Client
func NewClient(baseURL string, token string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		// RobotEvents enforces a per-minute request quota, stay under it
		Limiter: rate.NewLimiter(rate.Every(600*time.Millisecond), 5),
		Logger:  logger,
		Sleep:   time.Sleep,
	}
}

// Helper function to issue a single GET request against an API path with the auth headers applied
// Preconditions: Receives string containing the path relative to BaseURL (e.g. "/events") and URL parameters
// Postconditions: Returns the HTTP response, or an error if the request could not be built or sent
func (c *Client) get(path string, params url.Values) (*http.Response, error) {
	parsedUrl, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	parsedUrl.RawQuery = params.Encode()

	request, err := http.NewRequest("GET", parsedUrl.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers required by the API
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Token))
	request.Header.Set("Accept", "application/json")

	if err := c.Limiter.Wait(context.Background()); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	return c.HTTP.Do(request)
}

// Function to look up an event by its SKU (e.g. "RE-V5RC-24-7329")
// Preconditions: Receives string containing the event SKU
// Postconditions: Returns the first matching event, or an error if the request fails
// or no event matches the SKU
func (c *Client) GetEventBySKU(sku string) (*Event, error) {
	params := url.Values{}
	params.Set("sku", sku)

	response, err := c.get("/events", params)
	if err != nil {
		return nil, fmt.Errorf("error fetching event %s: %w", sku, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch event %s: status code %d", sku, response.StatusCode)
	}

	var events eventList
	if err := json.NewDecoder(response.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("error decoding event response: %w", err)
	}
	if len(events.Data) == 0 {
		return nil, fmt.Errorf("no event found for sku %s", sku)
	}
	return &events.Data[0], nil
}

// Function to look up a team by its number (e.g. "393V")
// Preconditions: Receives string containing the team number; an empty number is a usage
// error and is rejected before any request is made
// Postconditions: Returns the first matching team, or an error if the request fails
// or no team matches the number
func (c *Client) GetTeamByNumber(number string) (*Team, error) {
	if number == "" {
		return nil, fmt.Errorf("please provide a team number")
	}
	params := url.Values{}
	params.Set("number", number)

	response, err := c.get("/teams", params)
	if err != nil {
		return nil, fmt.Errorf("error fetching team %s: %w", number, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch team %s: status code %d", number, response.StatusCode)
	}

	var teams teamList
	if err := json.NewDecoder(response.Body).Decode(&teams); err != nil {
		return nil, fmt.Errorf("error decoding team response: %w", err)
	}
	if len(teams.Data) == 0 {
		return nil, fmt.Errorf("no team found for number %s", number)
	}
	return &teams.Data[0], nil
}

// Function to resolve a team number to its upstream numeric id
// Preconditions: Receives string containing the team number
// Postconditions: Returns the team id, or an error if the lookup fails
func (c *Client) GetTeamID(number string) (int, error) {
	team, err := c.GetTeamByNumber(number)
	if err != nil {
		return 0, err
	}
	return team.ID, nil
}
