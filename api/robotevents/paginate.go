/* paginate.go
 * Contains the paginated fetch loop used by every list endpoint. Transient failures (429 and 5xx)
 * are retried with exponential backoff; anything else degrades to a partial result rather than an
 * error, so callers must treat a short result as possibly incomplete
 */

package robotevents

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// maxRetries is the per-page retry ceiling for rate-limit and server errors
const maxRetries = 7

// Function to fetch every record of a paginated list endpoint
// Preconditions: Receives string containing the path relative to BaseURL and URL parameters.
// The "page" parameter is owned by this function and overwritten if present
// Postconditions: Returns all records concatenated in page order. Never returns an error:
// on retry exhaustion or a hard failure the records accumulated so far are returned as-is
func (c *Client) FetchAllPages(path string, params url.Values) []json.RawMessage {
	var allData []json.RawMessage
	page := 1
	retryAttempts := 0

	for {
		params.Set("page", strconv.Itoa(page))

		response, err := c.get(path, params)
		if err != nil {
			c.Logger.Warn("error fetching data, returning partial result",
				zap.String("path", path), zap.Int("page", page), zap.Error(err))
			return allData
		}

		if response.StatusCode == http.StatusTooManyRequests || response.StatusCode >= 500 {
			retryAfter := retryAfterSeconds(response.Header)
			response.Body.Close()

			if retryAttempts >= maxRetries {
				c.Logger.Warn("max retries exceeded, returning partial result",
					zap.String("path", path), zap.Int("page", page))
				return allData
			}

			backoff := time.Duration(retryAfter*intPow(3, retryAttempts)) * time.Second
			c.Logger.Info("rate limit or server error, retrying",
				zap.String("path", path),
				zap.Int("page", page),
				zap.Int("status", response.StatusCode),
				zap.Int("attempt", retryAttempts),
				zap.Duration("backoff", backoff))
			c.Sleep(backoff)
			retryAttempts++
			continue
		}

		if response.StatusCode != http.StatusOK {
			response.Body.Close()
			c.Logger.Warn("unexpected status code, returning partial result",
				zap.String("path", path), zap.Int("page", page), zap.Int("status", response.StatusCode))
			return allData
		}

		var pageResponse pagedResponse
		err = json.NewDecoder(response.Body).Decode(&pageResponse)
		response.Body.Close()
		if err != nil {
			c.Logger.Warn("error decoding page, returning partial result",
				zap.String("path", path), zap.Int("page", page), zap.Error(err))
			return allData
		}

		allData = append(allData, pageResponse.Data...)

		if pageResponse.Meta.NextPageURL == "" {
			break
		}
		page++
		retryAttempts = 0
	}
	return allData
}

// Helper function to read the Retry-After hint from a response
// Preconditions: Receives the response headers
// Postconditions: Returns the hinted delay in seconds, or 1 if the header is absent or not a number
func retryAfterSeconds(header http.Header) int {
	seconds, err := strconv.Atoi(header.Get("Retry-After"))
	if err != nil || seconds < 1 {
		return 1
	}
	return seconds
}

// Helper function for integer exponentiation, used for the backoff schedule
func intPow(base int, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
