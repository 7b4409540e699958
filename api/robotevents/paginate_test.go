/* paginate_test.go
 * Contains unit tests for the paginated fetch loop: page concatenation, retry/backoff
 * behaviour, and the partial-result contract on hard failures
 */

package robotevents

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordNames unmarshals raw records of the form {"name":"..."} into a string slice
func recordNames(t *testing.T, records []json.RawMessage) []string {
	var names []string
	for _, raw := range records {
		var record struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(raw, &record))
		names = append(names, record.Name)
	}
	return names
}

// TestFetchAllPages_ConcatenatesPages tests that records come back in page order
func TestFetchAllPages_ConcatenatesPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			w.Write([]byte(`{"data":[{"name":"a"},{"name":"b"}],"meta":{"next_page_url":"?page=2"}}`))
		case "2":
			w.Write([]byte(`{"data":[{"name":"c"},{"name":"d"}],"meta":{"next_page_url":null}}`))
		default:
			t.Errorf("unexpected page request: %s", r.URL.RawQuery)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	records := client.FetchAllPages("/events/42/teams", url.Values{})

	assert.Equal(t, []string{"a", "b", "c", "d"}, recordNames(t, records))
}

// TestFetchAllPages_OwnsPageParam tests that a caller-supplied page parameter is overwritten
func TestFetchAllPages_OwnsPageParam(t *testing.T) {
	var pagesSeen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pagesSeen = append(pagesSeen, r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":[],"meta":{"next_page_url":null}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	params := url.Values{}
	params.Set("page", "99")
	params.Set("season", "190")
	client.FetchAllPages("/teams/1/rankings", params)

	assert.Equal(t, []string{"1"}, pagesSeen)
}

// TestFetchAllPages_RetriesOn429 tests that a rate-limited page is retried after the hinted delay
func TestFetchAllPages_RetriesOn429(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data":[{"name":"a"}],"meta":{"next_page_url":null}}`))
	}))
	defer server.Close()

	var sleeps []float64
	client := newTestClient(server.URL, &sleeps)
	records := client.FetchAllPages("/teams/1/awards", url.Values{})

	assert.Equal(t, []string{"a"}, recordNames(t, records))
	assert.Equal(t, []float64{2}, sleeps)
	assert.Equal(t, 2, calls)
}

// TestFetchAllPages_BackoffGrows tests the exponential schedule when the hint is absent
func TestFetchAllPages_BackoffGrows(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":[{"name":"a"}],"meta":{"next_page_url":null}}`))
	}))
	defer server.Close()

	var sleeps []float64
	client := newTestClient(server.URL, &sleeps)
	records := client.FetchAllPages("/teams/1/skills", url.Values{})

	assert.Equal(t, []string{"a"}, recordNames(t, records))
	// Retry-After defaults to 1 second, multiplied by 3^attempt
	assert.Equal(t, []float64{1, 3, 9}, sleeps)
}

// TestFetchAllPages_MaxRetriesReturnsPartial tests that retry exhaustion on a later page
// returns the records accumulated from earlier pages
func TestFetchAllPages_MaxRetriesReturnsPartial(t *testing.T) {
	pageTwoCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.Write([]byte(`{"data":[{"name":"a"},{"name":"b"}],"meta":{"next_page_url":"?page=2"}}`))
			return
		}
		pageTwoCalls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var sleeps []float64
	client := newTestClient(server.URL, &sleeps)
	records := client.FetchAllPages("/teams/1/rankings", url.Values{})

	assert.Equal(t, []string{"a", "b"}, recordNames(t, records))
	assert.Len(t, sleeps, maxRetries)
	// Initial attempt plus seven retries, then the page is abandoned
	assert.Equal(t, maxRetries+1, pageTwoCalls)
}

// TestFetchAllPages_RetryCountResetsPerPage tests that advancing to a new page restarts the schedule
func TestFetchAllPages_RetryCountResetsPerPage(t *testing.T) {
	failed := make(map[string]bool)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if !failed[page] {
			failed[page] = true
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if page == "3" {
			w.Write([]byte(`{"data":[{"name":"last"}],"meta":{"next_page_url":null}}`))
			return
		}
		w.Write([]byte(fmt.Sprintf(`{"data":[{"name":"p%s"}],"meta":{"next_page_url":"more"}}`, page)))
	}))
	defer server.Close()

	var sleeps []float64
	client := newTestClient(server.URL, &sleeps)
	records := client.FetchAllPages("/teams/1/rankings", url.Values{})

	assert.Equal(t, []string{"p1", "p2", "last"}, recordNames(t, records))
	// Each page fails once; a per-run counter would have produced 1, 3, 9
	assert.Equal(t, []float64{1, 1, 1}, sleeps)
}

// TestFetchAllPages_NonRetryableStatusReturnsPartial tests that e.g. a 404 is not retried
func TestFetchAllPages_NonRetryableStatusReturnsPartial(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var sleeps []float64
	client := newTestClient(server.URL, &sleeps)
	records := client.FetchAllPages("/teams/1/rankings", url.Values{})

	assert.Empty(t, records)
	assert.Empty(t, sleeps)
	assert.Equal(t, 1, calls)
}

// TestFetchAllPages_MalformedBodyReturnsPartial tests that a decode failure degrades, not panics
func TestFetchAllPages_MalformedBodyReturnsPartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	records := client.FetchAllPages("/teams/1/rankings", url.Values{})

	assert.Empty(t, records)
}

// TestFetchAllPages_NetworkErrorReturnsPartial tests that an unreachable server yields an empty result
func TestFetchAllPages_NetworkErrorReturnsPartial(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed immediately so every request fails

	client := newTestClient(server.URL, nil)
	records := client.FetchAllPages("/teams/1/rankings", url.Values{})

	assert.Empty(t, records)
}

// TestRetryAfterSeconds tests parsing of the Retry-After hint
func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid", "5", 5},
		{"absent", "", 1},
		{"not a number", "soon", 1},
		{"zero", "0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.value != "" {
				header.Set("Retry-After", tt.value)
			}
			assert.Equal(t, tt.expected, retryAfterSeconds(header))
		})
	}
}

// TestIntPow tests the backoff exponent helper
func TestIntPow(t *testing.T) {
	assert.Equal(t, 1, intPow(3, 0))
	assert.Equal(t, 3, intPow(3, 1))
	assert.Equal(t, 729, intPow(3, 6))
}
