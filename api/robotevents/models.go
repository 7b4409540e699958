/* models.go
 * Contains the models used by the robotevents package when fetching data from the RobotEvents v2 API
 */

package robotevents

import "encoding/json"

// Event represents a single competition event as returned by the /events endpoint
type Event struct {
	ID     int    `json:"id"`
	SKU    string `json:"sku"`
	Name   string `json:"name"`
	Season Season `json:"season"`
}

// Season represents the competition season an event belongs to
type Season struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Team represents a registered team as returned by the /teams endpoints
type Team struct {
	ID           int      `json:"id"`
	Number       string   `json:"number"`
	TeamName     string   `json:"team_name"`
	Organization string   `json:"organization"`
	Location     Location `json:"location"`
}

// Location holds the subset of team location data used by the report
type Location struct {
	City string `json:"city"`
}

// Ranking is one tournament ranking row for a team, summed into a season record
type Ranking struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

// Skill is a single scored skills run. Type is "driver" or "programming"
type Skill struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

// Award is a single award won by a team
type Award struct {
	Title string `json:"title"`
}

// pagedResponse is the envelope every RobotEvents list endpoint returns.
// Data is kept raw so the caller decides the record type per endpoint
type pagedResponse struct {
	Data []json.RawMessage `json:"data"`
	Meta pageMeta          `json:"meta"`
}

type pageMeta struct {
	NextPageURL string `json:"next_page_url"`
}

// eventList and teamList are typed envelopes for the single-shot lookups
type eventList struct {
	Data []Event `json:"data"`
}

type teamList struct {
	Data []Team `json:"data"`
}
