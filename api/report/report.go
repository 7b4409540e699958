/* report.go
 * This file contains the public methods for building an event report. For consistent results,
 * callers should go through BuildReport rather than the individual aggregators
 */

package report

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"vex-report/api/robotevents"

	"go.uber.org/zap"
)

// Reporter provides methods for assembling a per-team report for one event
type Reporter struct {
	Client *robotevents.Client
	Logger *zap.Logger
}

// Row is one report line for a single team, in output column order
type Row struct {
	ID           string
	Name         string
	Organization string
	Wins         int
	Losses       int
	Ties         int
	DriverSkills int
	AutonSkills  int
	TotalSkills  int
	Awards       string
}

// awardSuffixes are the program-qualifier annotations stripped from award titles
var awardSuffixes = []string{
	"(VRC/VEXU/VAIRC)",
	"(VRC/VEXU/VAIC/ADC/VAIRC)",
	"(VRC)",
}

// NewReporter creates a new Reporter instance with the provided client
func NewReporter(client *robotevents.Client, logger *zap.Logger) (*Reporter, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		Client: client,
		Logger: logger,
	}, nil
}

// BuildReport contains the logic to build the full report for an event.
// It resolves the event by SKU, lists every team in the event, and runs the three
// aggregators for each team in turn against the event's season.
// It returns one Row per team, or an error if the event cannot be resolved.
// Aggregator shortfalls are not errors: a team whose data could not be fetched
// reports zeros and an empty award list
func (r *Reporter) BuildReport(sku string) ([]Row, error) {
	event, err := r.Client.GetEventBySKU(sku)
	if err != nil {
		return nil, fmt.Errorf("error resolving event %s: %w", sku, err)
	}
	r.Logger.Info("resolved event",
		zap.String("sku", sku),
		zap.Int("event", event.ID),
		zap.Int("season", event.Season.ID))

	teamRecords := r.Client.FetchAllPages(fmt.Sprintf("/events/%d/teams", event.ID), url.Values{})

	rows := make([]Row, 0, len(teamRecords))
	for _, raw := range teamRecords {
		var team robotevents.Team
		if err := json.Unmarshal(raw, &team); err != nil {
			r.Logger.Warn("skipping malformed team record", zap.Error(err))
			continue
		}

		// One team fully processed before the next begins
		wins, losses, ties := r.MatchRecord(team.ID, event.Season.ID)
		total, driver, auton := r.BestSkills(team.ID, event.Season.ID)
		awards := r.AwardTitles(team.ID, event.Season.ID)

		rows = append(rows, Row{
			ID:           team.Number,
			Name:         team.TeamName,
			Organization: team.Organization,
			Wins:         wins,
			Losses:       losses,
			Ties:         ties,
			DriverSkills: driver,
			AutonSkills:  auton,
			TotalSkills:  total,
			Awards:       normalizeAwards(awards),
		})
		r.Logger.Info("processed team",
			zap.String("number", team.Number),
			zap.String("city", team.Location.City))
	}
	return rows, nil
}

// Helper function to normalize a team's award titles for the report
// Preconditions: Receives slice of raw award titles
// Postconditions: Returns the titles with every program-qualifier suffix removed, each
// followed by a newline. An empty award list returns an empty string
func normalizeAwards(titles []string) string {
	var joined strings.Builder
	for _, title := range titles {
		for _, suffix := range awardSuffixes {
			title = strings.ReplaceAll(title, suffix, "")
		}
		joined.WriteString(title)
		joined.WriteString("\n")
	}
	return joined.String()
}
