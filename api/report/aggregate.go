/* aggregate.go
 * Contains the per-team reducers that turn raw API records into report statistics:
 * season match record, best skills scores, and the list of award titles
 */

package report

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"vex-report/api/robotevents"

	"go.uber.org/zap"
)

// Function to compute a team's season match record
// Preconditions: Receives ints containing the team id and season id
// Postconditions: Returns total wins, losses and ties summed over every ranking record.
// A team with no ranking records returns (0, 0, 0)
func (r *Reporter) MatchRecord(teamID int, seasonID int) (wins int, losses int, ties int) {
	params := url.Values{}
	params.Set("season", strconv.Itoa(seasonID))

	records := r.Client.FetchAllPages(fmt.Sprintf("/teams/%d/rankings", teamID), params)
	for _, raw := range records {
		var ranking robotevents.Ranking
		if err := json.Unmarshal(raw, &ranking); err != nil {
			r.Logger.Warn("skipping malformed ranking record", zap.Int("team", teamID), zap.Error(err))
			continue
		}
		wins += ranking.Wins
		losses += ranking.Losses
		ties += ranking.Ties
	}
	return wins, losses, ties
}

// Function to compute a team's best skills scores for a season
// Preconditions: Receives ints containing the team id and season id
// Postconditions: Returns the combined score (driver + programming), the best driver score and
// the best programming score. Runs with an unrecognised type are ignored
func (r *Reporter) BestSkills(teamID int, seasonID int) (total int, driver int, programming int) {
	params := url.Values{}
	params.Set("season", strconv.Itoa(seasonID))

	records := r.Client.FetchAllPages(fmt.Sprintf("/teams/%d/skills", teamID), params)
	for _, raw := range records {
		var skill robotevents.Skill
		if err := json.Unmarshal(raw, &skill); err != nil {
			r.Logger.Warn("skipping malformed skills record", zap.Int("team", teamID), zap.Error(err))
			continue
		}
		if skill.Type == "driver" && skill.Score > driver {
			driver = skill.Score
		}
		if skill.Type == "programming" && skill.Score > programming {
			programming = skill.Score
		}
	}
	return driver + programming, driver, programming
}

// Function to collect the titles of every award a team won in a season
// Preconditions: Receives ints containing the team id and season id
// Postconditions: Returns award titles in fetch order. Titles are not deduplicated; a team
// that won the same award at three events lists it three times
func (r *Reporter) AwardTitles(teamID int, seasonID int) []string {
	params := url.Values{}
	params.Set("season", strconv.Itoa(seasonID))

	var titles []string
	records := r.Client.FetchAllPages(fmt.Sprintf("/teams/%d/awards", teamID), params)
	for _, raw := range records {
		var award robotevents.Award
		if err := json.Unmarshal(raw, &award); err != nil {
			r.Logger.Warn("skipping malformed award record", zap.Int("team", teamID), zap.Error(err))
			continue
		}
		titles = append(titles, award.Title)
	}
	return titles
}
