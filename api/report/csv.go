/* csv.go
 * Contains the delimited-file writer for the report. Every field is quoted (excel QUOTE_ALL
 * style) and the column titles are written as an ordinary first row, so the writer here quotes
 * by hand instead of using encoding/csv, which only quotes when it has to
 */

package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// reportHeader holds the column titles, in output order
var reportHeader = []string{
	"Team ID",
	"Team Name",
	"Organisation",
	"Wins",
	"Losses",
	"Ties",
	"Driver Skills",
	"Auton Skills",
	"Skills Total",
	"Team Awards",
}

// OutputFilename returns the deterministic report filename for an event SKU
func OutputFilename(sku string) string {
	return fmt.Sprintf("teams-%s-data.csv", sku)
}

// Function to serialize report rows to a writer
// Preconditions: Receives an io.Writer and the report rows
// Postconditions: Writes the header as the first row followed by one row per team, every
// field double-quoted with embedded quotes doubled, lines terminated with CRLF
func WriteReport(w io.Writer, rows []Row) error {
	buffered := bufio.NewWriter(w)

	records := make([][]string, 0, len(rows)+1)
	records = append(records, reportHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.ID,
			row.Name,
			row.Organization,
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.Ties),
			strconv.Itoa(row.DriverSkills),
			strconv.Itoa(row.AutonSkills),
			strconv.Itoa(row.TotalSkills),
			row.Awards,
		})
	}

	for _, record := range records {
		for i, field := range record {
			if i > 0 {
				if err := buffered.WriteByte(','); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			}
			quoted := "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
			if _, err := buffered.WriteString(quoted); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
		if _, err := buffered.WriteString("\r\n"); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return buffered.Flush()
}

// Function to write the report to a file on disk
// Preconditions: Receives string containing the output path and the report rows
// Postconditions: Creates or truncates the file and writes the full report, or returns an error
func WriteReportFile(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := WriteReport(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
