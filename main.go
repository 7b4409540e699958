/* main.go
 * Entry point for the event report exporter. Resolves an event by SKU, aggregates per-team
 * season statistics from the RobotEvents API, and writes them to a CSV file.
 * Usage: go run main.go -sku="<event sku>"
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"vex-report/api/report"
	"vex-report/api/robotevents"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, the token can come straight from the environment
	_ = godotenv.Load()

	// Flags
	skuPtr := flag.String("sku", "RE-V5RC-24-7329", "Event SKU to export, e.g. RE-V5RC-24-7329")
	flag.Parse()

	token := os.Getenv("ROBOTEVENTS_TOKEN")
	if token == "" {
		log.Fatal("ROBOTEVENTS_TOKEN is not set")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client := robotevents.NewClient(robotevents.DefaultBaseURL, token, logger)
	reporter, err := report.NewReporter(client, logger)
	if err != nil {
		log.Fatalf("failed to initialize reporter: %v", err)
	}

	rows, err := reporter.BuildReport(*skuPtr)
	if err != nil {
		// Without the event there is no season or team list to report on.
		// Exit 2 so callers can tell a bad SKU from a bad environment
		logger.Error("event lookup failed", zap.String("sku", *skuPtr), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Event not found: %s\n", *skuPtr)
		os.Exit(2)
	}

	path := report.OutputFilename(*skuPtr)
	if err := report.WriteReportFile(path, rows); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	logger.Info("report written", zap.String("file", path), zap.Int("teams", len(rows)))
}
