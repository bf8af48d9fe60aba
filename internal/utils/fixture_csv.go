package utils

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/timaocord/wallet-backend/internal/models"
)

// ParseFixturesCSV reads fixtures from a CSV file with the columns
// id,homeTeam,awayTeam,league,timestamp,status. Invalid rows are skipped with
// a warning so one bad line doesn't abort an import.
func ParseFixturesCSV(path string) ([]*models.Match, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file is empty or has only a header")
	}

	matches := make([]*models.Match, 0, len(records)-1)
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 6 {
			log.Printf("Warning: record %d has less than 6 fields, skipping", i)
			continue
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			log.Printf("Warning: record %d has invalid fixture ID, skipping", i)
			continue
		}
		timestamp, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		if err != nil {
			log.Printf("Warning: record %d has invalid timestamp, skipping", i)
			continue
		}

		status := strings.TrimSpace(record[5])
		matches = append(matches, &models.Match{
			ID:         id,
			HomeTeam:   strings.TrimSpace(record[1]),
			AwayTeam:   strings.TrimSpace(record[2]),
			League:     strings.TrimSpace(record[3]),
			Status:     status,
			Timestamp:  timestamp,
			IsFinished: status == "FT",
		})
	}
	return matches, nil
}
