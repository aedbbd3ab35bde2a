package services

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/pkg/database"
	"gorm.io/gorm/clause"
)

// RowError records a single failed row of a bulk import.
type RowError struct {
	Row   int    `json:"row"`
	Name  string `json:"name,omitempty"`
	Error string `json:"error"`
}

// PlayerImportResult reports the outcome of a player bulk upload. Submitted
// counts every row in the file, duplicates included; Failed holds the rows
// whose upsert was rejected by the storage layer.
type PlayerImportResult struct {
	Submitted int        `json:"submitted"`
	Failed    []RowError `json:"failed,omitempty"`
}

// PlayerImporter turns uploaded player CSV files into player upserts.
type PlayerImporter struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewPlayerImporter(db *database.DB, logger *logrus.Logger) *PlayerImporter {
	return &PlayerImporter{
		db:     db,
		logger: logger,
	}
}

// ImportFile reads the uploaded CSV at path and upserts one player per row,
// keyed by name. Re-importing a name overwrites its prior record, and a later
// row in the same file wins over an earlier one. Individual row failures are
// collected without aborting the batch. The file is removed when done,
// whether or not the import succeeded.
func (s *PlayerImporter) ImportFile(path string) (*PlayerImportResult, error) {
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.WithField("path", path).Warnf("Failed to remove uploaded file: %v", err)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	rows, err := readCSVRows(f)
	if err != nil {
		return nil, err
	}

	result := &PlayerImportResult{Submitted: len(rows)}
	for i, row := range rows {
		player := playerFromRow(row)

		err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&player).Error
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"row":    i + 2,
				"player": player.Name,
			}).Warnf("Skipping failed player row: %v", err)
			result.Failed = append(result.Failed, RowError{
				Row:   i + 2,
				Name:  player.Name,
				Error: err.Error(),
			})
		}
	}

	s.logger.WithFields(logrus.Fields{
		"submitted": result.Submitted,
		"failed":    len(result.Failed),
	}).Info("Player bulk upload complete")

	return result, nil
}

// playerFromRow maps the flattened group_fieldName CSV columns onto the
// nested player record. String columns pass through trimmed; numeric columns
// default to 0 when missing or malformed.
func playerFromRow(row map[string]string) models.Player {
	return models.Player{
		Name:      row["_id"],
		Age:       int(numField(row, "age")),
		Country:   row["country"],
		Role:      row["role"],
		BasePrice: numField(row, "basePrice"),
		Records: models.PlayerRecords{
			Batting: models.BattingRecord{
				TotalRuns:      numField(row, "batting_totalRuns"),
				Total4s:        numField(row, "batting_total4s"),
				Total6s:        numField(row, "batting_total6s"),
				TotalCenturies: numField(row, "batting_totalCenturies"),
				Total50s:       numField(row, "batting_total50s"),
				Total20s:       numField(row, "batting_total20s"),
				Total30s:       numField(row, "batting_total30s"),
				Total40s:       numField(row, "batting_total40s"),
				BattingAverage: numField(row, "batting_battingAverage"),
			},
			Bowling: models.BowlingRecord{
				TotalOvers:   numField(row, "bowling_totalOvers"),
				TotalWides:   numField(row, "bowling_totalWides"),
				TotalRuns:    numField(row, "bowling_totalRuns"),
				TotalNoBalls: numField(row, "bowling_totalNoBalls"),
				TotalWickets: numField(row, "bowling_totalWickets"),
			},
			Fielding: models.FieldingRecord{
				TotalCatches: numField(row, "fielding_totalCatches"),
				TotalRunOuts: numField(row, "fielding_totalRunOuts"),
			},
		},
	}
}
