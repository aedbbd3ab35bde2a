package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/pkg/database"
	"gorm.io/gorm"
)

var (
	// ErrNoTournament is returned when a team bulk upload runs before any
	// tournament exists; the per-team budget comes from the active tournament.
	ErrNoTournament = errors.New("no tournament exists to derive team budget from")

	// ErrNoValidTeams is returned when every row was filtered out.
	ErrNoValidTeams = errors.New("no valid teams to insert")
)

// teamRow is one cleaned row of a team CSV upload.
type teamRow struct {
	Name  string
	Owner string
	Lock  bool
}

// Validate checks the structural requirements on a cleaned row.
func (r teamRow) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if r.Owner == "" {
		return fmt.Errorf("team owner is required")
	}
	return nil
}

// TeamImportResult reports the outcome of a team bulk upload, including the
// per-owner user provisioning outcomes.
type TeamImportResult struct {
	Inserted         []models.Team      `json:"inserted"`
	SkippedMissing   int                `json:"skipped_missing"`
	SkippedInvalid   int                `json:"skipped_invalid"`
	SkippedDuplicate int                `json:"skipped_duplicate"`
	Failed           []RowError         `json:"failed,omitempty"`
	Provisioning     []ProvisionOutcome `json:"provisioning,omitempty"`
}

// TeamImporter turns uploaded team CSV files into team inserts plus owner
// account provisioning.
type TeamImporter struct {
	db          *database.DB
	logger      *logrus.Logger
	provisioner *UserProvisioner
}

func NewTeamImporter(db *database.DB, logger *logrus.Logger) *TeamImporter {
	return &TeamImporter{
		db:          db,
		logger:      logger,
		provisioner: NewUserProvisioner(db, logger),
	}
}

// ImportFile reads the uploaded CSV at path and inserts one team per accepted
// row. Unlike the player pipeline, the team import is additive-only: a row
// whose team name is already stored is skipped, never overwritten. Every
// accepted team starts with the active tournament's per-team budget. After
// the inserts, one Owner user is provisioned per owner named in the raw file
// and the outcomes are reported alongside the insert results. The file is
// removed when done on both success and failure paths.
func (s *TeamImporter) ImportFile(path string) (*TeamImportResult, error) {
	defer func() {
		if err := os.Remove(path); err != nil {
			s.logger.WithField("path", path).Warnf("Failed to remove uploaded file: %v", err)
		}
	}()

	tournament, err := models.GetActiveTournament(s.db)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoTournament
		}
		return nil, fmt.Errorf("failed to load active tournament: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	rows, err := readCSVRows(f)
	if err != nil {
		return nil, err
	}

	result := &TeamImportResult{}
	var accepted []teamRow
	var rawOwners []string

	for i, row := range rows {
		if owner := row["owner"]; owner != "" {
			rawOwners = append(rawOwners, owner)
		}

		cleaned := teamRow{
			Name:  row["_id"],
			Owner: row["owner"],
			Lock:  strings.EqualFold(row["lock"], "true"),
		}

		if cleaned.Name == "" || cleaned.Owner == "" {
			result.SkippedMissing++
			continue
		}

		if err := cleaned.Validate(); err != nil {
			s.logger.WithField("row", i+2).Warnf("Skipping invalid team row: %v", err)
			result.SkippedInvalid++
			continue
		}

		exists, err := models.TeamExists(s.db, cleaned.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing team: %w", err)
		}
		if exists {
			s.logger.WithField("team", cleaned.Name).Info("Skipping duplicate team")
			result.SkippedDuplicate++
			continue
		}

		accepted = append(accepted, cleaned)
	}

	if len(accepted) == 0 {
		return nil, ErrNoValidTeams
	}

	// Unordered batch: a failed insert does not block its siblings.
	for _, row := range accepted {
		team := models.Team{
			Name:       row.Name,
			Owner:      row.Owner,
			Lock:       row.Lock,
			BudgetLeft: tournament.AmountPerTeam,
		}
		if err := s.db.Create(&team).Error; err != nil {
			s.logger.WithField("team", team.Name).Warnf("Failed to insert team: %v", err)
			result.Failed = append(result.Failed, RowError{
				Name:  team.Name,
				Error: err.Error(),
			})
			continue
		}
		result.Inserted = append(result.Inserted, team)
	}

	// Owner accounts are derived from the raw upload list, so an owner whose
	// team row was rejected still gets a provisioning attempt. Teams and
	// users live in independent collections; provisioning failures are
	// reported but never roll back the team inserts.
	result.Provisioning = s.provisioner.ProvisionOwners(rawOwners)

	s.logger.WithFields(logrus.Fields{
		"inserted":          len(result.Inserted),
		"skipped_missing":   result.SkippedMissing,
		"skipped_invalid":   result.SkippedInvalid,
		"skipped_duplicate": result.SkippedDuplicate,
	}).Info("Team bulk upload complete")

	return result, nil
}
