package services

import (
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/pkg/database"
)

// SetupService derives the event readiness flag from live entity counts and
// keeps the singleton status record in sync.
type SetupService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewSetupService(db *database.DB, logger *logrus.Logger) *SetupService {
	return &SetupService{
		db:     db,
		logger: logger,
	}
}

// Status recomputes the readiness flag from the tournament, team and player
// counts and persists it back to the singleton record. The three counts hit
// disjoint tables, so they run concurrently.
func (s *SetupService) Status() (bool, error) {
	var (
		wg                                      sync.WaitGroup
		tournamentCount, teamCount, playerCount int64
		tournamentErr, teamErr, playerErr       error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		tournamentCount, tournamentErr = models.CountTournaments(s.db)
	}()
	go func() {
		defer wg.Done()
		teamCount, teamErr = models.CountTeams(s.db)
	}()
	go func() {
		defer wg.Done()
		playerCount, playerErr = models.CountPlayers(s.db)
	}()
	wg.Wait()

	for _, err := range []error{tournamentErr, teamErr, playerErr} {
		if err != nil {
			return false, err
		}
	}

	complete := tournamentCount > 0 && teamCount > 0 && playerCount > 0

	status, err := models.GetOrCreateSetupStatus(s.db)
	if err != nil {
		return false, err
	}

	if status.IsSetupComplete != complete {
		s.logger.WithFields(logrus.Fields{
			"tournaments": tournamentCount,
			"teams":       teamCount,
			"players":     playerCount,
			"complete":    complete,
		}).Info("Setup status changed")
	}

	status.IsSetupComplete = complete
	if err := s.db.Save(status).Error; err != nil {
		return false, err
	}

	return complete, nil
}
