package models

import (
	"time"

	"github.com/vineetk-singh/auctionapi/pkg/database"
)

// Tournament uses its name as the primary key, so tournament names are
// globally unique at the storage boundary.
type Tournament struct {
	Name            string    `gorm:"primaryKey" json:"name"`
	NumberOfTeams   int       `gorm:"not null" json:"numberOfTeams"`
	PlayersEachTeam int       `gorm:"not null" json:"playersEachTeam"`
	AmountPerTeam   float64   `gorm:"not null" json:"amountPerTeam"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Tournament) TableName() string {
	return "tournaments"
}

// GetTournamentByName fetches a tournament by its name key
func GetTournamentByName(db *database.DB, name string) (*Tournament, error) {
	var tournament Tournament
	err := db.Where("name = ?", name).First(&tournament).Error
	return &tournament, err
}

// GetActiveTournament returns the tournament whose budget figure drives the
// team bulk import. Ordered by name so the choice is deterministic across
// storage backends.
func GetActiveTournament(db *database.DB) (*Tournament, error) {
	var tournament Tournament
	err := db.Order("name ASC").First(&tournament).Error
	return &tournament, err
}

func CountTournaments(db *database.DB) (int64, error) {
	var count int64
	err := db.Model(&Tournament{}).Count(&count).Error
	return count, err
}
