package models

import (
	"time"

	"github.com/vineetk-singh/auctionapi/pkg/database"
	"gorm.io/datatypes"
)

// Team uses its name as the primary key. Players holds references to player
// names; the roster is resolved to full player records on read. Lock freezes
// roster changes (flag only, enforcement lives with the auction flow).
type Team struct {
	Name       string                      `gorm:"primaryKey" json:"name"`
	Owner      string                      `gorm:"not null" json:"owner"`
	Players    datatypes.JSONSlice[string] `json:"players"`
	Lock       bool                        `gorm:"default:false" json:"lock"`
	BudgetLeft float64                     `json:"budgetLeft"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// GetTeamByName fetches a team by its name key
func GetTeamByName(db *database.DB, name string) (*Team, error) {
	var team Team
	err := db.Where("name = ?", name).First(&team).Error
	return &team, err
}

// TeamExists reports whether a team with the given name is already stored.
func TeamExists(db *database.DB, name string) (bool, error) {
	var count int64
	err := db.Model(&Team{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func CountTeams(db *database.DB) (int64, error) {
	var count int64
	err := db.Model(&Team{}).Count(&count).Error
	return count, err
}

// ResolvePlayers loads the full player records referenced by the team roster.
// Names with no matching player are skipped.
func (t *Team) ResolvePlayers(db *database.DB) ([]Player, error) {
	if len(t.Players) == 0 {
		return []Player{}, nil
	}

	var players []Player
	err := db.Where("name IN ?", []string(t.Players)).Find(&players).Error
	return players, err
}
