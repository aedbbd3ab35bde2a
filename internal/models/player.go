package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vineetk-singh/auctionapi/pkg/database"
)

// Player roles
const (
	RoleBatting    = "batting"
	RoleBowling    = "bowling"
	RoleAllrounder = "allrounder"
)

// Player uses the player's name as its primary key. Players exist
// independently of teams and tournaments; teams reference them by name.
type Player struct {
	Name      string        `gorm:"primaryKey" json:"name"`
	Age       int           `gorm:"not null" json:"age"`
	Country   string        `gorm:"not null" json:"country"`
	Role      string        `gorm:"not null" json:"role"` // "batting", "bowling" or "allrounder"
	BasePrice float64       `gorm:"not null" json:"basePrice"`
	Records   PlayerRecords `gorm:"type:jsonb" json:"records"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

// PlayerRecords is the nested career stat block stored as a JSONB column.
type PlayerRecords struct {
	Batting  BattingRecord  `json:"batting"`
	Bowling  BowlingRecord  `json:"bowling"`
	Fielding FieldingRecord `json:"fielding"`
}

type BattingRecord struct {
	TotalRuns      float64 `json:"totalRuns"`
	Total4s        float64 `json:"total4s"`
	Total6s        float64 `json:"total6s"`
	TotalCenturies float64 `json:"totalCenturies"`
	Total50s       float64 `json:"total50s"`
	Total20s       float64 `json:"total20s"`
	Total30s       float64 `json:"total30s"`
	Total40s       float64 `json:"total40s"`
	BattingAverage float64 `json:"battingAverage"`
}

type BowlingRecord struct {
	TotalOvers   float64 `json:"totalOvers"`
	TotalWides   float64 `json:"totalWides"`
	TotalRuns    float64 `json:"totalRuns"`
	TotalNoBalls float64 `json:"totalNoBalls"`
	TotalWickets float64 `json:"totalWickets"`
}

type FieldingRecord struct {
	TotalCatches float64 `json:"totalCatches"`
	TotalRunOuts float64 `json:"totalRunOuts"`
}

// Scan implements the sql.Scanner interface for JSONB
func (r *PlayerRecords) Scan(value interface{}) error {
	if value == nil {
		*r = PlayerRecords{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PlayerRecords", value)
	}

	return json.Unmarshal(bytes, r)
}

// Value implements the driver.Valuer interface for JSONB
func (r PlayerRecords) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// GetPlayerByName fetches a player by its name key
func GetPlayerByName(db *database.DB, name string) (*Player, error) {
	var player Player
	err := db.Where("name = ?", name).First(&player).Error
	return &player, err
}

func CountPlayers(db *database.DB) (int64, error) {
	var count int64
	err := db.Model(&Player{}).Count(&count).Error
	return count, err
}
