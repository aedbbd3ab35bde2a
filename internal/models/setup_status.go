package models

import (
	"errors"
	"time"

	"github.com/vineetk-singh/auctionapi/pkg/database"
	"gorm.io/gorm"
)

// ErrSetupStatusExists is returned when a second setup status record is
// created; the collection holds at most one row.
var ErrSetupStatusExists = errors.New("only one setup status record can exist")

// SetupStatus is a singleton record holding the derived readiness flag.
type SetupStatus struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	IsSetupComplete bool      `gorm:"default:false" json:"isSetupComplete"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (SetupStatus) TableName() string {
	return "setup_status"
}

// CreateSetupStatus inserts the singleton row. The count guard runs inside a
// transaction so two concurrent first accesses cannot both insert.
func CreateSetupStatus(db *database.DB) (*SetupStatus, error) {
	status := &SetupStatus{}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&SetupStatus{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSetupStatusExists
		}
		return tx.Create(status).Error
	})
	if err != nil {
		return nil, err
	}
	return status, nil
}

// GetOrCreateSetupStatus fetches the singleton, creating it on first access.
func GetOrCreateSetupStatus(db *database.DB) (*SetupStatus, error) {
	var status SetupStatus
	err := db.First(&status).Error
	if err == nil {
		return &status, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := CreateSetupStatus(db)
	if errors.Is(err, ErrSetupStatusExists) {
		// Lost the race to another request; read the winner's row.
		err = db.First(&status).Error
		return &status, err
	}
	return created, err
}
