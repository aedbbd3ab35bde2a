package services

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/pkg/database"
)

// ownerPasswordSuffix is appended to the whitespace-stripped owner name to
// form the deterministic initial password of a provisioned account.
const ownerPasswordSuffix = "@123"

// ProvisionOutcome reports the result of provisioning one owner account.
type ProvisionOutcome struct {
	Username string `json:"username"`
	Created  bool   `json:"created"`
	Error    string `json:"error,omitempty"`
}

// UserProvisioner creates Owner accounts as a side effect of team imports.
type UserProvisioner struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewUserProvisioner(db *database.DB, logger *logrus.Logger) *UserProvisioner {
	return &UserProvisioner{
		db:     db,
		logger: logger,
	}
}

// InitialOwnerPassword derives the deterministic starting password for an
// owner account: the owner's name with all whitespace removed plus a fixed
// suffix.
func InitialOwnerPassword(owner string) string {
	return strings.Join(strings.Fields(owner), "") + ownerPasswordSuffix
}

// ProvisionOwners creates one Owner user per name, hashing the derived
// password before storage. A failure on one owner (typically a duplicate
// username) does not stop the rest; each outcome is reported individually.
func (s *UserProvisioner) ProvisionOwners(owners []string) []ProvisionOutcome {
	outcomes := make([]ProvisionOutcome, 0, len(owners))
	for _, owner := range owners {
		outcome := ProvisionOutcome{Username: owner}

		_, err := models.CreateUser(s.db, owner, InitialOwnerPassword(owner), models.RoleOwner)
		if err != nil {
			s.logger.WithField("username", owner).Warnf("Failed to provision owner account: %v", err)
			outcome.Error = err.Error()
		} else {
			outcome.Created = true
		}

		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
