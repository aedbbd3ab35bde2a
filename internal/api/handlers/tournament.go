package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/pkg/database"
	"github.com/vineetk-singh/auctionapi/pkg/utils"
	"gorm.io/gorm"
)

type TournamentHandler struct {
	db *database.DB
}

func NewTournamentHandler(db *database.DB) *TournamentHandler {
	return &TournamentHandler{
		db: db,
	}
}

type TournamentRequest struct {
	Name            string  `json:"name" binding:"required"`
	NumberOfTeams   int     `json:"numberOfTeams" binding:"required,gte=2"`
	PlayersEachTeam int     `json:"playersEachTeam" binding:"required,gte=1"`
	AmountPerTeam   float64 `json:"amountPerTeam" binding:"gte=0"`
}

// CreateTournament creates a tournament keyed by its name
// POST /api/v1/tournaments
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var req TournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if _, err := models.GetTournamentByName(h.db, req.Name); err == nil {
		utils.SendConflict(c, "Tournament already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendInternalError(c, "Failed to check existing tournament")
		return
	}

	tournament := models.Tournament{
		Name:            req.Name,
		NumberOfTeams:   req.NumberOfTeams,
		PlayersEachTeam: req.PlayersEachTeam,
		AmountPerTeam:   req.AmountPerTeam,
	}
	if err := h.db.Create(&tournament).Error; err != nil {
		utils.SendInternalError(c, "Failed to create tournament")
		return
	}

	utils.SendCreated(c, tournament)
}

// ListTournaments returns all tournaments
// GET /api/v1/tournaments
func (h *TournamentHandler) ListTournaments(c *gin.Context) {
	var tournaments []models.Tournament
	if err := h.db.Order("name ASC").Find(&tournaments).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch tournaments")
		return
	}
	utils.SendSuccess(c, tournaments)
}

// GetTournament returns a tournament by name
// GET /api/v1/tournaments/:name
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	tournament, err := models.GetTournamentByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Tournament not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch tournament")
		return
	}
	utils.SendSuccess(c, tournament)
}

// UpdateTournament updates the numeric fields of a tournament. The name key
// is immutable.
// PUT /api/v1/tournaments/:name
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	var req TournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	tournament, err := models.GetTournamentByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Tournament not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch tournament")
		return
	}

	updates := map[string]interface{}{
		"number_of_teams":   req.NumberOfTeams,
		"players_each_team": req.PlayersEachTeam,
		"amount_per_team":   req.AmountPerTeam,
	}
	if err := h.db.Model(tournament).Updates(updates).Error; err != nil {
		utils.SendInternalError(c, "Failed to update tournament")
		return
	}

	utils.SendSuccess(c, tournament)
}

// DeleteTournament removes a tournament by name
// DELETE /api/v1/tournaments/:name
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	result := h.db.Where("name = ?", c.Param("name")).Delete(&models.Tournament{})
	if result.Error != nil {
		utils.SendInternalError(c, "Failed to delete tournament")
		return
	}
	if result.RowsAffected == 0 {
		utils.SendNotFound(c, "Tournament not found")
		return
	}
	utils.SendSuccess(c, gin.H{"message": "Tournament deleted"})
}
