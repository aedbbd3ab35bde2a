package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vineetk-singh/auctionapi/internal/models"
	"github.com/vineetk-singh/auctionapi/internal/services"
	"github.com/vineetk-singh/auctionapi/pkg/config"
	"github.com/vineetk-singh/auctionapi/pkg/database"
	"github.com/vineetk-singh/auctionapi/pkg/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeamHandler struct {
	db       *database.DB
	cache    *services.CacheService
	importer *services.TeamImporter
	cfg      *config.Config
}

func NewTeamHandler(db *database.DB, cache *services.CacheService, importer *services.TeamImporter, cfg *config.Config) *TeamHandler {
	return &TeamHandler{
		db:       db,
		cache:    cache,
		importer: importer,
		cfg:      cfg,
	}
}

type TeamRequest struct {
	Name    string   `json:"name" binding:"required"`
	Owner   string   `json:"owner" binding:"required"`
	Players []string `json:"players"`
	Lock    bool     `json:"lock"`
}

// TeamResponse is a team with its player references resolved to full records.
type TeamResponse struct {
	models.Team
	Roster []models.Player `json:"roster"`
}

// CreateTeam creates a team keyed by name, with the owner supplying the
// roster directly.
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	exists, err := models.TeamExists(h.db, req.Name)
	if err != nil {
		utils.SendInternalError(c, "Failed to check existing team")
		return
	}
	if exists {
		utils.SendConflict(c, "Team already exists")
		return
	}

	team := models.Team{
		Name:    req.Name,
		Owner:   req.Owner,
		Players: datatypes.NewJSONSlice(req.Players),
		Lock:    req.Lock,
	}
	if err := h.db.Create(&team).Error; err != nil {
		utils.SendInternalError(c, "Failed to create team")
		return
	}

	h.invalidateCache(c)
	utils.SendCreated(c, team)
}

// ListTeams returns all teams with their player references resolved.
// GET /api/v1/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	var resolved []TeamResponse

	if h.cache != nil {
		if err := h.cache.Get(c.Request.Context(), services.TeamsCacheKey, &resolved); err == nil {
			utils.SendSuccess(c, resolved)
			return
		}
	}

	var teams []models.Team
	if err := h.db.Order("name ASC").Find(&teams).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch teams")
		return
	}

	resolved = make([]TeamResponse, 0, len(teams))
	for i := range teams {
		roster, err := teams[i].ResolvePlayers(h.db)
		if err != nil {
			utils.SendInternalError(c, "Failed to resolve team players")
			return
		}
		resolved = append(resolved, TeamResponse{Team: teams[i], Roster: roster})
	}

	if h.cache != nil {
		h.cache.Set(c.Request.Context(), services.TeamsCacheKey, resolved, h.cfg.ListCacheTTL)
	}

	utils.SendSuccess(c, resolved)
}

// GetTeam returns a single team by name with its roster resolved
// GET /api/v1/teams/:name
func (h *TeamHandler) GetTeam(c *gin.Context) {
	team, err := models.GetTeamByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Team not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch team")
		return
	}

	roster, err := team.ResolvePlayers(h.db)
	if err != nil {
		utils.SendInternalError(c, "Failed to resolve team players")
		return
	}

	utils.SendSuccess(c, TeamResponse{Team: *team, Roster: roster})
}

// BulkUploadTeams imports teams from an uploaded CSV file. The import is
// additive-only; rows naming an existing team are skipped. One Owner account
// is provisioned per owner in the file and the outcomes are reported in the
// response.
// POST /api/v1/teams/bulk
func (h *TeamHandler) BulkUploadTeams(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "CSV file required", err.Error())
		return
	}

	dst := filepath.Join(h.cfg.UploadDir, fmt.Sprintf("teams-%d-%s.csv", time.Now().UnixNano(), uuid.NewString()))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.SendInternalError(c, "Failed to store uploaded file")
		return
	}

	result, err := h.importer.ImportFile(dst)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoTournament):
			utils.SendValidationError(c, "No tournament exists", "Create a tournament before uploading teams")
		case errors.Is(err, services.ErrNoValidTeams):
			utils.SendValidationError(c, "No valid teams to insert", "")
		default:
			utils.SendError(c, http.StatusInternalServerError, utils.NewAppError(utils.ErrCodeImport, "Bulk upload failed", err.Error()))
		}
		return
	}

	h.invalidateCache(c)
	utils.SendCreated(c, gin.H{
		"message":           fmt.Sprintf("%d teams inserted", len(result.Inserted)),
		"inserted":          result.Inserted,
		"skipped_missing":   result.SkippedMissing,
		"skipped_invalid":   result.SkippedInvalid,
		"skipped_duplicate": result.SkippedDuplicate,
		"failed":            result.Failed,
		"provisioning":      result.Provisioning,
	})
}

func (h *TeamHandler) invalidateCache(c *gin.Context) {
	if h.cache != nil {
		h.cache.Delete(c.Request.Context(), services.TeamsCacheKey)
	}
}
