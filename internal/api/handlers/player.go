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
	"gorm.io/gorm"
)

type PlayerHandler struct {
	db       *database.DB
	cache    *services.CacheService
	importer *services.PlayerImporter
	cfg      *config.Config
}

func NewPlayerHandler(db *database.DB, cache *services.CacheService, importer *services.PlayerImporter, cfg *config.Config) *PlayerHandler {
	return &PlayerHandler{
		db:       db,
		cache:    cache,
		importer: importer,
		cfg:      cfg,
	}
}

type PlayerRequest struct {
	Name      string               `json:"name" binding:"required"`
	Age       int                  `json:"age" binding:"required,gte=15,lte=50"`
	Country   string               `json:"country" binding:"required"`
	Role      string               `json:"role" binding:"required,oneof=batting bowling allrounder"`
	BasePrice float64              `json:"basePrice" binding:"gte=0"`
	Records   models.PlayerRecords `json:"records"`
}

// CreatePlayer creates a player keyed by name
// POST /api/v1/players
func (h *PlayerHandler) CreatePlayer(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if _, err := models.GetPlayerByName(h.db, req.Name); err == nil {
		utils.SendConflict(c, "Player already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.SendInternalError(c, "Failed to check existing player")
		return
	}

	player := models.Player{
		Name:      req.Name,
		Age:       req.Age,
		Country:   req.Country,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		Records:   req.Records,
	}
	if err := h.db.Create(&player).Error; err != nil {
		utils.SendInternalError(c, "Failed to create player")
		return
	}

	h.invalidateCache(c)
	utils.SendCreated(c, player)
}

// ListPlayers returns all players
// GET /api/v1/players
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	var players []models.Player

	if h.cache != nil {
		if err := h.cache.Get(c.Request.Context(), services.PlayersCacheKey, &players); err == nil {
			utils.SendSuccess(c, players)
			return
		}
	}

	if err := h.db.Order("name ASC").Find(&players).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch players")
		return
	}

	if h.cache != nil {
		h.cache.Set(c.Request.Context(), services.PlayersCacheKey, players, h.cfg.ListCacheTTL)
	}

	utils.SendSuccess(c, players)
}

// GetPlayer returns a single player by name
// GET /api/v1/players/:name
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	player, err := models.GetPlayerByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch player")
		return
	}
	utils.SendSuccess(c, player)
}

// UpdatePlayer replaces the mutable fields of a player
// PUT /api/v1/players/:name
func (h *PlayerHandler) UpdatePlayer(c *gin.Context) {
	var req PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	player, err := models.GetPlayerByName(h.db, c.Param("name"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Player not found")
			return
		}
		utils.SendInternalError(c, "Failed to fetch player")
		return
	}

	player.Age = req.Age
	player.Country = req.Country
	player.Role = req.Role
	player.BasePrice = req.BasePrice
	player.Records = req.Records
	if err := h.db.Save(player).Error; err != nil {
		utils.SendInternalError(c, "Failed to update player")
		return
	}

	h.invalidateCache(c)
	utils.SendSuccess(c, player)
}

// DeletePlayer removes a player by name
// DELETE /api/v1/players/:name
func (h *PlayerHandler) DeletePlayer(c *gin.Context) {
	result := h.db.Where("name = ?", c.Param("name")).Delete(&models.Player{})
	if result.Error != nil {
		utils.SendInternalError(c, "Failed to delete player")
		return
	}
	if result.RowsAffected == 0 {
		utils.SendNotFound(c, "Player not found")
		return
	}

	h.invalidateCache(c)
	utils.SendSuccess(c, gin.H{"message": "Player deleted"})
}

// BulkUploadPlayers imports players from an uploaded CSV file. Rows upsert by
// player name, so re-importing a file refreshes stats in place.
// POST /api/v1/players/bulk-upload
func (h *PlayerHandler) BulkUploadPlayers(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "CSV file required", err.Error())
		return
	}

	dst := filepath.Join(h.cfg.UploadDir, fmt.Sprintf("players-%d-%s.csv", time.Now().UnixNano(), uuid.NewString()))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		utils.SendInternalError(c, "Failed to store uploaded file")
		return
	}

	result, err := h.importer.ImportFile(dst)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, utils.NewAppError(utils.ErrCodeImport, "Bulk upload failed", err.Error()))
		return
	}

	h.invalidateCache(c)
	utils.SendSuccess(c, gin.H{
		"message": "Bulk upload complete",
		"count":   result.Submitted,
		"failed":  result.Failed,
	})
}

func (h *PlayerHandler) invalidateCache(c *gin.Context) {
	if h.cache != nil {
		h.cache.Delete(c.Request.Context(), services.PlayersCacheKey)
	}
}
