package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/vineetk-singh/auctionapi/internal/services"
	"github.com/vineetk-singh/auctionapi/pkg/utils"
)

type SetupHandler struct {
	setup *services.SetupService
}

func NewSetupHandler(setup *services.SetupService) *SetupHandler {
	return &SetupHandler{
		setup: setup,
	}
}

// GetSetupStatus recomputes and returns the event readiness flag
// GET /api/v1/setup/status
func (h *SetupHandler) GetSetupStatus(c *gin.Context) {
	complete, err := h.setup.Status()
	if err != nil {
		utils.SendInternalError(c, "Failed to get setup status")
		return
	}

	utils.SendSuccess(c, gin.H{"isSetupComplete": complete})
}
