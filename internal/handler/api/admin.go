package api

import (
	"net/http"

	resdto "foodbridge/internal/handler/dto/response"
	"foodbridge/internal/pkg/clock"
	"foodbridge/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	sweepCommands commands.SweepCommands
	clock         clock.Clock
}

func NewAdminHandler(sweepCommands commands.SweepCommands, clk clock.Clock) *AdminHandler {
	return &AdminHandler{
		sweepCommands: sweepCommands,
		clock:         clk,
	}
}

// @Summary Run expiration sweep
// @Description Expire lapsed listings now instead of waiting for the scheduled sweep
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/sweep [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	result, err := h.sweepCommands.SweepExpiredListings(c.Request.Context(), h.clock.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
