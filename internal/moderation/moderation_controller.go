package moderation

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sitca-league/sitca-backend/config"
	"github.com/sitca-league/sitca-backend/internal/player"
	"github.com/sitca-league/sitca-backend/pkg/responses"
)

// ModerationController serves the admin dashboard: listing applications and
// deciding them.
type ModerationController struct {
	repo   player.PlayerRepository
	config *config.Config
}

func NewModerationController(repo player.PlayerRepository, cfg *config.Config) *ModerationController {
	return &ModerationController{
		repo:   repo,
		config: cfg,
	}
}

// @Summary      List pending players
// @Description  All player applications still awaiting a decision, newest first.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object} responses.ListResponse
// @Failure      401   {object} responses.ErrorResponse "Missing or invalid token"
// @Failure      403   {object} responses.ErrorResponse "Not an admin"
// @Router       /admin/players/pending [get]
func (mc *ModerationController) ListPending(c *gin.Context) {
	players, err := mc.repo.ListByStatus(player.StatusPending)
	if err != nil {
		log.Printf("LIST PENDING ERROR: %v", err)
		mc.serverError(c, err)
		return
	}
	responses.SendList(c, http.StatusOK, len(players), players)
}

// @Summary      List all players
// @Description  Every player application regardless of status, newest first.
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object} responses.ListResponse
// @Failure      401   {object} responses.ErrorResponse "Missing or invalid token"
// @Failure      403   {object} responses.ErrorResponse "Not an admin"
// @Router       /admin/players/all [get]
func (mc *ModerationController) ListAll(c *gin.Context) {
	players, err := mc.repo.ListAll()
	if err != nil {
		log.Printf("LIST ALL ERROR: %v", err)
		mc.serverError(c, err)
		return
	}
	responses.SendList(c, http.StatusOK, len(players), players)
}

// @Summary      Decide a player application
// @Description  Move a PENDING player to APPROVED or REJECTED. Re-applying the current status is a no-op; flipping between terminal states is rejected.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int                   true  "Player ID"
// @Param        status  body  player.StatusRequest  true  "Target status"
// @Success      200   {object} responses.SuccessResponse "Updated player"
// @Failure      400   {object} responses.ErrorResponse "Status not APPROVED or REJECTED"
// @Failure      404   {object} responses.ErrorResponse "Unknown player"
// @Failure      409   {object} responses.ErrorResponse "Player already finalized"
// @Router       /admin/player/{id}/status [patch]
func (mc *ModerationController) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid player id")
		return
	}

	var req player.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid status")
		return
	}
	if !player.ValidDecision(req.Status) {
		responses.BadRequest(c, "Invalid status")
		return
	}

	updated, err := mc.repo.UpdateStatus(uint(id), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			responses.NotFound(c, "Player")
		case errors.Is(err, player.ErrFinalized):
			responses.Conflict(c, "Player status has already been finalized")
		default:
			log.Printf("SET STATUS ERROR: %v", err)
			mc.serverError(c, err)
		}
		return
	}

	msg := fmt.Sprintf("Player %s successfully", statusVerb(req.Status))
	responses.SendSuccess(c, http.StatusOK, msg, updated)
}

// @Summary      Decide a batch of player applications
// @Description  Applies one decision to many players in a single transaction. All-or-nothing: one unknown or finalized id rolls the whole batch back.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        batch  body  player.BulkStatusRequest  true  "Player ids and target status"
// @Success      200   {object} responses.SuccessResponse "Number of players updated"
// @Failure      400   {object} responses.ErrorResponse "Bad status or empty batch"
// @Failure      404   {object} responses.ErrorResponse "One or more ids unknown"
// @Failure      409   {object} responses.ErrorResponse "One or more players already finalized"
// @Router       /admin/players/bulk-status [post]
func (mc *ModerationController) BulkSetStatus(c *gin.Context) {
	var req player.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "player_ids and status are required")
		return
	}
	if !player.ValidDecision(req.Status) {
		responses.BadRequest(c, "Invalid status")
		return
	}

	updated, err := mc.repo.BulkUpdateStatus(req.PlayerIDs, req.Status)
	if err != nil {
		var missing *player.MissingPlayersError
		var finalized *player.FinalizedPlayersError
		switch {
		case errors.As(err, &missing):
			responses.SendError(c, http.StatusNotFound, missing.Error())
		case errors.As(err, &finalized):
			responses.Conflict(c, finalized.Error())
		default:
			log.Printf("BULK STATUS ERROR: %v", err)
			mc.serverError(c, err)
		}
		return
	}

	msg := fmt.Sprintf("%d player(s) %s successfully", updated, statusVerb(req.Status))
	responses.SendSuccess(c, http.StatusOK, msg, gin.H{"updated": updated})
}

func (mc *ModerationController) serverError(c *gin.Context, err error) {
	if mc.config.IsProduction() {
		responses.InternalServerError(c, "Server error")
		return
	}
	responses.InternalServerError(c, err.Error())
}

func statusVerb(status string) string {
	if status == player.StatusApproved {
		return "approved"
	}
	return "rejected"
}
