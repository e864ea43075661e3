package handlers

import (
	"errors"
	"net/http"

	"github.com/moneefalasali/Shield-Spear/internal/duel"

	"github.com/gin-gonic/gin"
)

type DuelHandler struct {
	manager *duel.Manager
	engine  *duel.Engine
}

func NewDuelHandler(manager *duel.Manager, engine *duel.Engine) *DuelHandler {
	return &DuelHandler{manager: manager, engine: engine}
}

type CreateDuelRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required" example:"4f7c..."`
	Team        string `json:"team" binding:"omitempty,oneof=red blue" example:"red"`
}

// CreateDuel godoc
// @Summary      Create a duel session
// @Description  Opens a waiting session; leave team empty for cooperative play
// @Tags         duels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateDuelRequest true "Duel data"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/duels [post]
func (h *DuelHandler) CreateDuel(c *gin.Context) {
	userID := c.GetString("user_id")
	username := c.GetString("username")

	var req CreateDuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.manager.Create(userID, username, req.ChallengeID, req.Team)
	if err != nil {
		c.JSON(duelStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_code": sess.Code,
		"session_id":   sess.ID,
		"creator_team": sess.CreatorTeam,
		"status":       sess.Status,
	})
}

type JoinDuelRequest struct {
	Code string `json:"code" binding:"required,len=8" example:"A1B2C3D4"`
}

// JoinDuel godoc
// @Summary      Join a waiting duel
// @Tags         duels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body JoinDuelRequest true "Join data"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/duels/join [post]
func (h *DuelHandler) JoinDuel(c *gin.Context) {
	userID := c.GetString("user_id")
	username := c.GetString("username")

	var req JoinDuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.manager.Join(req.Code, userID, username)
	if err != nil {
		c.JSON(duelStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_code": sess.Code,
		"status":       sess.Status,
		"participants": sess.Participants,
	})
}

// StartDuel godoc
// @Summary      Start a duel
// @Description  Creator-only; spawns a bot opponent when fewer than two humans joined
// @Tags         duels
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Session code"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/duels/{code}/start [post]
func (h *DuelHandler) StartDuel(c *gin.Context) {
	userID := c.GetString("user_id")

	sess, err := h.manager.Start(c.Param("code"), userID)
	if err != nil {
		c.JSON(duelStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_code": sess.Code,
		"status":       sess.Status,
		"participants": sess.Participants,
	})
}

type DuelActionRequest struct {
	Payload  string `json:"payload" binding:"required" example:"UNION SELECT username, password FROM users"`
	TargetID string `json:"target_id" binding:"omitempty" example:""`
}

// SubmitAction godoc
// @Summary      Submit an action in a duel
// @Tags         duels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Session code"
// @Param        request body DuelActionRequest true "Action"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /api/v1/duels/{code}/actions [post]
func (h *DuelHandler) SubmitAction(c *gin.Context) {
	userID := c.GetString("user_id")
	username := c.GetString("username")

	var req DuelActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	err := h.engine.SubmitAction(c.Param("code"), userID, username, req.Payload, req.TargetID)
	if err != nil {
		c.JSON(duelStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "action accepted"})
}

// EndDuel godoc
// @Summary      End a duel
// @Tags         duels
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Session code"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} ErrorResponse
// @Router       /api/v1/duels/{code}/end [post]
func (h *DuelHandler) EndDuel(c *gin.Context) {
	userID := c.GetString("user_id")

	sess, err := h.manager.End(c.Param("code"), userID)
	if err != nil {
		c.JSON(duelStatus(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_code": sess.Code,
		"status":       sess.Status,
		"results":      sess.Results,
		"hp_map":       sess.HPMap,
	})
}

// GetDuel godoc
// @Summary      Get duel snapshot
// @Tags         duels
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "Session code"
// @Success      200 {object} duel.Snapshot
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/duels/{code} [get]
func (h *DuelHandler) GetDuel(c *gin.Context) {
	snap, err := h.manager.Snapshot(c.Param("code"))
	if err != nil {
		c.JSON(duelStatus(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func duelStatus(err error) int {
	switch {
	case errors.Is(err, duel.ErrSessionNotFound), errors.Is(err, duel.ErrChallengeMissing):
		return http.StatusNotFound
	case errors.Is(err, duel.ErrNotCreator), errors.Is(err, duel.ErrNotParticipant):
		return http.StatusForbidden
	case errors.Is(err, duel.ErrOnCooldown):
		return http.StatusTooManyRequests
	case errors.Is(err, duel.ErrSessionStarted), errors.Is(err, duel.ErrSessionCompleted):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
