package handlers

import (
	"net/http"

	"github.com/moneefalasali/Shield-Spear/internal/services"

	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

// ListChallenges godoc
// @Summary      List active challenges
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Category filter (red, blue, coop)"
// @Success      200 {array} models.Challenge
// @Router       /api/v1/challenges [get]
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	challenges, err := h.challengeService.List(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetChallenge godoc
// @Summary      Get one challenge
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Challenge ID"
// @Success      200 {object} models.Challenge
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/challenges/{id} [get]
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	ch, err := h.challengeService.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ch)
}

// StartChallenge godoc
// @Summary      Start a solo attempt
// @Description  Opens an attempt against the simulated bot opponent
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Challenge ID"
// @Success      201 {object} map[string]interface{}
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/challenges/{id}/start [post]
func (h *ChallengeHandler) StartChallenge(c *gin.Context) {
	userID := c.GetString("user_id")

	attempt, botRole, err := h.challengeService.StartAttempt(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"attempt":  attempt,
		"bot_role": botRole,
	})
}

type SubmitSolutionRequest struct {
	Solution string `json:"solution" binding:"required" example:"' OR '1'='1"`
}

// SubmitSolution godoc
// @Summary      Submit a solo solution
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Attempt ID"
// @Param        request body SubmitSolutionRequest true "Solution"
// @Success      200 {object} services.AttemptResult
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/attempts/{id}/submit [post]
func (h *ChallengeHandler) SubmitSolution(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SubmitSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.challengeService.SubmitSolution(c.Param("id"), userID, req.Solution)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAttempt godoc
// @Summary      Get a solo attempt
// @Tags         challenges
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Attempt ID"
// @Success      200 {object} models.ChallengeAttempt
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id} [get]
func (h *ChallengeHandler) GetAttempt(c *gin.Context) {
	userID := c.GetString("user_id")

	attempt, err := h.challengeService.GetAttempt(c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, attempt)
}

type BotInteractRequest struct {
	Message string `json:"message" binding:"required" example:"I'm probing your login form"`
}

// BotInteract godoc
// @Summary      Talk to the bot opponent
// @Description  Returns the simulated opponent's reaction during a solo attempt
// @Tags         challenges
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Attempt ID"
// @Param        request body BotInteractRequest true "Player message"
// @Success      200 {object} map[string]string
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/attempts/{id}/bot [post]
func (h *ChallengeHandler) BotInteract(c *gin.Context) {
	userID := c.GetString("user_id")

	var req BotInteractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	response, err := h.challengeService.BotInteract(c.Param("id"), userID, req.Message)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}

// Leaderboard godoc
// @Summary      Leaderboard
// @Tags         leaderboard
// @Produce      json
// @Param        category query string false "Category filter"
// @Success      200 {array} services.LeaderboardEntry
// @Router       /api/v1/leaderboard [get]
func (h *ChallengeHandler) Leaderboard(c *gin.Context) {
	entries, err := h.challengeService.Leaderboard(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}
