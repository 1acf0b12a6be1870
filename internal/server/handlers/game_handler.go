package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/service/reporting"
)

// GameService is the game surface exposed over HTTP.
type GameService interface {
	Dispatch(ctx context.Context, action models.Action) (models.GameState, error)
	Snapshot() models.GameState
	Summary() models.SessionResult
}

// LeaderboardService ranks stored sessions.
type LeaderboardService interface {
	Leaderboard(ctx context.Context, limit int) ([]models.SessionResult, error)
}

// GameHandler serves the REST game API.
type GameHandler struct {
	game        GameService
	leaderboard LeaderboardService
	logger      *zap.Logger
}

// NewGameHandler constructs the HTTP handler adapter.
func NewGameHandler(game GameService, leaderboard LeaderboardService, logger *zap.Logger) *GameHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameHandler{game: game, leaderboard: leaderboard, logger: logger}
}

// Catalog returns breeds, food items and prices.
func (h *GameHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, models.CatalogView())
}

// State returns the current game state.
func (h *GameHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewStateView(h.game.Snapshot()))
}

// Act applies one player action. Failed preconditions are not errors: the unchanged
// state comes back with 200.
func (h *GameHandler) Act(c *gin.Context) {
	var req models.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid action payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	action, err := req.Action()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.game.Dispatch(c.Request.Context(), action)
	if err != nil {
		h.logger.Error("failed dispatching action", zap.Error(err), zap.String("action", string(req.Type)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply action"})
		return
	}

	c.JSON(http.StatusOK, models.NewStateView(state))
}

// Summary returns the profit/loss outcome of the current session.
func (h *GameHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.game.Summary())
}

// Leaderboard returns the most profitable stored sessions.
func (h *GameHandler) Leaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	if h.leaderboard == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": reporting.ErrResultsDisabled.Error()})
		return
	}

	results, err := h.leaderboard.Leaderboard(c.Request.Context(), limit)
	switch {
	case errors.Is(err, reporting.ErrResultsDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.logger.Error("failed loading leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
