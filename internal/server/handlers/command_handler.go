package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/service/commands"
)

// CommandHandler runs chat-style text commands over HTTP.
type CommandHandler struct {
	commands commands.Dispatcher
	logger   *zap.Logger
}

// NewCommandHandler constructs the HTTP handler adapter.
func NewCommandHandler(dispatcher commands.Dispatcher, logger *zap.Logger) *CommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandHandler{commands: dispatcher, logger: logger}
}

// Run parses and executes one command, answering with the same text a chat player gets.
func (h *CommandHandler) Run(c *gin.Context) {
	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid command payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cmd := models.ParseCommand(req.Text)
	reply, err := h.commands.HandleCommand(c.Request.Context(), cmd, req.Sender)
	if err != nil {
		h.logger.Error("failed running command", zap.Error(err), zap.String("command", string(cmd.Type)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run command"})
		return
	}

	c.JSON(http.StatusOK, models.CommandReply{Command: cmd.Type, Reply: reply})
}
