package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/service/commands"
	service "github.com/mamadbah2/henhouse/internal/service/whatsapp"
)

const whatsappObject = "whatsapp_business_account"

// WebhookHandler exposes the WhatsApp game channel over HTTP.
type WebhookHandler struct {
	svc      service.MessagingService
	commands commands.Dispatcher
	logger   *zap.Logger
}

// NewWebhookHandler constructs the HTTP handler adapter.
func NewWebhookHandler(svc service.MessagingService, dispatcher commands.Dispatcher, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, commands: dispatcher, logger: logger}
}

// Verify answers the Cloud API subscription challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.svc.VerifyWebhookToken(c.Query("hub.mode"), c.Query("hub.verify_token"), c.Query("hub.challenge"))
	if err != nil {
		h.logger.Warn("webhook subscription rejected", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

// Receive plays the commands carried by a webhook callback. Callbacks for other objects
// are ignored. A delivery whose commands were applied is always acknowledged, since a
// redelivery would replay purchases.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Object != whatsappObject {
		h.logger.Debug("ignoring webhook for other object", zap.String("object", payload.Object))
		c.Status(http.StatusOK)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("webhook processed with errors", zap.Error(err), zap.Int("entries", len(payload.Entry)))
	}

	c.Status(http.StatusOK)
}

// Share pushes the answer to a query command (status, leaderboard, help) to a player.
// Commands that would change the game are refused.
func (h *WebhookHandler) Share(c *gin.Context) {
	var req models.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid share payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	text := req.Command
	if text == "" {
		text = "/" + string(models.CommandStatus)
	}
	cmd := models.ParseCommand(text)
	if !cmd.IsQuery() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only /status, /leaderboard and /help can be shared"})
		return
	}

	reply, err := h.commands.HandleCommand(c.Request.Context(), cmd, "")
	if err != nil {
		h.logger.Error("failed rendering shared command", zap.Error(err), zap.String("command", string(cmd.Type)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render reply"})
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), models.OutboundMessageRequest{To: req.To, Message: reply}); err != nil {
		h.logger.Error("failed sharing to whatsapp", zap.Error(err), zap.String("command", string(cmd.Type)))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}

	c.JSON(http.StatusAccepted, models.CommandReply{Command: cmd.Type, Reply: reply})
}
