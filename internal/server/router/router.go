package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/server/handlers"
)

// Handlers groups the route targets. Webhook is nil when WhatsApp is not configured.
type Handlers struct {
	Game     *handlers.GameHandler
	Commands *handlers.CommandHandler
	Webhook  *handlers.WebhookHandler
	Stream   gin.HandlerFunc
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/catalog", h.Game.Catalog)
	api.GET("/state", h.Game.State)
	api.POST("/actions", h.Game.Act)
	api.GET("/summary", h.Game.Summary)
	api.GET("/leaderboard", h.Game.Leaderboard)
	if h.Commands != nil {
		api.POST("/commands", h.Commands.Run)
	}

	if h.Stream != nil {
		r.GET("/ws", h.Stream)
	}

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/whatsapp/share", h.Webhook.Share)
	}

	logger.Info("router initialized", zap.Bool("whatsapp", h.Webhook != nil), zap.Bool("stream", h.Stream != nil))

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Websocket sessions last as long as the connection.
		if c.IsWebsocket() {
			logger.Debug("stream closed", zap.String("client_ip", c.ClientIP()), zap.Duration("duration", time.Since(start)))
			return
		}

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
