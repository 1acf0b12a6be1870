package whatsapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/henhouse/internal/config"
	"github.com/mamadbah2/henhouse/internal/domain/models"
	"github.com/mamadbah2/henhouse/internal/service/commands"
	"github.com/mamadbah2/henhouse/pkg/clients/anthropic"
	client "github.com/mamadbah2/henhouse/pkg/clients/whatsapp"
)

const (
	sendTimeout      = 10 * time.Second
	translateTimeout = 15 * time.Second
)

// MessagingService describes the operations the HTTP layer can perform.
type MessagingService interface {
	VerifyWebhookToken(mode, verifyToken, challenge string) (string, error)
	HandleWebhook(ctx context.Context, payload models.WebhookPayload) error
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService plays the game over the WhatsApp Cloud API.
type MetaWhatsAppService struct {
	cfg        config.WhatsAppConfig
	client     client.Client
	commands   commands.Dispatcher
	translator anthropic.Client
	sessions   *SessionManager
	logger     *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance. translator is optional.
func NewMetaWhatsAppService(cfg config.WhatsAppConfig, client client.Client, dispatcher commands.Dispatcher, translator anthropic.Client, logger *zap.Logger) *MetaWhatsAppService {
	svc := &MetaWhatsAppService{
		cfg:        cfg,
		client:     client,
		commands:   dispatcher,
		translator: translator,
		sessions:   NewSessionManager(),
		logger:     logger,
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// VerifyWebhookToken validates the callback verification token.
func (s *MetaWhatsAppService) VerifyWebhookToken(mode, verifyToken, challenge string) (string, error) {
	if mode == "" || verifyToken == "" {
		return "", errors.New("missing mode or verify token")
	}

	if !strings.EqualFold(mode, "subscribe") {
		return "", fmt.Errorf("unsupported hub.mode %s", mode)
	}

	if verifyToken != s.cfg.VerifyToken {
		return "", errors.New("invalid verify token")
	}

	return challenge, nil
}

// HandleWebhook processes inbound webhook payloads.
func (s *MetaWhatsAppService) HandleWebhook(ctx context.Context, payload models.WebhookPayload) error {
	var firstErr error

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, status := range change.Value.Statuses {
				if status.Status == "failed" {
					s.logger.Warn("outbound message failed", zap.String("message_id", status.ID), zap.String("recipient", status.RecipientID))
				}
			}

			names := make(map[string]string, len(change.Value.Contacts))
			for _, contact := range change.Value.Contacts {
				names[contact.WaID] = contact.Profile.Name
			}

			for _, msg := range change.Value.Messages {
				if err := s.handleInboundMessage(ctx, msg, names[msg.From]); err != nil {
					s.logger.Error("failed to handle inbound message", zap.Error(err), zap.String("message_id", msg.ID))
					if firstErr == nil {
						firstErr = err
					}
				}
			}
		}
	}

	return firstErr
}

func (s *MetaWhatsAppService) handleInboundMessage(ctx context.Context, msg models.InboundMessage, profileName string) error {
	text := extractMessageText(msg)
	if text == "" {
		s.logger.Debug("ignoring non-text message", zap.String("type", msg.Type), zap.String("message_id", msg.ID))
		return nil
	}

	if err := s.client.MarkAsRead(ctx, msg.ID); err != nil {
		s.logger.Debug("mark as read failed", zap.Error(err))
	}

	cmd := models.ParseCommand(text)
	note := ""
	if cmd.Type == models.CommandUnknown {
		cmd, note = s.translate(ctx, msg.From, text)
	}

	reply, err := s.commands.HandleCommand(ctx, cmd, profileName)
	if err != nil {
		s.logger.Error("command failed", zap.Error(err), zap.String("command", string(cmd.Type)))
		reply = "Something went wrong, please try again."
	}
	if note != "" {
		reply = note + "\n\n" + reply
	}

	s.logger.Info("handled inbound command",
		zap.String("from", msg.From),
		zap.String("command", string(cmd.Type)),
		zap.Strings("args", cmd.Args))

	return s.SendOutbound(ctx, models.OutboundMessageRequest{To: msg.From, Message: reply})
}

// translate asks the translator for a command. It returns the unknown command unchanged
// when no translator is configured or nothing matched.
func (s *MetaWhatsAppService) translate(ctx context.Context, from, text string) (models.Command, string) {
	unknown := models.Command{Type: models.CommandUnknown, Raw: text}
	if s.translator == nil {
		return unknown, ""
	}

	ctx, cancel := context.WithTimeout(ctx, translateTimeout)
	defer cancel()

	tr, err := s.translator.TranslateToCommand(ctx, s.sessions.History(from), text)
	if err != nil {
		s.logger.Warn("command translation failed", zap.Error(err))
		return unknown, ""
	}

	if answer, err := json.Marshal(tr); err == nil {
		s.sessions.Record(from, text, string(answer))
	}

	if tr.Command == "" {
		return unknown, tr.Reply
	}

	cmd := models.ParseCommand(tr.Command)
	s.logger.Debug("translated free text", zap.String("text", text), zap.String("command", tr.Command))
	return cmd, tr.Reply
}

// SendOutbound pushes a text message, used for replies and scheduled reports.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	return err
}

func extractMessageText(msg models.InboundMessage) string {
	if msg.Text != nil {
		return strings.TrimSpace(msg.Text.Body)
	}

	if msg.Interactive != nil {
		if msg.Interactive.ButtonReply != nil {
			return msg.Interactive.ButtonReply.ID
		}
		if msg.Interactive.ListReply != nil {
			return msg.Interactive.ListReply.ID
		}
	}

	return ""
}
