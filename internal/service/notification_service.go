package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eandradeg/alltelapp/internal/config"
	"github.com/eandradeg/alltelapp/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIncidentRegistered, n.handleIncidentRegistered)
	n.dispatcher.Subscribe(events.EventIncidentFinalized, n.handleIncidentFinalized)
	n.dispatcher.Subscribe(events.EventSolutionSaved, n.handleSolutionSaved)
	n.dispatcher.Subscribe(events.EventClientCreated, n.handleClientCreated)
	n.dispatcher.Subscribe(events.EventClientStatusChanged, n.handleClientStatusChanged)
}

func (n *NotificationService) handleIncidentRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentRegistered", zap.String("permisionario", event.Permisionario), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentFinalized(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentFinalized", zap.String("permisionario", event.Permisionario), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSolutionSaved(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentSolutionSaved", zap.String("permisionario", event.Permisionario), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleClientCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ClientCreated", zap.String("permisionario", event.Permisionario), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleClientStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ClientStatusChanged", zap.String("permisionario", event.Permisionario), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("permisionario", event.Permisionario),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("permisionario", event.Permisionario),
		zap.String("event_type", string(event.Type)))
}
