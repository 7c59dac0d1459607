package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shelfcam/shelfcam-api/internal/config"
	"github.com/shelfcam/shelfcam-api/internal/events"
)

// NotificationService handles emitting notifications for alert events.
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
	n.dispatcher.Subscribe(events.EventAlertCreated, n.handleAlertCreated)
	n.dispatcher.Subscribe(events.EventAlertAcknowledged, n.handleAlertLifecycle)
	n.dispatcher.Subscribe(events.EventAlertResolved, n.handleAlertLifecycle)
}

func (n *NotificationService) handleAlertCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("AlertCreated", zap.String("alert_id", event.AlertID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleAlertLifecycle(ctx context.Context, event events.Event) error {
	n.logger.Info("AlertLifecycle",
		zap.String("alert_id", event.AlertID),
		zap.String("event_type", string(event.Type)))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("alert_id", event.AlertID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("alert_id", event.AlertID),
		zap.String("event_type", string(event.Type)))
}
