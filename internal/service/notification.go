package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/events"
)

// NotificationService surfaces console-action events to operators.
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
	n.dispatcher.Subscribe(events.EventTicketAccepted, n.handleAction)
	n.dispatcher.Subscribe(events.EventTicketDenied, n.handleAction)
	n.dispatcher.Subscribe(events.EventTicketResolved, n.handleAction)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleAction)
	n.dispatcher.Subscribe(events.EventTicketSplit, n.handleAction)
	n.dispatcher.Subscribe(events.EventReassignRequested, n.handleAction)
	n.dispatcher.Subscribe(events.EventReassignReviewed, n.handleAction)
	n.dispatcher.Subscribe(events.EventTicketOverdue, n.handleOverdue)
}

func (n *NotificationService) handleAction(ctx context.Context, event events.Event) error {
	n.logger.Info("console action",
		zap.String("event", string(event.Type)),
		zap.String("target_kind", string(event.TargetKind)),
		zap.String("target_id", event.TargetID),
		zap.String("actor_id", event.Actor.UserID),
		zap.Any("payload", event.Payload),
	)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleOverdue(ctx context.Context, event events.Event) error {
	n.logger.Warn("ticket overdue",
		zap.String("target_id", event.TargetID),
		zap.Any("payload", event.Payload),
	)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("target_id", event.TargetID),
		zap.String("event_type", string(event.Type)))
}
