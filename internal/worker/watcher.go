package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-console/internal/config"
	"github.com/spec-kit/helpdesk-console/internal/domain"
	"github.com/spec-kit/helpdesk-console/internal/events"
	"github.com/spec-kit/helpdesk-console/internal/session"
	"github.com/spec-kit/helpdesk-console/internal/upstream"
)

const (
	notifiedKeyPrefix = "console:overdue:notified:"
	notifiedTTL       = 7 * 24 * time.Hour
)

// Watcher periodically polls the backend for tickets that have passed their
// due date and publishes an overdue event once per ticket. Redis keeps the
// already-notified set so restarts do not re-fire events.
type Watcher struct {
	tickets  upstream.TicketAPI
	redis    *redis.Client
	events   events.Dispatcher
	logger   *zap.Logger
	cfg      config.WatcherConfig
	interval time.Duration
}

// NewWatcher builds a watcher from its dependencies.
func NewWatcher(tickets upstream.TicketAPI, redisClient *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger, cfg config.WatcherConfig) *Watcher {
	return &Watcher{
		tickets:  tickets,
		redis:    redisClient,
		events:   dispatcher,
		logger:   logger,
		cfg:      cfg,
		interval: cfg.PollInterval(),
	}
}

// Run polls until the context is cancelled. It returns immediately when the
// watcher is disabled or has no service token to authenticate with.
func (w *Watcher) Run(ctx context.Context) {
	if !w.cfg.Enabled {
		w.logger.Info("queue watcher disabled")
		return
	}
	if w.cfg.ServiceToken == "" {
		w.logger.Warn("queue watcher idle, no service token configured")
		return
	}

	w.logger.Info("queue watcher started", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("queue watcher stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *Watcher) scan(ctx context.Context) {
	pollCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()
	pollCtx = session.WithUpstreamToken(pollCtx, w.cfg.ServiceToken)

	tickets, err := w.tickets.ListTickets(pollCtx, upstream.TicketQuery{})
	if err != nil {
		w.logger.Warn("queue watcher poll failed", zap.Error(err))
		return
	}

	now := time.Now()
	for i := range tickets {
		ticket := &tickets[i]
		if !ticket.Overdue(now) {
			continue
		}
		fresh, err := w.markNotified(pollCtx, ticket.ID)
		if err != nil {
			w.logger.Warn("overdue snapshot update failed",
				zap.String("ticketId", ticket.ID), zap.Error(err))
			continue
		}
		if !fresh {
			continue
		}
		w.publishOverdue(pollCtx, ticket)
	}
}

// markNotified records the ticket id in Redis, returning true the first time
// it is seen.
func (w *Watcher) markNotified(ctx context.Context, ticketID string) (bool, error) {
	return w.redis.SetNX(ctx, notifiedKeyPrefix+ticketID, time.Now().Format(time.RFC3339), notifiedTTL).Result()
}

func (w *Watcher) publishOverdue(ctx context.Context, ticket *domain.Ticket) {
	if w.events == nil {
		return
	}
	w.events.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       events.EventTicketOverdue,
		TargetKind: events.TargetTicket,
		TargetID:   ticket.ID,
		Timestamp:  time.Now(),
		Payload: events.TicketOverduePayload{
			Priority: ticket.Priority,
			DueDate:  ticket.DueDate,
		},
	})
}
