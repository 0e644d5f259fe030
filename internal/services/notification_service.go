package services

import (
	"context"
	"time"

	"gigdispatch/internal/models"
	"gigdispatch/pkg/cache"
	"gigdispatch/pkg/logger"
	"gigdispatch/pkg/websocket"
)

// NotificationService receives the logical job lifecycle events. The
// engine emits and forgets; delivery is best-effort.
type NotificationService interface {
	PublishJobEvent(ctx context.Context, event models.JobEvent)
}

const jobEventsChannel = "job_events"

// hubNotifier pushes events to connected websocket clients and mirrors
// them onto a redis channel for other consumers.
type hubNotifier struct {
	hub    *websocket.Hub
	cache  *cache.Client
	logger *logger.Logger
}

func NewHubNotifier(hub *websocket.Hub, cacheClient *cache.Client, log *logger.Logger) NotificationService {
	return &hubNotifier{
		hub:    hub,
		cache:  cacheClient,
		logger: log,
	}
}

func (n *hubNotifier) PublishJobEvent(ctx context.Context, event models.JobEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if n.hub != nil {
		switch event.Type {
		case models.EventJobCreated:
			// New-job feed goes to every online driver client.
			n.hub.BroadcastToDrivers(string(event.Type), event)
		default:
			if event.DriverID != nil {
				n.hub.SendToUser(*event.DriverID, string(event.Type), event)
			}
		}
	}

	if n.cache != nil {
		if err := n.cache.Publish(ctx, jobEventsChannel, event); err != nil {
			n.logger.WithError(err).WithField("event", string(event.Type)).Warn("failed to publish job event")
		}
	}
}

// noopNotifier drops all events. Used by tests.
type noopNotifier struct{}

func NewNoopNotifier() NotificationService {
	return noopNotifier{}
}

func (noopNotifier) PublishJobEvent(ctx context.Context, event models.JobEvent) {}
