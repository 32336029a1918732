package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ordertrack/internal/core/domain/events"
	"ordertrack/internal/pkg/bus"

	"github.com/labstack/echo/v4"
)

// StreamGateway streams order lifecycle events to clients over Server-Sent
// Events. Each connection gets its own bus subscription covering both order
// topics; the subscription is detached on every exit path, so a gone client
// never leaks a subscriber.
type StreamGateway struct {
	bus       *bus.Bus
	heartbeat time.Duration
	logger    *slog.Logger
}

// subscriptionBuffer bounds undelivered events per connection. A client that
// falls this far behind misses events and must rely on the regular read API.
const subscriptionBuffer = 16

// defaultHeartbeat is used when the configured keep-alive interval is not
// positive; a ticker cannot run on a zero or negative interval.
const defaultHeartbeat = 15 * time.Second

// NewStreamGateway creates a gateway publishing events from the given bus.
// heartbeat is the interval between keep-alive comments.
func NewStreamGateway(b *bus.Bus, heartbeat time.Duration, logger *slog.Logger) *StreamGateway {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &StreamGateway{
		bus:       b,
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// Serve runs one SSE session until the client disconnects, a write fails, or
// the bus is closed on shutdown. Returning nil ends the response; SSE has no
// failure status to send once streaming has begun.
func (g *StreamGateway) Serve(c echo.Context) error {
	response := c.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set(echo.HeaderCacheControl, "no-cache")
	response.Header().Set(echo.HeaderConnection, "keep-alive")
	response.WriteHeader(http.StatusOK)

	sub := g.bus.Subscribe(subscriptionBuffer, events.TopicOrderCreated, events.TopicOrderUpdated)
	defer g.bus.Unsubscribe(sub)

	if _, err := fmt.Fprint(response, ": connected\n\n"); err != nil {
		return nil
	}
	response.Flush()

	ticker := time.NewTicker(g.heartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-sub.C:
			if !ok {
				// Bus closed, the process is shutting down.
				return nil
			}
			if err := writeEvent(response, event); err != nil {
				g.logger.DebugContext(ctx, "Stream write failed, dropping client",
					"topic", event.Topic, "error", err)
				return nil
			}
			response.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(response, ": keep-alive\n\n"); err != nil {
				return nil
			}
			response.Flush()
		}
	}
}

func writeEvent(w io.Writer, event bus.Event) error {
	data, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Topic, data)
	return err
}
