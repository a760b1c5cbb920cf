package handlers

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/trentd187/lychee-cup/internal/live"
)

// KeepAliveInterval is how often an idle stream gets a comment line so proxies keep it open.
var KeepAliveInterval = 15 * time.Second

// StreamTournament handles GET /api/tournament/stream.
// It sends the current state as an "event: state" message and then one message per change
// until the client disconnects or the server shuts down.
func StreamTournament(d *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		initial, err := d.Tournaments.Load(c.UserContext())
		if err != nil {
			d.Log.Error("load tournament", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to get tournament data",
			})
		}
		first, err := encodeState(initial)
		if err != nil {
			return err
		}

		client := live.NewClient(d.Tournaments.Key())
		if !d.Hub.Register(client) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "server is shutting down",
			})
		}

		c.Set("Content-Type", "text/event-stream")
		c.Set("Cache-Control", "no-cache")
		c.Set("Connection", "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		d.Metrics.Subscribers.Inc()
		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			defer d.Metrics.Subscribers.Dec()
			defer d.Hub.Unregister(client)

			if writeEvent(w, first) != nil {
				return
			}

			ticker := time.NewTicker(KeepAliveInterval)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					if writeEvent(w, msg) != nil {
						d.Log.Debug("stream client gone", "topic", client.Topic)
						return
					}
				case <-ticker.C:
					if _, err := w.WriteString(": keep-alive\n\n"); err != nil {
						return
					}
					if w.Flush() != nil {
						return
					}
				}
			}
		})
		return nil
	}
}

// writeEvent writes one SSE "state" event and flushes it. A flush error means the client
// has disconnected.
func writeEvent(w *bufio.Writer, data []byte) error {
	if _, err := fmt.Fprintf(w, "event: state\ndata: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}
