package mongo

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"skill-dashboard/internal/config"

	"go.mongodb.org/mongo-driver/event"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client owns the process-wide document store handle. Connected tracks the
// driver's heartbeats, so a store that drops out after boot reads as
// disconnected until a heartbeat succeeds again.
type Client struct {
	client     *mongodrv.Client
	database   string
	collection string
	logger     *log.Logger

	connected atomic.Bool
}

func Connect(ctx context.Context, cfg config.MongoConfig, logger *log.Logger) (*Client, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, fmt.Errorf("empty mongo uri")
	}

	c := &Client{
		database:   strings.TrimSpace(cfg.Database),
		collection: strings.TrimSpace(cfg.Collection),
		logger:     logger,
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second).
		SetServerMonitor(c.monitor())

	cl, err := mongodrv.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.client = cl

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cl.Ping(pingCtx, nil); err != nil {
		c.logf("[Mongo] unavailable at startup | db=%s err=%v", c.database, err)
		return c, nil
	}
	c.setConnected(true)
	return c, nil
}

func (c *Client) monitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		ServerHeartbeatSucceeded: func(*event.ServerHeartbeatSucceededEvent) {
			c.setConnected(true)
		},
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			if c.connected.Load() {
				c.logf("[Mongo] heartbeat failed | err=%v", e.Failure)
			}
			c.setConnected(false)
		},
	}
}

func (c *Client) setConnected(v bool) {
	if c == nil {
		return
	}
	if old := c.connected.Swap(v); !old && v {
		c.logf("[Mongo] connected | db=%s collection=%s", c.database, c.collection)
	}
}

func (c *Client) Connected() bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.connected.Load()
}

// Collection returns the news collection, or nil when the client never
// came up.
func (c *Client) Collection() *mongodrv.Collection {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Database(c.database).Collection(c.collection)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

func (c *Client) logf(format string, args ...any) {
	if c == nil || c.logger == nil {
		return
	}
	c.logger.Printf(format, args...)
}
