// Package notifications fans host activity out over Redis pub/sub to websocket clients.
package notifications

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const activityChannelPrefix = "activity:host:"

// Notifier publishes host activity payloads into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// ActivityChannel derives the Redis channel name for a host's activity feed.
func ActivityChannel(hostID uint) string {
	return activityChannelPrefix + strconv.FormatUint(uint64(hostID), 10)
}

// ParseActivityChannel returns the host ID encoded in channel.
func ParseActivityChannel(channel string) (uint, bool) {
	raw, ok := strings.CutPrefix(channel, activityChannelPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// PublishHostActivity sends payload to the host's channel. A nil client is a no-op.
func (n *Notifier) PublishHostActivity(ctx context.Context, hostID uint, payload []byte) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, ActivityChannel(hostID), payload).Err()
}

// StartActivitySubscriber subscribes to every host activity channel and calls
// onMessage until ctx is cancelled. Panics in onMessage are logged and swallowed.
func (n *Notifier) StartActivitySubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, activityChannelPrefix+"*")
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in activity subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
