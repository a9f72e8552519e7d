// Package activity is the write side of the host activity log.
//
// Business code hands events to a Sink and moves on. The Recorder persists and
// fans them out on its own goroutine, so a slow or failing store can never fail
// or delay the operation that produced the event.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/datatypes"
)

// Result labels for observability.ActivityEvents.
const (
	resultRecorded = "recorded"
	resultDropped  = "dropped"
	resultFailed   = "failed"
)

const (
	DefaultBufferSize = 1024
	writeTimeout      = 5 * time.Second
)

// Event is one host-relevant occurrence.
type Event struct {
	HostID        uint
	Type          models.ActivityType
	Actor         models.ActivityActor
	ListingID     *uint
	PropertyTitle string
	Meta          map[string]any
}

// Sink accepts events without reporting failure.
type Sink interface {
	Record(ctx context.Context, e Event)
}

// Store persists one event.
type Store interface {
	Create(ctx context.Context, e *models.HostActivityEvent) error
}

// Publisher pushes a persisted event to live subscribers.
type Publisher interface {
	PublishHostActivity(ctx context.Context, hostID uint, payload []byte) error
}

// Recorder is a buffered Sink backed by a single worker goroutine.
type Recorder struct {
	store Store
	pub   Publisher
	now   func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan models.HostActivityEvent
	done   chan struct{}
}

// NewRecorder starts the worker. pub may be nil.
func NewRecorder(store Store, pub Publisher, bufferSize int) *Recorder {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	r := &Recorder{
		store: store,
		pub:   pub,
		now:   time.Now,
		queue: make(chan models.HostActivityEvent, bufferSize),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

// Record validates e and queues it. Invalid events, a full buffer and a closed
// recorder all drop the event with a metric and a log line.
func (r *Recorder) Record(ctx context.Context, e Event) {
	if e.HostID == 0 || !e.Type.Valid() {
		observability.ActivityEvents.WithLabelValues(resultDropped).Inc()
		middleware.Logger.WarnContext(ctx, "dropping malformed activity event",
			slog.Uint64("host_id", uint64(e.HostID)), slog.String("type", string(e.Type)))
		return
	}

	row := toRow(e, r.now())

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		observability.ActivityEvents.WithLabelValues(resultDropped).Inc()
		return
	}
	select {
	case r.queue <- row:
	default:
		observability.ActivityEvents.WithLabelValues(resultDropped).Inc()
		middleware.Logger.WarnContext(ctx, "activity buffer full, event dropped",
			slog.Uint64("host_id", uint64(e.HostID)), slog.String("type", string(e.Type)))
	}
}

func toRow(e Event, at time.Time) models.HostActivityEvent {
	actor := e.Actor
	if actor == "" {
		actor = models.ActorSystem
	}
	var meta datatypes.JSONMap
	if len(e.Meta) > 0 {
		meta = datatypes.JSONMap(e.Meta)
	}
	return models.HostActivityEvent{
		HostID:        e.HostID,
		Type:          e.Type,
		Actor:         actor,
		ListingID:     e.ListingID,
		PropertyTitle: models.CleanTitle(e.PropertyTitle),
		Meta:          meta,
		CreatedAt:     at.UTC(),
	}
}

func (r *Recorder) run() {
	defer close(r.done)
	for row := range r.queue {
		r.write(row)
	}
}

func (r *Recorder) write(row models.HostActivityEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			observability.ActivityEvents.WithLabelValues(resultFailed).Inc()
			middleware.Logger.Error("panic while recording activity", slog.Any("panic", rec))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := r.store.Create(ctx, &row); err != nil {
		observability.ActivityEvents.WithLabelValues(resultFailed).Inc()
		observability.SideEffectFailed("activity_append")
		middleware.Logger.Warn("activity append failed",
			slog.Uint64("host_id", uint64(row.HostID)),
			slog.String("type", string(row.Type)),
			slog.String("error", err.Error()))
		return
	}
	observability.ActivityEvents.WithLabelValues(resultRecorded).Inc()

	if r.pub == nil {
		return
	}
	payload, err := json.Marshal(row)
	if err == nil {
		err = r.pub.PublishHostActivity(ctx, row.HostID, payload)
	}
	if err != nil {
		observability.SideEffectFailed("activity_publish")
		middleware.Logger.Warn("activity publish failed",
			slog.Uint64("host_id", uint64(row.HostID)), slog.String("error", err.Error()))
	}
}

// ErrCloseTimeout is returned when Close gives up before the queue is drained.
var ErrCloseTimeout = errors.New("activity recorder: drain interrupted")

// Close stops accepting events and waits for queued ones to be written or for ctx to end.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return errors.Join(ErrCloseTimeout, ctx.Err())
	}
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Record(context.Context, Event) {}
