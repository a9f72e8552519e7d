// Package embedding decides when a listing needs a new text embedding and
// hands the work to the embedding worker through a Redis list.
package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MaxTextLen caps the text sent to the embedding model.
const MaxTextLen = 8000

// QueueKey is the Redis list consumed by the embedding worker.
const QueueKey = "embeddings:queue"

// ErrNoRedis is returned by Enqueue when the queue has no client.
var ErrNoRedis = errors.New("embedding queue: redis unavailable")

// BuildText renders the listing fields that affect search relevance as labeled lines.
func BuildText(l models.Listing) string {
	lines := []struct{ label, value string }{
		{"Title", l.Title},
		{"Subtitle", l.Subtitle},
		{"Type", string(l.Type)},
		{"City", l.City},
		{"Locality", l.Locality},
		{"County", l.County},
		{"Region", l.Region},
		{"Capacity", capacity(l.Capacity)},
		{"Facilities", strings.Join(l.Facilities, ", ")},
		{"Description", l.Description},
	}

	var b strings.Builder
	for _, ln := range lines {
		v := collapse(ln.value)
		if v == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ln.label)
		b.WriteString(": ")
		b.WriteString(v)
	}
	return truncate(b.String(), MaxTextLen)
}

func capacity(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Fingerprint is the hex xxhash64 of text.
func Fingerprint(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// NeedsReembed reports whether the listing's current content differs from the
// last embedded version, returning the text and its fingerprint.
func NeedsReembed(l models.Listing) (text, fingerprint string, changed bool) {
	text = BuildText(l)
	fingerprint = Fingerprint(text)
	return text, fingerprint, fingerprint != l.EmbeddingHash
}

// Job is one unit of work for the embedding worker.
type Job struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uint      `json:"listing_id"`
	Fingerprint string    `json:"fingerprint"`
	Text        string    `json:"text"`
	QueuedAt    time.Time `json:"queued_at"`
}

// Enqueuer accepts re-embedding jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, listingID uint, text, fingerprint string) error
}

// Queue pushes jobs onto a Redis list.
type Queue struct {
	rdb *redis.Client
	key string
}

// NewQueue returns a Queue on QueueKey. A nil client makes every Enqueue fail with ErrNoRedis.
func NewQueue(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb, key: QueueKey}
}

// Enqueue LPUSHes a JSON job.
func (q *Queue) Enqueue(ctx context.Context, listingID uint, text, fingerprint string) error {
	if q == nil || q.rdb == nil {
		return ErrNoRedis
	}
	payload, err := json.Marshal(Job{
		ID:          uuid.New(),
		ListingID:   listingID,
		Fingerprint: fingerprint,
		Text:        text,
		QueuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("enqueue embedding job for listing %d: %w", listingID, err)
	}
	return nil
}
