// Package featureflags evaluates rollout switches configured through FEATURE_FLAGS.
package featureflags

import (
	"hash/fnv"
	"sort"
	"strconv"
	"strings"
)

// Flags known to the API. Unknown names from FEATURE_FLAGS are still parsed and reported.
const (
	// ActivityWebSocket gates the live host activity feed at /api/ws/activity.
	ActivityWebSocket = "activity_ws"
	// ListingEmbeddings gates re-embedding jobs after listing edits.
	ListingEmbeddings = "listing_embeddings"
	// GuestTracking gates the anonymous impression/click endpoint.
	GuestTracking = "guest_tracking"
)

var defaults = map[string]string{
	ActivityWebSocket: "on",
	ListingEmbeddings: "on",
	GuestTracking:     "on",
}

// Manager evaluates flags from a comma separated list such as
// "activity_ws=on,listing_embeddings=25%,guest_tracking=off".
type Manager struct {
	flags map[string]string
}

// NewManager parses raw on top of the built-in defaults. Malformed pairs are skipped.
func NewManager(raw string) *Manager {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key, value = normalize(key), normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled reports whether name is on for subjectID (usually a host or user ID).
//
// on/true/1 and off/false/0 are global. "N%" buckets subjects deterministically;
// subject 0 (anonymous) only passes at 100%.
func (m *Manager) Enabled(name string, subjectID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	if err != nil || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	if subjectID == 0 {
		return false
	}
	return rolloutBucket(name, subjectID) < pct
}

// Raw returns a copy of the configured values.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// FlagState is one row of the admin flag listing.
type FlagState struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

// Snapshot evaluates every flag for subjectID, sorted by name.
func (m *Manager) Snapshot(subjectID uint) []FlagState {
	out := make([]FlagState, 0, len(m.flags))
	for name, value := range m.flags {
		out = append(out, FlagState{Name: name, Value: value, Enabled: m.Enabled(name, subjectID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name string, subjectID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + strconv.FormatUint(uint64(subjectID), 10)))
	return int(h.Sum32() % 100)
}
