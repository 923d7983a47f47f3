package agent

import (
	"sync"
	"time"

	"campus/pkg/ai"
)

const (
	// threadTTL bounds reasoning-loop memory: threads idle past the TTL are
	// evicted on the next access.
	threadTTL = time.Hour
	// maxThreadMessages keeps one thread's trace bounded; the oldest messages
	// after the system prompt are dropped first.
	maxThreadMessages = 64
)

// Threads holds per-thread reasoning memory for the process lifetime.
// Restarting the process resets it. Concurrent requests against the same
// thread id are not serialized here; callers that care about ordering must
// not issue them.
type Threads struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]*threadState
}

type threadState struct {
	msgs     []ai.Message
	lastUsed time.Time
}

func NewThreads() *Threads { return &Threads{ttl: threadTTL, m: map[string]*threadState{}} }

// History returns a copy of the stored trace for a thread id.
func (t *Threads) History(id string) []ai.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweep()
	ts := t.m[id]
	if ts == nil {
		return nil
	}
	ts.lastUsed = time.Now()
	out := make([]ai.Message, len(ts.msgs))
	copy(out, ts.msgs)
	return out
}

// Store replaces the trace for a thread id, trimming to the message cap.
func (t *Threads) Store(id string, msgs []ai.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sweep()
	if len(msgs) > maxThreadMessages {
		// keep the leading system message, drop the oldest turns after it
		head := 0
		if msgs[0].Role == ai.RoleSystem {
			head = 1
		}
		over := len(msgs) - maxThreadMessages
		trimmed := make([]ai.Message, 0, maxThreadMessages)
		trimmed = append(trimmed, msgs[:head]...)
		trimmed = append(trimmed, msgs[head+over:]...)
		msgs = trimmed
	}
	t.m[id] = &threadState{msgs: msgs, lastUsed: time.Now()}
}

// Reset drops one thread's memory.
func (t *Threads) Reset(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.m, id)
}

func (t *Threads) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}

// sweep evicts idle threads. Called with the lock held.
func (t *Threads) sweep() {
	cutoff := time.Now().Add(-t.ttl)
	for id, ts := range t.m {
		if ts.lastUsed.Before(cutoff) {
			delete(t.m, id)
		}
	}
}
