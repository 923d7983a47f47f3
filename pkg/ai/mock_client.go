// pkg/ai/mock_client.go

package ai

import (
	"context"
	"strings"
	"sync"
)

// Mock is an offline Client used when no API key is configured and as the
// scripted decision-maker in tests. Scripted completions are consumed in
// order; once exhausted it answers with a canned text.
type Mock struct {
	mu     sync.Mutex
	script []*Completion

	// Calls records every conversation passed in, in order.
	Calls [][]Message
}

func NewMock(script ...*Completion) *Mock { return &Mock{script: script} }

func (m *Mock) next(msgs []Message) *Completion {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, msgs)
	if len(m.script) > 0 {
		c := m.script[0]
		m.script = m.script[1:]
		return c
	}
	last := ""
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			last = msgs[i].Content
			break
		}
	}
	return &Completion{Content: "Here is what I know about \"" + strings.TrimSpace(last) + "\" (mock)."}
}

func (m *Mock) Complete(_ context.Context, msgs []Message, _ []ToolSpec) (*Completion, error) {
	return m.next(msgs), nil
}

// Stream emits the completion content word by word so event-ordering tests see
// multiple token events.
func (m *Mock) Stream(_ context.Context, msgs []Message, _ []ToolSpec, onToken func(string) error) (*Completion, error) {
	c := m.next(msgs)
	if c.Content != "" && onToken != nil {
		words := strings.SplitAfter(c.Content, " ")
		for _, w := range words {
			if err := onToken(w); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}
