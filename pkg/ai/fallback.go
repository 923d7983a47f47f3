// pkg/ai/fallback.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// direct is the secondary transport: a raw protocol call against the same
// provider with the same payload, used when the structured client fails.
type direct struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

func NewDirect(endpoint, key, model string) Client {
	return &direct{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *direct) Complete(ctx context.Context, msgs []Message, tools []ToolSpec) (*Completion, error) {
	payload := map[string]any{
		"model":       c.model,
		"messages":    toWire(msgs),
		"temperature": 0.1,
	}
	if len(tools) > 0 {
		payload["tools"] = toWireTools(tools)
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("api request failed with status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no choices")
	}
	msg := out.Choices[0].Message
	comp := &Completion{Content: strings.TrimSpace(msg.Content)}
	for _, tc := range msg.ToolCalls {
		comp.ToolCalls = append(comp.ToolCalls, ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: tc.Function.Arguments})
	}
	if comp.Content == "" && len(comp.ToolCalls) == 0 {
		return nil, fmt.Errorf("empty completion")
	}
	return comp, nil
}

// Stream on the direct transport falls back to a non-streaming call delivered
// as a single token.
func (c *direct) Stream(ctx context.Context, msgs []Message, tools []ToolSpec, onToken func(string) error) (*Completion, error) {
	comp, err := c.Complete(ctx, msgs, tools)
	if err != nil {
		return nil, err
	}
	if comp.Content != "" && onToken != nil {
		if err := onToken(comp.Content); err != nil {
			return nil, err
		}
	}
	return comp, nil
}

// static is the terminal transport: it always succeeds with a fixed text, so
// a chain ending in it never surfaces a transport failure to the caller.
type static struct{ text string }

func NewStatic(text string) Client { return static{text: text} }

func (s static) Complete(context.Context, []Message, []ToolSpec) (*Completion, error) {
	return &Completion{Content: s.text}, nil
}

func (s static) Stream(_ context.Context, _ []Message, _ []ToolSpec, onToken func(string) error) (*Completion, error) {
	if onToken != nil {
		if err := onToken(s.text); err != nil {
			return nil, err
		}
	}
	return &Completion{Content: s.text}, nil
}

// DefaultApology is the guaranteed answer when every real transport fails.
const DefaultApology = "I'm sorry, I couldn't reach the language model to answer that right now. Please try again in a moment."

// chain tries transports in order and returns the first success. Failures are
// values, not panics; a chain ending in NewStatic cannot fail.
type chain struct{ transports []Client }

func NewChain(transports ...Client) Client { return &chain{transports: transports} }

func (c *chain) Complete(ctx context.Context, msgs []Message, tools []ToolSpec) (*Completion, error) {
	var lastErr error
	for i, t := range c.transports {
		comp, err := t.Complete(ctx, msgs, tools)
		if err == nil {
			return comp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[ai] transport %d failed: %v", i, err)
	}
	return nil, lastErr
}

func (c *chain) Stream(ctx context.Context, msgs []Message, tools []ToolSpec, onToken func(string) error) (*Completion, error) {
	var lastErr error
	for i, t := range c.transports {
		emitted := false
		wrapped := onToken
		if onToken != nil {
			wrapped = func(tok string) error {
				emitted = true
				return onToken(tok)
			}
		}
		comp, err := t.Stream(ctx, msgs, tools, wrapped)
		if err == nil {
			return comp, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if emitted {
			// Tokens already reached the caller; retrying would replay them.
			return nil, lastErr
		}
		log.Printf("[ai] stream transport %d failed: %v", i, err)
	}
	return nil, lastErr
}
