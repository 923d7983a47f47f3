// pkg/ai/client.go

package ai

import "context"

// Message is one unit of a model conversation.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a model request to invoke a named capability.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // raw JSON object
}

// ToolSpec describes a capability offered to the model.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Completion is one model turn: either final content or tool calls to run.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Client is a generative-model transport. The reasoning loop only ever sees
// this interface, so transports (and test doubles) are swappable.
type Client interface {
	Complete(ctx context.Context, msgs []Message, tools []ToolSpec) (*Completion, error)
	Stream(ctx context.Context, msgs []Message, tools []ToolSpec, onToken func(string) error) (*Completion, error)
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

func System(content string) Message     { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }
