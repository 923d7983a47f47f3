package tools

import (
	"context"
	"fmt"

	"campus/pkg/ai"
)

// Tool is one selectable capability exposed to the reasoning loop. The loop
// only ever sees this interface; implementations stay behind it.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (any, error)
}

// Registry is the fixed capability set. Registration order is preserved; the
// same order is offered to the model on every turn.
type Registry struct {
	order  []Tool
	byName map[string]Tool
}

func NewRegistry(ts ...Tool) *Registry {
	r := &Registry{byName: make(map[string]Tool, len(ts))}
	for _, t := range ts {
		if _, dup := r.byName[t.Name()]; dup {
			continue
		}
		r.order = append(r.order, t)
		r.byName[t.Name()] = t
	}
	return r
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

func (r *Registry) List() []Tool { return r.order }

func (r *Registry) Specs() []ai.ToolSpec {
	out := make([]ai.ToolSpec, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, ai.ToolSpec{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return out
}

// tool is the common closed-variant implementation used by every capability.
type tool struct {
	name   string
	desc   string
	params map[string]any
	run    func(ctx context.Context, args map[string]any) (any, error)
}

func (t *tool) Name() string               { return t.name }
func (t *tool) Description() string        { return t.desc }
func (t *tool) Parameters() map[string]any { return t.params }
func (t *tool) Execute(ctx context.Context, args map[string]any) (any, error) {
	return t.run(ctx, args)
}

// schema builds the JSON-schema object the chat-completions protocol expects.
func schema(props map[string]any, required ...string) map[string]any {
	if props == nil {
		props = map[string]any{}
	}
	s := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func strProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func argString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

func argInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}
