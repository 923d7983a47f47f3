package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"campus/pkg/ai"
	"campus/pkg/tools"
)

// SystemPrompt steers the reasoning loop's capability selection.
const SystemPrompt = `You are a friendly AI Campus Admin Assistant with access to multiple capabilities:

STUDENT DATABASE OPERATIONS:
- Use student management tools for CRUD operations, analytics, and student data queries
- Always use tools to get real data when asked about students, analytics, or campus info

UAF UNIVERSITY KNOWLEDGE:
- For questions about UAF University, academics, admissions, faculty, or general university info
- Use the search_campus_knowledge_and_web tool for UAF-related queries

WEB SEARCH:
- For general questions not related to student database or UAF university
- Use web search capabilities for current information

RESPONSE STYLE:
- Use conversational, friendly language
- Present data in easy-to-read formats
- Keep responses concise but informative

Choose the appropriate tool based on the user's query type.`

// maxToolRounds bounds the reasoning loop; the decision-maker itself is
// external and swappable, this is the dispatcher's own safety stop.
const maxToolRounds = 8

const exhaustedText = "I'm sorry, I couldn't finish working through that request. Could you rephrase or narrow it down?"

// Dispatcher runs the tool-selection loop over the fixed capability set,
// keyed by thread id for conversational continuity.
type Dispatcher struct {
	llm     ai.Client
	reg     *tools.Registry
	threads *Threads
}

func NewDispatcher(llm ai.Client, reg *tools.Registry) *Dispatcher {
	return &Dispatcher{llm: llm, reg: reg, threads: NewThreads()}
}

// Threads exposes the thread store (tests and admin endpoints).
func (d *Dispatcher) Threads() *Threads { return d.threads }

// Run executes one exchange to completion and returns the final text.
func (d *Dispatcher) Run(ctx context.Context, threadID string, msgs []ai.Message) (string, error) {
	return d.run(ctx, threadID, msgs, nil)
}

// Stream is Run with incremental output: token and tool events are forwarded
// through emit in generation order.
func (d *Dispatcher) Stream(ctx context.Context, threadID string, msgs []ai.Message, emit Emitter) (string, error) {
	return d.run(ctx, threadID, msgs, emit)
}

func (d *Dispatcher) run(ctx context.Context, threadID string, incoming []ai.Message, emit Emitter) (string, error) {
	conv := d.threads.History(threadID)
	if len(conv) == 0 {
		conv = []ai.Message{ai.System(SystemPrompt)}
	}
	conv = append(conv, incoming...)
	specs := d.reg.Specs()

	for round := 0; round < maxToolRounds; round++ {
		comp, err := d.complete(ctx, conv, specs, emit)
		if err != nil {
			return "", err
		}

		if len(comp.ToolCalls) == 0 {
			conv = append(conv, ai.Assistant(comp.Content))
			d.threads.Store(threadID, conv)
			return comp.Content, nil
		}

		// Record the assistant turn, then apply tool results in the exact
		// order they were requested.
		conv = append(conv, ai.Message{Role: ai.RoleAssistant, ToolCalls: comp.ToolCalls})
		for _, call := range comp.ToolCalls {
			if emit != nil {
				if err := emit(Event{Type: EventToolStart, Tool: call.Name, Message: "Using " + call.Name + "..."}); err != nil {
					return "", err
				}
			}
			result := d.execute(ctx, call)
			conv = append(conv, ai.Message{Role: ai.RoleTool, ToolCallID: call.ID, Content: result})
			if emit != nil {
				if err := emit(Event{Type: EventToolEnd, Tool: call.Name, Message: call.Name + " completed"}); err != nil {
					return "", err
				}
			}
		}
	}

	d.threads.Store(threadID, conv)
	return exhaustedText, nil
}

func (d *Dispatcher) complete(ctx context.Context, conv []ai.Message, specs []ai.ToolSpec, emit Emitter) (*ai.Completion, error) {
	if emit == nil {
		return d.llm.Complete(ctx, conv, specs)
	}
	return d.llm.Stream(ctx, conv, specs, func(tok string) error {
		return emit(Event{Type: EventToken, Content: tok})
	})
}

// execute runs one capability invocation atomically from the thread's point
// of view. Any failure, including a panic, becomes a structured error result
// so the loop never aborts on a bad tool.
func (d *Dispatcher) execute(ctx context.Context, call ai.ToolCall) (result string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[agent] tool %s panicked: %v", call.Name, r)
			result = errResult(fmt.Sprintf("tool %s crashed: %v", call.Name, r))
		}
	}()

	t, ok := d.reg.Get(call.Name)
	if !ok {
		return errResult(fmt.Sprintf("unknown tool %q", call.Name))
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return errResult(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	out, err := t.Execute(ctx, args)
	if err != nil {
		return errResult(err.Error())
	}
	b, err := json.Marshal(out)
	if err != nil {
		return errResult(fmt.Sprintf("unencodable result: %v", err))
	}
	return string(b)
}

func errResult(reason string) string {
	b, _ := json.Marshal(map[string]string{"error": reason})
	return string(b)
}
