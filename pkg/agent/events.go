package agent

// EventType names one unit of streamed assistant output.
type EventType string

const (
	EventStart     EventType = "start"
	EventToken     EventType = "token"
	EventToolStart EventType = "tool_start"
	EventToolEnd   EventType = "tool_end"
	EventSaved     EventType = "saved"
	EventSaveError EventType = "save_error"
	EventFinal     EventType = "final_response"
	EventComplete  EventType = "complete"
	EventError     EventType = "error"
)

// Event is one entry of the ordered stream: start first, complete last on the
// success path, tool_end always after its tool_start.
type Event struct {
	Type      EventType `json:"type"`
	Content   string    `json:"content,omitempty"`
	Tool      string    `json:"tool,omitempty"`
	Message   string    `json:"message,omitempty"`
	ID        uint      `json:"id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Emitter forwards one event to the transport. Returning an error abandons
// the generation at the next suspension point.
type Emitter func(Event) error
