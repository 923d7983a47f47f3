package entities

import "time"

// ChatHistoryEntry is one completed exchange. Rows are append-only; the history
// service evicts the oldest rows beyond the per-user cap on every write.
type ChatHistoryEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"index" json:"user_id"`
	SessionID   string    `gorm:"index" json:"session_id"`
	UserMessage string    `json:"user_message"`
	AIResponse  string    `json:"ai_response"`
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
