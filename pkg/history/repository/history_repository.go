package repository

import "campus/entities"

type Stats struct {
	TotalChats      int64   `json:"total_chats"`
	TotalUsers      int64   `json:"total_users"`
	RecentChats7Day int64   `json:"recent_chats_7_days"`
	AvgChatsPerUser float64 `json:"avg_chats_per_user"`
}

type UserActivity struct {
	UserID     string `json:"user_id"`
	LastChat   string `json:"last_chat"`
	TotalChats int64  `json:"total_chats"`
}

type HistoryRepository interface {
	// SaveWithTrim inserts the entry, then deletes the oldest rows beyond cap
	// for the same user, all within one transaction.
	SaveWithTrim(e *entities.ChatHistoryEntry, cap int) error
	CountByUser(userID string) (int64, error)
	// ListByUser returns the newest entries first.
	ListByUser(userID string, limit int) ([]entities.ChatHistoryEntry, error)
	// ListBySession returns entries oldest first (conversational order).
	ListBySession(userID, sessionID string) ([]entities.ChatHistoryEntry, error)
	DeleteByUser(userID string) (int64, error)
	Stats() (*Stats, error)
	RecentUsers(limit int) ([]UserActivity, error)
}
