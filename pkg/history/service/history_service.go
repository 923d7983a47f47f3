package service

import (
	"campus/entities"
	"campus/pkg/history/repository"
)

const (
	// MaxChatsPerUser is the retention cap: after any successful write a user
	// holds at most this many entries.
	MaxChatsPerUser = 10
	DefaultLimit    = 10
	// MaxLimit is the hard ceiling for history reads; larger limits are
	// rejected before the store is touched.
	MaxLimit = 50
)

type UserHistory struct {
	UserID     string                      `json:"user_id"`
	TotalChats int64                       `json:"total_chats"`
	Chats      []entities.ChatHistoryEntry `json:"chats"`
}

type HistoryService interface {
	Save(userID, sessionID, userMessage, aiResponse string) (*entities.ChatHistoryEntry, error)
	UserHistory(userID string, limit int) (*UserHistory, error)
	SessionHistory(userID, sessionID string) ([]entities.ChatHistoryEntry, error)
	DeleteUser(userID string) (int64, error)
	Stats() (*repository.Stats, error)
	RecentUsers(limit int) ([]repository.UserActivity, error)
}
