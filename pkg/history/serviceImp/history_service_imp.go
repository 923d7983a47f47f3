package serviceImp

import (
	"errors"
	"time"

	"campus/entities"
	"campus/pkg/history/repository"
	"campus/pkg/history/service"
)

// ErrLimitExceeded is a validation failure: the read is rejected before any
// store access.
var ErrLimitExceeded = errors.New("history limit must be between 1 and 50")

type Svc struct{ r repository.HistoryRepository }

func New(r repository.HistoryRepository) *Svc { return &Svc{r: r} }

func (s *Svc) Save(userID, sessionID, userMessage, aiResponse string) (*entities.ChatHistoryEntry, error) {
	now := time.Now().UTC()
	e := &entities.ChatHistoryEntry{
		UserID:      userID,
		SessionID:   sessionID,
		UserMessage: userMessage,
		AIResponse:  aiResponse,
		Timestamp:   now,
		CreatedAt:   now,
	}
	if err := s.r.SaveWithTrim(e, service.MaxChatsPerUser); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Svc) UserHistory(userID string, limit int) (*service.UserHistory, error) {
	if limit == 0 {
		limit = service.DefaultLimit
	}
	if limit < 1 || limit > service.MaxLimit {
		return nil, ErrLimitExceeded
	}
	chats, err := s.r.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.r.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	return &service.UserHistory{UserID: userID, TotalChats: total, Chats: chats}, nil
}

func (s *Svc) SessionHistory(userID, sessionID string) ([]entities.ChatHistoryEntry, error) {
	return s.r.ListBySession(userID, sessionID)
}

func (s *Svc) DeleteUser(userID string) (int64, error) { return s.r.DeleteByUser(userID) }

func (s *Svc) Stats() (*repository.Stats, error) { return s.r.Stats() }

func (s *Svc) RecentUsers(limit int) ([]repository.UserActivity, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.r.RecentUsers(limit)
}
