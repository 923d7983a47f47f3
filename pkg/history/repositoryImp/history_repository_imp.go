package repositoryImp

import (
	"math"
	"time"

	"gorm.io/gorm"

	"campus/entities"
	"campus/pkg/history/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HistoryRepository { return &repo{db} }

func (r *repo) SaveWithTrim(e *entities.ChatHistoryEntry, cap int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&entities.ChatHistoryEntry{}).Where("user_id = ?", e.UserID).Count(&n).Error; err != nil {
			return err
		}
		if cap <= 0 || n <= int64(cap) {
			return nil
		}
		// Collect the oldest surplus ids and delete them. created_at ties are
		// broken by id so rapid writes still evict deterministically.
		var ids []uint
		err := tx.Model(&entities.ChatHistoryEntry{}).
			Where("user_id = ?", e.UserID).
			Order("created_at ASC, id ASC").
			Limit(int(n) - cap).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Where("id IN ?", ids).Delete(&entities.ChatHistoryEntry{}).Error
	})
}

func (r *repo) CountByUser(userID string) (int64, error) {
	var n int64
	return n, r.db.Model(&entities.ChatHistoryEntry{}).Where("user_id = ?", userID).Count(&n).Error
}

func (r *repo) ListByUser(userID string, limit int) ([]entities.ChatHistoryEntry, error) {
	var out []entities.ChatHistoryEntry
	return out, r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
}

func (r *repo) ListBySession(userID, sessionID string) ([]entities.ChatHistoryEntry, error) {
	var out []entities.ChatHistoryEntry
	return out, r.db.Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
}

func (r *repo) DeleteByUser(userID string) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&entities.ChatHistoryEntry{})
	return res.RowsAffected, res.Error
}

func (r *repo) Stats() (*repository.Stats, error) {
	st := &repository.Stats{}
	if err := r.db.Model(&entities.ChatHistoryEntry{}).Count(&st.TotalChats).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.ChatHistoryEntry{}).Distinct("user_id").Count(&st.TotalUsers).Error; err != nil {
		return nil, err
	}
	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	if err := r.db.Model(&entities.ChatHistoryEntry{}).Where("created_at >= ?", weekAgo).Count(&st.RecentChats7Day).Error; err != nil {
		return nil, err
	}
	if st.TotalUsers > 0 {
		st.AvgChatsPerUser = math.Round(float64(st.TotalChats)/float64(st.TotalUsers)*100) / 100
	}
	return st, nil
}

func (r *repo) RecentUsers(limit int) ([]repository.UserActivity, error) {
	var out []repository.UserActivity
	err := r.db.Model(&entities.ChatHistoryEntry{}).
		Select("user_id, MAX(created_at) AS last_chat, COUNT(*) AS total_chats").
		Group("user_id").
		Order("last_chat DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
