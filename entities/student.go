package entities

import "time"

type Student struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	StudentID  string `gorm:"uniqueIndex" json:"student_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityLog records student-facing events (created/updated/deleted) used by the
// active-in-last-7-days analytics query.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	StudentID string    `gorm:"index" json:"student_id"`
	Activity  string    `json:"activity"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
}
