package repository

import (
	"time"

	"campus/entities"
)

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

type StudentRepository interface {
	Create(*entities.Student) error
	GetByStudentID(studentID string) (*entities.Student, error) // nil, nil when absent
	UpdateFields(studentID string, fields map[string]any) (*entities.Student, error)
	Delete(studentID string) (bool, error)
	List() ([]entities.Student, error)
	Count() (int64, error)
	CountByDepartment() ([]DepartmentCount, error)
	Recent(limit int) ([]entities.Student, error)
	LogActivity(studentID, activity string) error
	ActiveSince(t time.Time) (int64, error)
}
