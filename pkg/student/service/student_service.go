package service

import (
	"campus/entities"
	"campus/pkg/student/repository"
)

type CreateStudent struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

type StudentService interface {
	Add(in CreateStudent) (*entities.Student, error)
	Get(studentID string) (*entities.Student, error) // nil, nil when absent
	// UpdateFields applies a partial update; only name, department and email
	// are mutable, anything else is a validation error.
	UpdateFields(studentID string, fields map[string]string) (*entities.Student, error)
	Delete(studentID string) (bool, error)
	List() ([]entities.Student, error)
	Total() (int64, error)
	ByDepartment() ([]repository.DepartmentCount, error)
	Recent(limit int) ([]entities.Student, error)
	ActiveLast7Days() (int64, error)
}
