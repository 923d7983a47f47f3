package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"campus/entities"
	"campus/pkg/student/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.StudentRepository { return &repo{db} }

func (r *repo) Create(s *entities.Student) error { return r.db.Create(s).Error }

func (r *repo) GetByStudentID(studentID string) (*entities.Student, error) {
	var s entities.Student
	err := r.db.Where("student_id = ?", studentID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) UpdateFields(studentID string, fields map[string]any) (*entities.Student, error) {
	if len(fields) > 0 {
		res := r.db.Model(&entities.Student{}).Where("student_id = ?", studentID).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.GetByStudentID(studentID)
}

func (r *repo) Delete(studentID string) (bool, error) {
	res := r.db.Where("student_id = ?", studentID).Delete(&entities.Student{})
	return res.RowsAffected > 0, res.Error
}

func (r *repo) List() ([]entities.Student, error) {
	var out []entities.Student
	return out, r.db.Order("created_at DESC, id DESC").Find(&out).Error
}

func (r *repo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.Student{}).Count(&n).Error
}

func (r *repo) CountByDepartment() ([]repository.DepartmentCount, error) {
	var out []repository.DepartmentCount
	err := r.db.Model(&entities.Student{}).
		Select("department, COUNT(*) AS count").
		Group("department").
		Order("count DESC").
		Scan(&out).Error
	return out, err
}

func (r *repo) Recent(limit int) ([]entities.Student, error) {
	var out []entities.Student
	return out, r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&out).Error
}

func (r *repo) LogActivity(studentID, activity string) error {
	return r.db.Create(&entities.ActivityLog{
		StudentID: studentID,
		Activity:  activity,
		Timestamp: time.Now().UTC(),
	}).Error
}

func (r *repo) ActiveSince(t time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&entities.ActivityLog{}).
		Where("timestamp >= ?", t).
		Distinct("student_id").
		Count(&n).Error
	return n, err
}
