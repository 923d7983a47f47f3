package serviceImp

import (
	"fmt"
	"log"
	"time"

	"campus/entities"
	"campus/pkg/notify"
	"campus/pkg/student/repository"
	"campus/pkg/student/service"
)

// mutable is the allow-list for partial updates.
var mutable = map[string]bool{"name": true, "department": true, "email": true}

type Svc struct {
	r repository.StudentRepository
	n notify.Notifier
}

func New(r repository.StudentRepository, n notify.Notifier) *Svc {
	if n == nil {
		n = notify.LogOnly{}
	}
	return &Svc{r: r, n: n}
}

func (s *Svc) Add(in service.CreateStudent) (*entities.Student, error) {
	if in.StudentID == "" || in.Name == "" {
		return nil, fmt.Errorf("student_id and name are required")
	}
	st := &entities.Student{
		StudentID:  in.StudentID,
		Name:       in.Name,
		Department: in.Department,
		Email:      in.Email,
	}
	if err := s.r.Create(st); err != nil {
		return nil, err
	}
	s.logActivity(st.StudentID, "created")
	s.notify("student_created", st)
	return st, nil
}

func (s *Svc) Get(studentID string) (*entities.Student, error) {
	return s.r.GetByStudentID(studentID)
}

func (s *Svc) UpdateFields(studentID string, fields map[string]string) (*entities.Student, error) {
	upd := map[string]any{}
	for k, v := range fields {
		if !mutable[k] {
			return nil, fmt.Errorf("invalid field %q", k)
		}
		upd[k] = v
	}
	if len(upd) == 0 {
		return s.r.GetByStudentID(studentID)
	}
	upd["updated_at"] = time.Now().UTC()
	st, err := s.r.UpdateFields(studentID, upd)
	if err != nil || st == nil {
		return st, err
	}
	s.logActivity(studentID, "updated")
	s.notify("student_updated", st)
	return st, nil
}

func (s *Svc) Delete(studentID string) (bool, error) {
	ok, err := s.r.Delete(studentID)
	if err != nil || !ok {
		return ok, err
	}
	s.logActivity(studentID, "deleted")
	if err := s.n.Notify("student_deleted", map[string]string{"student_id": studentID}); err != nil {
		log.Printf("[student] notify failed: %v", err)
	}
	return true, nil
}

func (s *Svc) List() ([]entities.Student, error) { return s.r.List() }
func (s *Svc) Total() (int64, error)             { return s.r.Count() }

func (s *Svc) ByDepartment() ([]repository.DepartmentCount, error) {
	return s.r.CountByDepartment()
}

func (s *Svc) Recent(limit int) ([]entities.Student, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.r.Recent(limit)
}

func (s *Svc) ActiveLast7Days() (int64, error) {
	return s.r.ActiveSince(time.Now().UTC().AddDate(0, 0, -7))
}

func (s *Svc) logActivity(studentID, activity string) {
	if err := s.r.LogActivity(studentID, activity); err != nil {
		log.Printf("[student] activity log failed: %v", err)
	}
}

func (s *Svc) notify(event string, st *entities.Student) {
	err := s.n.Notify(event, map[string]string{
		"student_id": st.StudentID,
		"name":       st.Name,
		"department": st.Department,
		"email":      st.Email,
	})
	if err != nil {
		log.Printf("[student] notify failed: %v", err)
	}
}
