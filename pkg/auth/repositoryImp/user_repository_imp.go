package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"campus/entities"
	"campus/pkg/auth/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &repo{db} }

func (r *repo) Create(u *entities.User) error { return r.db.Create(u).Error }

func (r *repo) GetByUsername(username string) (*entities.User, error) {
	var u entities.User
	err := r.db.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repo) GetByEmail(email string) (*entities.User, error) {
	var u entities.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
