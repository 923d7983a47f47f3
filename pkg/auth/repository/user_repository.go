package repository

import "campus/entities"

type UserRepository interface {
	Create(u *entities.User) error
	GetByUsername(username string) (*entities.User, error) // nil, nil when absent
	GetByEmail(email string) (*entities.User, error)
}
