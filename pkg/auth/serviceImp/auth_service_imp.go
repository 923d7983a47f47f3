package serviceImp

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"campus/entities"
	"campus/pkg/auth/repository"
	"campus/pkg/auth/service"
)

var (
	ErrInvalidCredentials = fmt.Errorf("incorrect username or password")
	ErrTokenInvalid       = fmt.Errorf("could not validate credentials")
)

type Svc struct {
	r      repository.UserRepository
	secret []byte
	expire time.Duration
}

func New(r repository.UserRepository, secret string, expire time.Duration) *Svc {
	if expire <= 0 {
		expire = 30 * time.Minute
	}
	return &Svc{r: r, secret: []byte(secret), expire: expire}
}

func (s *Svc) Signup(in service.Signup) (*entities.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("email, username and password are required")
	}
	if u, err := s.r.GetByUsername(in.Username); err != nil {
		return nil, err
	} else if u != nil {
		return nil, fmt.Errorf("username already registered")
	}
	if u, err := s.r.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if u != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entities.User{
		Email:        in.Email,
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.r.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Svc) Login(username, password string) (string, *entities.User, error) {
	u, err := s.r.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.IsActive {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.Username,
		"exp": time.Now().Add(s.expire).Unix(),
	})
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, u, nil
}

func (s *Svc) Resolve(token string) (*entities.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrTokenInvalid
	}
	u, err := s.r.GetByUsername(sub)
	if err != nil || u == nil || !u.IsActive {
		return nil, ErrTokenInvalid
	}
	return u, nil
}
