// Package auth backs the demo login and signup screens. It accepts any
// non-empty credentials and stores nothing; the issued token is a signed
// JWT that no endpoint verifies. It is not a security boundary.
package auth

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingName        = errors.New("name is required")
	ErrInvalidEmail       = errors.New("email address is not valid")
)

var userSpace = uuid.MustParse("0b6f5d1c-8a3e-4f7b-b2d4-9c1e6a7f3d20")

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Response struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret), ttl: 24 * time.Hour, now: time.Now}
}

func (s *Service) Login(req LoginRequest) (Response, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return Response{}, ErrMissingCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Response{}, ErrInvalidEmail
	}
	name, _, _ := strings.Cut(email, "@")
	return s.issue(User{Name: name, Email: email})
}

func (s *Service) Signup(req SignupRequest) (Response, error) {
	if strings.TrimSpace(req.Name) == "" {
		return Response{}, ErrMissingName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return Response{}, ErrMissingCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Response{}, ErrInvalidEmail
	}
	return s.issue(User{Name: strings.TrimSpace(req.Name), Email: email})
}

func (s *Service) issue(u User) (Response, error) {
	u.ID = uuid.NewSHA1(userSpace, []byte(strings.ToLower(u.Email))).String()
	u.Role = "investor"

	now := s.now()
	claims := &Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    "hydromap",
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Response{}, err
	}
	return Response{Success: true, Token: token, User: &u}, nil
}
