// Package auth
package auth

import (
	"context"
	"errors"
	"time"

	"pulsehub/internal/domain"
	"pulsehub/pkg"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Publisher is the internal producer hook; the auth service announces
// account activity through it.
type Publisher interface {
	Emit(name string, payload any)
}

type service struct {
	repo        domain.UserRepository
	publisher   Publisher
	jwtSecret   string
	tokenExpiry time.Duration
}

func NewService(repo domain.UserRepository, publisher Publisher, secret string, expiry time.Duration) domain.AuthService {
	return &service{
		repo:        repo,
		publisher:   publisher,
		jwtSecret:   secret,
		tokenExpiry: expiry,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashedPwd),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.publisher.Emit(domain.UserRegisteredEvent, domain.EventUserRegistered{
		UserID: user.ID,
		Email:  user.Email,
	})

	return user, nil
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
	}

	tokenString, err := pkg.GenerateToken(claims, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, err
	}

	s.publisher.Emit(domain.UserLoggedInEvent, domain.EventUserLoggedIn{
		UserID: user.ID,
		Email:  user.Email,
	})

	return &domain.AuthResponse{
		AccessToken: tokenString,
		User:        user,
	}, nil
}
