package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GiorgiUbiria/donation_platform/internal/apperr"
	"github.com/GiorgiUbiria/donation_platform/internal/auth"
	"github.com/GiorgiUbiria/donation_platform/internal/models"
	"github.com/GiorgiUbiria/donation_platform/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100,personname"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100,strongpassword"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

type AuthService struct {
	db     *gorm.DB
	tokens *auth.Tokens
	log    *zap.Logger
}

func NewAuthService(db *gorm.DB, tokens *auth.Tokens, log *zap.Logger) *AuthService {
	return &AuthService{db: db, tokens: tokens, log: log.Named("auth")}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = validation.Clean(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", in.Email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("email", "this email is already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", apperr.FromStore(err, "user"))
	}
	s.log.Info("user registered", zap.Uint64("user_id", user.ID))
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, actorID uint64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, actorID).Error; err != nil {
		return nil, lookupError(err, "id", "user")
	}
	return &user, nil
}
