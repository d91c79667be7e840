package service

//go:generate mockgen -source=auth.go -destination=mocks/auth_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shenikar/traffic_review/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService определяет контракт проверки учетных данных аннотаторов
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*models.Reviewer, error)
	RegisterReviewer(ctx context.Context, email, password, displayName string) (*models.Reviewer, error)
}

type authService struct {
	store      Store
	logger     *logrus.Logger
	bcryptCost int
	// dummyHash сравнивается с паролем при неизвестном email, чтобы время ответа не выдавало наличие аккаунта
	dummyHash []byte
	compare   func(hash, password []byte) error
}

// NewAuthService создает сервис аутентификации. bcryptCost <= 0 означает bcrypt.DefaultCost.
func NewAuthService(store Store, logger *logrus.Logger, bcryptCost int) AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("invalid-password-placeholder"), bcryptCost)
	if err != nil {
		// Недопустимая стоимость: сравнение с пустым хэшем все равно вернет ошибку
		logger.WithError(err).Warn("Failed to prepare dummy password hash")
	}
	return &authService{
		store:      store,
		logger:     logger,
		bcryptCost: bcryptCost,
		dummyHash:  dummyHash,
		compare:    bcrypt.CompareHashAndPassword,
	}
}

// Authenticate проверяет email и пароль. Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.Reviewer, error) {
	email = normalizeEmail(email)
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Authenticate",
		"email":   email,
	})

	if email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, models.NewValidationError("password", "is required")
	}

	reviewer, err := s.store.FindReviewerByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrReviewerNotFound) {
			_ = s.compare(s.dummyHash, []byte(password))
			log.Warn("Login attempt for unknown reviewer")
			return nil, models.ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to look up reviewer")
		return nil, fmt.Errorf("service: could not look up reviewer: %w", err)
	}

	if err := s.compare([]byte(reviewer.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login attempt with wrong password")
		return nil, models.ErrInvalidCredentials
	}

	log.WithField("reviewer_id", reviewer.ID).Info("Reviewer authenticated")
	return reviewer, nil
}

// RegisterReviewer создает или обновляет аннотатора с указанным email
func (s *authService) RegisterReviewer(ctx context.Context, email, password, displayName string) (*models.Reviewer, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, models.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, models.NewValidationError("password", "is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("service: could not hash password: %w", err)
	}

	reviewer := &models.Reviewer{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if err := s.store.UpsertReviewer(ctx, reviewer); err != nil {
		return nil, fmt.Errorf("service: could not save reviewer: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"service":     "auth",
		"method":      "RegisterReviewer",
		"reviewer_id": reviewer.ID,
	}).Info("Reviewer registered")
	return reviewer, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
