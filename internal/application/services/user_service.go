package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/cartline/storefront/go/internal/core/domain/user"
	"github.com/cartline/storefront/go/internal/core/ports"
	"github.com/cartline/storefront/go/internal/utils"
)

type UserService struct {
	repo         ports.UserRepository
	tokenRepo    ports.TokenRepository
	emailService ports.EmailService
	logger       *logrus.Logger
}

func NewUserService(repo ports.UserRepository, tokenRepo ports.TokenRepository, emailService ports.EmailService, logger *logrus.Logger) ports.UserService {
	return &UserService{
		repo:         repo,
		tokenRepo:    tokenRepo,
		emailService: emailService,
		logger:       logger,
	}
}

func (s *UserService) Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error) {
	if err := utils.ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	// Validate email uniqueness
	if existingUser, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existingUser != nil {
		return nil, fmt.Errorf("email '%s' is already taken", req.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         user.RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Send welcome email; log failures but don't fail registration
	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(ctx, newUser); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{
					"user_id": newUser.ID,
					"email":   newUser.Email,
				}).WithError(err).Warn("failed to send welcome email")
			}
		}
	}

	return newUser, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *user.UpdateProfileRequest) (*user.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		current.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		current.LastName = *req.LastName
	}
	current.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return current, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	current.IsActive = false
	current.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, current); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	// Revoke every outstanding session for the deactivated account.
	if s.tokenRepo != nil {
		if err := s.tokenRepo.DeleteUserTokens(ctx, id); err != nil && s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Warn("failed to revoke user refresh tokens")
		}
	}
	return nil
}
