package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/logger"
	"newsletter-backend/pkg/utils"
)

const tokenTTL = 24 * time.Hour

type AuthServiceImpl struct {
	userRepo  repositories.UserRepository
	jwtSecret string
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) services.AuthService {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleEditor,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Auth("register", "User registered", map[string]interface{}{
		"user_id":  user.ID.String(),
		"username": user.Username,
	})

	return s.issueToken(user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.AuthError("login_failed", "Password mismatch", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, fmt.Errorf("invalid credentials")
	}

	logger.Auth("login", "User logged in", map[string]interface{}{
		"user_id": user.ID.String(),
	})

	return s.issueToken(user)
}

func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) issueToken(user *models.User) (*services.AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, string(user.Role), s.jwtSecret, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &services.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}
