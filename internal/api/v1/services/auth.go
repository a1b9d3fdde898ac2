package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apierrors "docpod/internal/api/errors"
	"docpod/internal/api/v1/dto"
	apperrors "docpod/internal/app/errors"
	"docpod/internal/app/model"
	"docpod/internal/app/repository"
)

// HashToken returns the stored form of a bearer token
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// NewToken returns a random bearer token
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// authService implements AuthService
type authService struct {
	users      repository.UserDAO
	sessionTTL time.Duration
	bcryptCost int
	now        func() time.Time
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserDAO, sessionTTL time.Duration, bcryptCost int, logger *zap.Logger) AuthService {
	return &authService{
		users:      users,
		sessionTTL: sessionTTL,
		bcryptCost: bcryptCost,
		now:        time.Now,
		logger:     logger,
	}
}

// Signup creates a user with a bcrypt password hash
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, apierrors.NewInternalError("Could not create the account")
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if stderrors.Is(err, apperrors.ErrAlreadyExists) {
			return nil, apierrors.NewConflictError("Username or email is already registered")
		}
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, apierrors.NewInternalError("Could not create the account")
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID))
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Login checks the credentials and issues a session token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return nil, apierrors.NewUnauthorizedError(apperrors.ErrInvalidLogin.Error())
		}
		s.logger.Error("failed to load user", zap.Error(err))
		return nil, apierrors.NewInternalError("Could not sign in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierrors.NewUnauthorizedError(apperrors.ErrInvalidLogin.Error())
	}

	token := NewToken()
	session := &model.Session{
		TokenHash: HashToken(token),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.sessionTTL).UTC(),
	}
	if err := s.users.CreateSession(ctx, session); err != nil {
		s.logger.Error("failed to create session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, apierrors.NewInternalError("Could not sign in")
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt,
		User:      dto.ToUserResponse(user),
	}, nil
}

// Logout revokes the session of token
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.users.DeleteSession(ctx, HashToken(token)); err != nil {
		s.logger.Error("failed to delete session", zap.Error(err))
		return apierrors.NewInternalError("Could not sign out")
	}
	return nil
}

// Authenticate resolves a live session token to its user id
func (s *authService) Authenticate(ctx context.Context, token string) (int64, error) {
	hash := HashToken(token)
	session, err := s.users.GetSession(ctx, hash)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrNotFound) {
			return 0, apierrors.NewUnauthorizedError("invalid session token")
		}
		s.logger.Error("failed to load session", zap.Error(err))
		return 0, apierrors.NewInternalError("Could not verify the session")
	}

	if session.Expired(s.now()) {
		if err := s.users.DeleteSession(ctx, hash); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return 0, apierrors.NewUnauthorizedError(apperrors.ErrSessionExpired.Error())
	}
	return session.UserID, nil
}
