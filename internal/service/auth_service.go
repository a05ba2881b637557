package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type authUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	TouchLastActive(ctx context.Context, id string, ts time.Time) error
}

// AuthConfig describes how Supabase access tokens are verified.
type AuthConfig struct {
	JWTSecret     string
	Audience      string
	TouchInterval time.Duration
}

// AuthService verifies Supabase sessions and resolves the application user.
type AuthService struct {
	repo   authUserRepository
	logger *zap.Logger
	config AuthConfig
	now    func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TouchInterval <= 0 {
		config.TouchInterval = 5 * time.Minute
	}
	return &AuthService{repo: repo, logger: logger, config: config, now: time.Now}
}

// ValidateToken verifies signature, audience and expiry of a Supabase access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.SupabaseClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, appErrors.ErrUnauthorized
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.config.Audience))
	}

	claims := &models.SupabaseClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "session expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid access token")
	}
	if claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token has no subject")
	}
	return claims, nil
}

// Authenticate resolves the user behind a token, rejecting unknown and banned accounts.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "user not found")
		}
		return nil, appErrors.Internal(err, "failed to load user")
	}
	if user.IsBanned {
		msg := appErrors.ErrAccountBanned.Message
		if user.BannedReason != nil && *user.BannedReason != "" {
			msg = msg + ": " + *user.BannedReason
		}
		return nil, appErrors.Clone(appErrors.ErrAccountBanned, msg)
	}

	s.touch(ctx, user)
	return user, nil
}

func (s *AuthService) touch(ctx context.Context, user *models.User) {
	now := s.now().UTC()
	if user.LastActiveAt != nil && now.Sub(*user.LastActiveAt) < s.config.TouchInterval {
		return
	}
	if err := s.repo.TouchLastActive(ctx, user.ID, now); err != nil {
		s.logger.Warn("update last active failed", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	user.LastActiveAt = &now
}
