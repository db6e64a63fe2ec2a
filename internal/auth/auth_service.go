package auth

import (
	"context"
	"time"

	autherrors "go-geoattend/internal/auth/errors"
	"go-geoattend/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

const AccessTokenTTL = 12 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, password string) (accessToken string, resp AuthResponse, err error)
}

type service struct {
	passwordHash []byte
	secret       []byte
	now          func() time.Time
	logger       *zap.Logger
}

// NewService checks logins against a bcrypt hash and signs HS256 tokens
// with jwtSecret.
func NewService(passwordHash, jwtSecret string, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		passwordHash: []byte(passwordHash),
		secret:       []byte(jwtSecret),
		now:          time.Now,
		logger:       l,
	}
}

// HashPassword is used at start-up when only a plain password is configured.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Login(ctx context.Context, password string) (string, AuthResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		s.logger.Warn("admin login rejected", zap.String("request_id", rid))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	expiresAt := s.now().Add(AccessTokenTTL)
	token, err := s.generateToken(AdminSubject, RoleHR, expiresAt)
	if err != nil {
		s.logger.Error("admin token generation failed", zap.String("request_id", rid), zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("admin login success", zap.String("request_id", rid))
	return token, AuthResponse{
		Subject:   AdminSubject,
		Role:      RoleHR,
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

func (s *service) generateToken(subject, role string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  s.now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
