package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	adminRepo "github.com/barberx/BarberX-BookingService/internal/infra/storage/admin"
	"github.com/barberx/BarberX-BookingService/internal/service/auth/models"
)

// Claims состав JWT токена администратора
type Claims struct {
	AdminID  string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service сервис аутентификации администраторов
type Service struct {
	adminRepo    AdminRepository
	secret       []byte
	tokenTTL     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(adminRepo AdminRepository, jwtSecret string, tokenTTL time.Duration, logger Logger) *Service {
	return &Service{
		adminRepo:    adminRepo,
		secret:       []byte(jwtSecret),
		tokenTTL:     tokenTTL,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Login проверяет учетные данные и выдаёт подписанный HS256 токен
// На несуществующий логин и на неверный пароль отвечает одинаково,
// не раскрывая, какая из проверок не прошла
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	s.logger.Info("Login: attempt for username=%s", username)

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: username=%s not found", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	claims := Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - failed to sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: successful for username=%s", username)
	return &models.LoginResponse{
		Token: token,
		Admin: models.AdminInfo{ID: admin.ID, Username: admin.Username},
	}, nil
}

// VerifyToken разбирает и проверяет токен, возвращая claims
// Допускается только алгоритм HS256
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
