package service

import (
	"errors"
	"time"

	"antiquefinder/internal/config"
	"antiquefinder/internal/middleware/auth"
	"antiquefinder/internal/models"
	"antiquefinder/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

type AuthService interface {
	Login(username, password string) (accessToken, refreshToken string, admin *models.Admin, err error)
	RefreshAccessToken(refreshToken string) (newAccessToken string, err error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	AccessTokenTTL() time.Duration
}

type authService struct {
	adminRepo       repository.AdminRepository
	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, cfg *config.Config) AuthService {
	return &authService{
		adminRepo:       adminRepo,
		jwtSecret:       cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,  // 15 minutes
		refreshTokenTTL: cfg.RefreshTokenTTL, // 7 days
	}
}

// Login: authenticates an admin and returns access and refresh tokens upon successful login.
func (s *authService) Login(username, password string) (string, string, *models.Admin, error) {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		// Admin not found: dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(admin.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(admin, "access", s.accessTokenTTL)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateToken(admin, "refresh", s.refreshTokenTTL)
	if err != nil {
		return "", "", nil, err
	}

	if err := s.adminRepo.TouchLastLogin(admin.ID); err != nil {
		// login still succeeds; last_login is informational
		return accessToken, refreshToken, admin, nil
	}

	return accessToken, refreshToken, admin, nil
}

func (s *authService) generateToken(admin *models.Admin, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"exp":      time.Now().Add(ttl).Unix(),
		"iat":      time.Now().Unix(),
		"type":     tokenType,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) RefreshAccessToken(refreshTokenString string) (string, error) {
	token, err := s.ValidateToken(refreshTokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != "refresh" {
		return "", ErrInvalidToken
	}

	adminID, _ := claims["admin_id"].(string)
	admin, err := s.adminRepo.FindByID(adminID)
	if err != nil {
		return "", ErrInvalidToken
	}

	return s.generateToken(admin, "access", s.accessTokenTTL)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return token, nil
}

func (s *authService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}
