package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"moviehub/internal/auth"
	"moviehub/internal/config"
	"moviehub/internal/models"
	"moviehub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidToken            = errors.New("invalid token")
	ErrEmailInUse              = errors.New("email already in use")
	ErrUsernameInUse           = errors.New("username already in use")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrPermissionDenied        = errors.New("permission denied")
)

// Claims is the validated content of an access token.
type Claims struct {
	UserID   string
	Username string
	Role     string
}

type AuthService interface {
	// SignupByEmail creates an inactive account for the email if none
	// exists and issues a confirmation code for it.
	SignupByEmail(ctx context.Context, email string) (*models.User, string, error)
	// ConfirmEmail exchanges a valid confirmation code for an access
	// token, activating the account.
	ConfirmEmail(ctx context.Context, email, code string) (string, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *models.User, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (newAccessToken string, err error)
	// RevokeToken marks a refresh token as revoked. Unknown tokens are
	// accepted silently so the endpoint does not reveal which tokens exist.
	RevokeToken(ctx context.Context, refreshToken string) error
	ValidateToken(tokenString string) (*Claims, error)
	AccessTokenTTL() time.Duration
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	codes            ConfirmationCodeStore
	mailer           Mailer
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	codes ConfirmationCodeStore,
	mailer Mailer,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		codes:            codes,
		mailer:           mailer,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// NormalizeEmail lower-cases and trims an email address before it is used
// as a login identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignupByEmail(ctx context.Context, email string) (*models.User, string, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", err
		}
		// First contact: inactive account, unusable password until the
		// code is confirmed. The email doubles as the username so a
		// profile exists before the user ever picks one.
		user = &models.User{
			Email:    email,
			Username: email,
			Role:     models.RoleUser,
			IsActive: false,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return nil, "", ErrEmailInUse
			}
			return nil, "", err
		}
	}

	code, err := s.codes.Issue(ctx, user.Email, user.ID)
	if err != nil {
		return nil, "", err
	}

	if err := s.mailer.SendConfirmationCode(ctx, user.Email, code); err != nil {
		return nil, "", fmt.Errorf("send confirmation code: %w", err)
	}

	return user, code, nil
}

func (s *authService) ConfirmEmail(ctx context.Context, email, code string) (string, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// don't reveal whether the account exists
			return "", ErrInvalidConfirmationCode
		}
		return "", err
	}

	ok, err := s.codes.Verify(ctx, user.Email, user.ID, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidConfirmationCode
	}

	user.IsActive = true
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		// dummy compare to mitigate timing attacks
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", "", nil, ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Save(ctx, user); err != nil {
		return "", "", nil, err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return "", "", nil, err
	}

	return accessToken, refreshToken, user, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":      time.Now().Unix(),
		"type":     "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	if refreshToken.Revoked {
		return "", ErrInvalidToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		// best-effort cleanup: the token is rejected either way
		if err := s.refreshTokenRepo.Delete(ctx, refreshToken.ID); err != nil {
			slog.Warn("failed to delete expired refresh token", "token_id", refreshToken.ID, "error", err)
		}
		return "", ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) RevokeToken(ctx context.Context, refreshTokenString string) error {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.refreshTokenRepo.Revoke(ctx, refreshToken.ID)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if tokenType, _ := mapClaims["type"].(string); tokenType != "access" {
		return nil, ErrInvalidToken
	}

	userID, _ := mapClaims["user_id"].(string)
	username, _ := mapClaims["username"].(string)
	role, _ := mapClaims["role"].(string)
	if userID == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}

func (s *authService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}
