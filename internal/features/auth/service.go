package auth

import (
	"errors"
	"regexp"
	"time"

	"gorm.io/gorm"

	"github.com/commune-hq/community-server-go/internal/features/user"
	"github.com/commune-hq/community-server-go/internal/utils/jwt"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	FirstName  string
	LastName   string
	MiddleName *string
	Occupation *string
	Photo      *string
	Email      string
	Password   string
}

// LoginInput carries the login payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResponse is returned by register, login and refresh.
type AuthResponse struct {
	User         *user.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// TokenConfig bundles the signing secrets and lifetimes.
type TokenConfig struct {
	JWTSecret          string
	JWTRefreshSecret   string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Register creates a new user account and issues a token pair.
func Register(db *gorm.DB, input RegisterInput, cfg TokenConfig) (*AuthResponse, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	if !emailRegex.MatchString(input.Email) {
		return nil, ErrInvalidEmail
	}

	if len(input.Password) < 8 {
		return nil, ErrWeakPassword
	}

	newUser, err := user.Create(db, user.CreateInput{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		MiddleName: input.MiddleName,
		Occupation: input.Occupation,
		Photo:      input.Photo,
		Email:      input.Email,
		Password:   input.Password,
	})
	if err != nil {
		return nil, err
	}

	return tokensFor(newUser, cfg)
}

// Login authenticates a user by email and password.
func Login(db *gorm.DB, input LoginInput, cfg TokenConfig) (*AuthResponse, error) {
	usr, err := user.GetByEmail(db, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !usr.CheckPassword(input.Password) {
		return nil, ErrInvalidCredentials
	}

	return tokensFor(usr, cfg)
}

// Refresh validates a refresh token and issues a fresh pair.
func Refresh(db *gorm.DB, refreshToken string, cfg TokenConfig) (*AuthResponse, error) {
	claims, err := jwt.Verify(refreshToken, cfg.JWTRefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	usr, err := user.Get(db, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	return tokensFor(usr, cfg)
}

func tokensFor(usr *user.User, cfg TokenConfig) (*AuthResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(usr.ID, cfg.JWTSecret, cfg.AccessTokenExpiry)
	if err != nil {
		return nil, err
	}

	refreshToken, err := jwt.GenerateRefreshToken(usr.ID, cfg.JWTRefreshSecret, cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         usr,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
