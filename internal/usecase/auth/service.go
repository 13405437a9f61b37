package auth

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidRefreshToken    = errors.New("invalid refresh token")
	ErrRefreshTokenExpired    = errors.New("refresh token expired")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
}

type Usecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error)
	Login(ctx context.Context, in LoginInput) (user.User, Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

var _ Usecase = (*Service)(nil)

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, Tokens{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, Tokens{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	if exists {
		return user.User{}, Tokens{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}

	displayName := strings.TrimSpace(in.DisplayName)
	if displayName == "" {
		displayName = email
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
		Roles:        []string{user.RoleUser},
	}

	// The existence check above can race a concurrent signup; the unique
	// index decides.
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, Tokens{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, Tokens{}, ErrInternal
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	return s.issue(sanitizeUser(created))
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, Tokens, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, Tokens{}, ErrInvalidCredentials
		}
		return user.User{}, Tokens{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, Tokens{}, ErrInvalidCredentials
	}

	return s.issue(sanitizeUser(u))
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := s.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !s.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	// Roles are re-read so that role changes apply on the next refresh.
	u, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Tokens{}, ErrUnauthorized
		}
		return Tokens{}, ErrInternal
	}

	_, tokens, err := s.issue(u)
	return tokens, err
}

func (s *Service) issue(u user.User) (user.User, Tokens, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Email, u.Roles)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	refresh, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return user.User{}, Tokens{}, ErrInternal
	}
	return u, Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
