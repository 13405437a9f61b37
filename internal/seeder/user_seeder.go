package seeder

import (
	"context"
	"strings"

	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const userMessagePrefix = "Database Seeding: User\t"

// AdminSeeder ensures a local admin account exists so seeded jobs have an
// owner. It never touches an account that already uses the email.
type AdminSeeder struct {
	Users       user.Repository
	Email       string
	Password    string
	DisplayName string
}

func (AdminSeeder) Name() string { return "users" }

func (s AdminSeeder) Run(ctx context.Context) ([]Result, error) {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || s.Password == "" {
		return nil, nil
	}

	exists, err := s.Users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return []Result{{
			Title:   email,
			Outcome: OutcomeSkipped,
			Message: userMessagePrefix + email + " skipped",
		}}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(s.DisplayName)
	if name == "" {
		name = "Administrator"
	}

	err = s.Users.CreateUser(ctx, user.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: string(hash),
		Roles:        []string{user.RoleUser, user.RoleAdmin},
	})
	if err != nil {
		return nil, err
	}

	return []Result{{
		Title:   email,
		Outcome: OutcomeAdded,
		Message: userMessagePrefix + email + " added",
	}}, nil
}
