package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/list-task-api/internal/models"
	"github.com/yukikurage/list-task-api/internal/repository"
)

var (
	ErrMissingField       = errors.New("required field is missing")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AccountService handles user registration and credential checks.
// Passwords are stored and compared as given.
type AccountService struct {
	users repository.Collection[models.User]
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *repository.Store) *AccountService {
	return &AccountService{
		users: store.Users,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// Register creates a user unless the username is already taken.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := requireFields(
		field{models.ColumnUsername, input.Username},
		field{models.ColumnPassword, input.Password},
		field{models.ColumnEmail, input.Email},
	); err != nil {
		return nil, err
	}

	_, err := s.users.FindOne(ctx, repository.Filter{models.ColumnUsername: input.Username})
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
	}

	// A concurrent registration can pass the check above; the unique index decides.
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate succeeds when a user with exactly this username and password exists.
func (s *AccountService) Authenticate(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := requireFields(
		field{models.ColumnUsername, input.Username},
		field{models.ColumnPassword, input.Password},
	); err != nil {
		return nil, err
	}

	user, err := s.users.FindOne(ctx, repository.Filter{
		models.ColumnUsername: input.Username,
		models.ColumnPassword: input.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

type field struct {
	name  string
	value string
}

// requireFields rejects blank values before anything is written.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}
