package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"example.com/mynotes/internal/errs"
	"example.com/mynotes/internal/stringsx"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserRepo is a dependency that must be stubbed in unit tests.
type UserRepo interface {
	ByEmail(ctx context.Context, email string) (User, bool, error)
	ByID(ctx context.Context, id string) (User, bool, error)
	Create(ctx context.Context, u User) error
}

// UserService contains account logic independent from transport/database.
type UserService struct {
	repo UserRepo
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new account. The email must be unused.
func (s *UserService) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = stringsx.Normalize(email)

	if name == "" {
		return User{}, errs.New(errs.InvalidArgument, "Please provide a name")
	}
	if !isEmailLike(email) {
		return User{}, errs.New(errs.InvalidArgument, "Please provide a valid email")
	}
	if len(password) < 8 {
		return User{}, errs.New(errs.InvalidArgument, "Password must be at least 8 characters")
	}

	_, found, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		return User{}, errs.Wrap(errs.Internal, "", err)
	}
	if found {
		return User{}, errs.New(errs.AlreadyExists, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, errs.Wrap(errs.Internal, "", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, errs.Wrap(errs.Internal, "", err)
	}
	return u, nil
}

// Login checks credentials. A missing account and a wrong password
// produce the same error so the endpoint does not leak which emails exist.
func (s *UserService) Login(ctx context.Context, email, password string) (User, error) {
	email = stringsx.Normalize(email)
	if email == "" || password == "" {
		return User{}, errs.New(errs.InvalidArgument, "Please provide email and password")
	}

	u, found, err := s.repo.ByEmail(ctx, email)
	if err != nil {
		return User{}, errs.Wrap(errs.Internal, "", err)
	}
	if !found {
		return User{}, errs.New(errs.Unauthenticated, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, errs.New(errs.Unauthenticated, "Invalid credentials")
	}
	return u, nil
}

// ByID resolves a stored user id back to the account.
func (s *UserService) ByID(ctx context.Context, id string) (User, error) {
	u, found, err := s.repo.ByID(ctx, id)
	if err != nil {
		return User{}, errs.Wrap(errs.Internal, "", err)
	}
	if !found {
		return User{}, errs.New(errs.NotFound, "User not found")
	}
	return u, nil
}

func isEmailLike(s string) bool {
	if len(s) < 3 {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return true
}
