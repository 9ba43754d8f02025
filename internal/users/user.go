package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/faciam-dev/formfields/pkg/formfield"
)

var (
	// ErrNotFound is returned when a user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrUnsupportedDriver is returned for DSNs no registry can serve.
	ErrUnsupportedDriver = errors.New("unsupported driver")
	errNotInitialized    = errors.New("repo not initialized")
)

// User represents a registered account.
type User struct {
	ID           uint64 `json:"id" bson:"id" yaml:"id"`
	Username     string `json:"username" bson:"username" yaml:"username"`
	Email        string `json:"email" bson:"email" yaml:"email"`
	PasswordHash string `json:"-" bson:"password_hash" yaml:"-"`
}

// HashPassword returns a bcrypt hash of password, or "" when password is empty.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", nil
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func validNew(u User) error {
	if u.Username == "" || strings.TrimSpace(u.Email) == "" {
		return errors.New("username and email are required")
	}
	return nil
}

// Store is a registry that can also be administered.
type Store interface {
	formfield.UserLookup
	Create(ctx context.Context, u User) (uint64, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, email string) error
}

var (
	_ Store = (*SQLRepo)(nil)
	_ Store = (*MongoRepo)(nil)
	_ Store = (*Memory)(nil)
)
