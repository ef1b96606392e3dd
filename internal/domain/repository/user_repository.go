package repository

import (
	"context"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills in ID and CreatedAt. Returns ErrEmailTaken
	// when the email is already registered.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
