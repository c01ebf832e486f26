package repository

import (
	"context"

	"github.com/trackwise/trackwise-api/internal/domain/entity"
)

// UserRepository is the persistence port for the login identity (DIP).
// Lookups by email are case-insensitive; implementations compare lowercased.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
