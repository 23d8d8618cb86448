// Package directory is the gorm/Postgres implementation of the user
// store the auth service consumes.
package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aaryan1901/Gigyasa-backend/internal/auth"
)

type Postgres struct {
	DB *gorm.DB
}

var _ auth.Directory = (*Postgres)(nil)

func (p *Postgres) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	err := p.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find by email: %v", auth.ErrDirectory, err)
	}
	return &u, nil
}

func (p *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	var u auth.User
	err := p.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find by id: %v", auth.ErrDirectory, err)
	}
	return &u, nil
}

// Insert relies on the unique index on users(email): the precheck in
// the service can race with a concurrent insert, and this is where
// the race resolves.
func (p *Postgres) Insert(ctx context.Context, u *auth.User) error {
	if err := p.DB.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("%w: insert: %v", auth.ErrDirectory, err)
	}
	return nil
}
