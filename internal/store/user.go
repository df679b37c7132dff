package store

import (
	"context"
	"errors"

	"travlog/internal/domain"

	"gorm.io/gorm"
)

// UserStore persists registered users. Users are created at registration and
// read at login; the backend never updates or deletes them.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore wraps a gorm handle.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create registers a new user. The email carries a unique constraint, so a
// duplicate registration surfaces as a ValidationError rather than a second
// row.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	var existing domain.User
	err := s.db.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return domain.Validationf("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.StoreError{Op: "lookup user", Err: err}
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return &domain.StoreError{Op: "create user", Err: err}
	}
	return nil
}

// FindByEmail looks a user up by the email lookup key.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Resource: "user", Key: email}
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "find user", Err: err}
	}
	return &user, nil
}
