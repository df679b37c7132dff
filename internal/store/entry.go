// Package store provides the gorm-backed persistence layer for users and
// journal entries. MySQL in production; tests run the same code against an
// in-memory SQLite database.
package store

import (
	"context"
	"errors"
	"strconv"

	"travlog/internal/domain" // Data model and error taxonomy

	"gorm.io/gorm" // GORM ORM library
)

// EntryStore persists journal entries. Entries are write-once: create, list
// by owner, delete. No update path exists.
type EntryStore struct {
	db *gorm.DB
}

// NewEntryStore wraps a gorm handle.
func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

// Create validates the candidate entry and performs one durable write.
// The ID and CreatedAt fields are populated on return. An invalid entry
// fails with a ValidationError before anything is written.
func (s *EntryStore) Create(ctx context.Context, e *domain.Entry) error {
	if err := domain.ValidateNewEntry(e); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return &domain.StoreError{Op: "create entry", Err: err}
	}
	return nil
}

// ListByOwner returns all entries whose owner email matches exactly, newest
// first. The id is a tiebreak for entries created within the same timestamp
// resolution. An owner with no entries gets an empty slice, not an error.
func (s *EntryStore) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	err := s.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, &domain.StoreError{Op: "list entries", Err: err}
	}
	return entries, nil
}

// GetByID fetches a single entry, NotFoundError when absent. Detail fetches
// racing a delete see NotFoundError; callers treat that as benign.
func (s *EntryStore) GetByID(ctx context.Context, id uint) (*domain.Entry, error) {
	var entry domain.Entry
	err := s.db.WithContext(ctx).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Resource: "entry", Key: strconv.FormatUint(uint64(id), 10)}
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch entry", Err: err}
	}
	return &entry, nil
}

// DeleteByID removes the matching entry and returns the pre-deletion record.
// A missing id fails with NotFoundError; repeating the delete keeps reporting
// NotFoundError, so retries are safe.
func (s *EntryStore) DeleteByID(ctx context.Context, id uint) (*domain.Entry, error) {
	var entry domain.Entry
	err := s.db.WithContext(ctx).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &domain.NotFoundError{Resource: "entry", Key: strconv.FormatUint(uint64(id), 10)}
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "fetch entry", Err: err}
	}
	if err := s.db.WithContext(ctx).Delete(&domain.Entry{}, id).Error; err != nil {
		return nil, &domain.StoreError{Op: "delete entry", Err: err}
	}
	return &entry, nil
}
