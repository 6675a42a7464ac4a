package registry

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"secure-share-backend/internal/model"
)

// GormStore keeps code entries in the code_entries / file_descriptors tables.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an initialized GORM connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Save replaces the entry for entry.Code in one transaction: the previous
// entry and its descriptors are removed, then the new entry is inserted.
func (s *GormStore) Save(ctx context.Context, entry *model.CodeEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("code = ?", entry.Code).Delete(&model.FileDescriptor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("code = ?", entry.Code).Delete(&model.CodeEntry{}).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (s *GormStore) Get(ctx context.Context, code string) (*model.CodeEntry, error) {
	var entry model.CodeEntry
	err := s.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("code = ?", code).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *GormStore) DeleteAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.FileDescriptor{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.CodeEntry{}).Error
	})
}
