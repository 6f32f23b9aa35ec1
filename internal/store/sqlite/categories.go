package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/pkg/models"
)

// ListCategories returns all categories sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var recs []categoryRecord
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toModel())
	}
	return out, nil
}

// GetCategory returns the category or store.ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var rec categoryRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c := rec.toModel()
	return &c, nil
}

// CreateCategory stores a new category, applying the default icon and color
// when unspecified. Name uniqueness is not enforced.
func (s *Store) CreateCategory(ctx context.Context, in models.InsertCategory) (*models.Category, error) {
	rec := categoryRecord{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: nullString(in.Description),
		Icon:        models.DefaultCategoryIcon,
		Color:       models.DefaultCategoryColor,
		ParentID:    nullString(in.ParentID),
		CreatedAt:   time.Now(),
	}
	if in.Icon != nil {
		rec.Icon = *in.Icon
	}
	if in.Color != nil {
		rec.Color = *in.Color
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	c := rec.toModel()
	return &c, nil
}

// UpdateCategory merges the provided fields over the existing record.
func (s *Store) UpdateCategory(ctx context.Context, id string, in models.UpdateCategory) (*models.Category, error) {
	var rec categoryRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		if in.Name != nil {
			rec.Name = *in.Name
		}
		if in.Description != nil {
			rec.Description = nullString(in.Description)
		}
		if in.Icon != nil {
			rec.Icon = *in.Icon
		}
		if in.Color != nil {
			rec.Color = *in.Color
		}
		if in.ParentID != nil {
			rec.ParentID = nullString(in.ParentID)
		}
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	c := rec.toModel()
	return &c, nil
}

// DeleteCategory removes the category record only. Prompts referencing it keep
// their dangling reference; readers treat missing lookups as uncategorized.
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&categoryRecord{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
