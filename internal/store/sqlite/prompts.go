package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptstitch/promptstitch/internal/query"
	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/pkg/models"
)

// ListPrompts returns all prompts, most recently updated first.
func (s *Store) ListPrompts(ctx context.Context) ([]models.Prompt, error) {
	var recs []promptRecord
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Prompt, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toModel())
	}
	return out, nil
}

// GetPrompt returns the prompt or store.ErrNotFound. Archived prompts remain
// addressable by id.
func (s *Store) GetPrompt(ctx context.Context, id string) (*models.Prompt, error) {
	var rec promptRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := rec.toModel()
	return &p, nil
}

// CreatePrompt stores a new prompt with server-assigned id and timestamps.
func (s *Store) CreatePrompt(ctx context.Context, in models.InsertPrompt) (*models.Prompt, error) {
	now := time.Now()
	rec := promptRecord{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Description: nullString(in.Description),
		CategoryID:  nullString(in.CategoryID),
		Tags:        append(models.JSONStringArray{}, in.Tags...),
		UsageCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsFavorite != nil {
		rec.IsFavorite = *in.IsFavorite
	}
	if in.IsArchived != nil {
		rec.IsArchived = *in.IsArchived
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, err
	}
	p := rec.toModel()
	return &p, nil
}

// UpdatePrompt merges the provided fields over the existing record inside a
// transaction and refreshes the updated timestamp. Absent fields are never
// cleared.
func (s *Store) UpdatePrompt(ctx context.Context, id string, in models.UpdatePrompt) (*models.Prompt, error) {
	var rec promptRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrNotFound
			}
			return err
		}
		if in.Title != nil {
			rec.Title = *in.Title
		}
		if in.Content != nil {
			rec.Content = *in.Content
		}
		if in.Description != nil {
			rec.Description = nullString(in.Description)
		}
		if in.CategoryID != nil {
			rec.CategoryID = nullString(in.CategoryID)
		}
		if in.Tags != nil {
			rec.Tags = append(models.JSONStringArray{}, (*in.Tags)...)
		}
		if in.IsFavorite != nil {
			rec.IsFavorite = *in.IsFavorite
		}
		if in.IsArchived != nil {
			rec.IsArchived = *in.IsArchived
		}
		rec.UpdatedAt = time.Now()
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	p := rec.toModel()
	return &p, nil
}

// DeletePrompt removes the prompt permanently. Deleting an unknown id reports
// false without error.
func (s *Store) DeletePrompt(ctx context.Context, id string) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&promptRecord{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SearchPrompts returns prompts whose title, content, description or any tag
// contains the text as a case-insensitive substring. Matching happens in
// process so tag matching behaves identically to the memory backend.
func (s *Store) SearchPrompts(ctx context.Context, text string) ([]models.Prompt, error) {
	prompts, err := s.ListPrompts(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(text)
	out := prompts[:0]
	for _, p := range prompts {
		if query.Matches(p, q) {
			out = append(out, p)
		}
	}
	return out, nil
}
