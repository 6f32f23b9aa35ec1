// Package memory provides the in-memory store backend for promptstitch.
//
// All collections live in maps guarded by a single RWMutex, which makes every
// operation (including the compound usage-record write) atomic with respect to
// concurrent requests. Nothing survives a process restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/promptstitch/promptstitch/internal/query"
	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/pkg/models"
)

// Store is the in-memory implementation of store.Store.
type Store struct {
	mu         sync.RWMutex
	prompts    map[string]models.Prompt
	categories map[string]models.Category
	usage      map[string]models.UsageHistory
	settings   models.Settings
}

var _ store.Store = (*Store)(nil)

// NewStore creates a store seeded with the default categories and settings.
func NewStore() *Store {
	now := time.Now()
	s := &Store{
		prompts:    make(map[string]models.Prompt),
		categories: make(map[string]models.Category),
		usage:      make(map[string]models.UsageHistory),
		settings:   store.DefaultSettings(now),
	}
	for _, c := range store.DefaultCategories(now) {
		s.categories[c.ID] = c
	}
	return s
}

// Close implements store.Store. There is nothing to release.
func (s *Store) Close() error { return nil }

// clonePrompt returns a copy with its own tag slice so callers can't mutate
// stored state through the returned value.
func clonePrompt(p models.Prompt) models.Prompt {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	p.Tags = tags
	return p
}

// ListPrompts returns all prompts, most recently updated first.
func (s *Store) ListPrompts(ctx context.Context) ([]models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Prompt, 0, len(s.prompts))
	for _, p := range s.prompts {
		out = append(out, clonePrompt(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GetPrompt returns the prompt or store.ErrNotFound. Archived prompts remain
// addressable by id.
func (s *Store) GetPrompt(ctx context.Context, id string) (*models.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prompts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p = clonePrompt(p)
	return &p, nil
}

// CreatePrompt stores a new prompt with server-assigned id and timestamps.
func (s *Store) CreatePrompt(ctx context.Context, in models.InsertPrompt) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := models.Prompt{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Content:     in.Content,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Tags:        append([]string{}, in.Tags...),
		UsageCount:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastUsedAt:  nil,
	}
	if in.IsFavorite != nil {
		p.IsFavorite = *in.IsFavorite
	}
	if in.IsArchived != nil {
		p.IsArchived = *in.IsArchived
	}
	s.prompts[p.ID] = p

	p = clonePrompt(p)
	return &p, nil
}

// UpdatePrompt merges the provided fields over the existing record and
// refreshes the updated timestamp. Absent fields are never cleared.
func (s *Store) UpdatePrompt(ctx context.Context, id string, in models.UpdatePrompt) (*models.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prompts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	applyPromptUpdate(&p, in)
	p.UpdatedAt = time.Now()
	s.prompts[id] = p

	p = clonePrompt(p)
	return &p, nil
}

func applyPromptUpdate(p *models.Prompt, in models.UpdatePrompt) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}
	if in.Tags != nil {
		p.Tags = append([]string{}, (*in.Tags)...)
	}
	if in.IsFavorite != nil {
		p.IsFavorite = *in.IsFavorite
	}
	if in.IsArchived != nil {
		p.IsArchived = *in.IsArchived
	}
}

// DeletePrompt removes the prompt permanently. Deleting an unknown id reports
// false without error.
func (s *Store) DeletePrompt(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prompts[id]; !ok {
		return false, nil
	}
	delete(s.prompts, id)
	return true, nil
}

// SearchPrompts returns prompts whose title, content, description or any tag
// contains the query as a case-insensitive substring. Archived prompts are
// included; the caller decides whether to filter them.
func (s *Store) SearchPrompts(ctx context.Context, text string) ([]models.Prompt, error) {
	q := strings.ToLower(text)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Prompt
	for _, p := range s.prompts {
		if query.Matches(p, q) {
			out = append(out, clonePrompt(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// ListCategories returns all categories sorted by name.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// GetCategory returns the category or store.ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

// CreateCategory stores a new category, applying the default icon and color
// when unspecified. Name uniqueness is not enforced.
func (s *Store) CreateCategory(ctx context.Context, in models.InsertCategory) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Icon:        models.DefaultCategoryIcon,
		Color:       models.DefaultCategoryColor,
		ParentID:    in.ParentID,
		CreatedAt:   time.Now(),
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	s.categories[c.ID] = c
	return &c, nil
}

// UpdateCategory merges the provided fields over the existing record.
func (s *Store) UpdateCategory(ctx context.Context, id string, in models.UpdateCategory) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = in.Description
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.ParentID != nil {
		c.ParentID = in.ParentID
	}
	s.categories[id] = c
	return &c, nil
}

// DeleteCategory removes the category record only. Prompts referencing it keep
// their dangling reference; readers treat missing lookups as uncategorized.
func (s *Store) DeleteCategory(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

// ListUsageHistory returns all usage events, most recent first.
func (s *Store) ListUsageHistory(ctx context.Context) ([]models.UsageHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.UsageHistory, 0, len(s.usage))
	for _, u := range s.usage {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// RecordUsage appends a usage event and bumps the referenced prompt's usage
// counter and last-used timestamp. The event is recorded even when the prompt
// does not exist; only the counter update is skipped in that case.
func (s *Store) RecordUsage(ctx context.Context, in models.InsertUsageHistory) (*models.UsageHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	u := models.UsageHistory{
		ID:        uuid.NewString(),
		PromptID:  in.PromptID,
		Target:    in.Target,
		Timestamp: now,
		Metadata:  in.Metadata,
	}
	if u.Metadata == nil {
		u.Metadata = map[string]any{}
	}
	s.usage[u.ID] = u

	if p, ok := s.prompts[in.PromptID]; ok {
		p.UsageCount++
		p.LastUsedAt = &now
		p.UpdatedAt = now
		s.prompts[p.ID] = p
	}
	return &u, nil
}

// GetSettings returns the settings singleton.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := s.settings
	return &settings, nil
}

// UpdateSettings merges the provided fields over the singleton and refreshes
// its updated timestamp.
func (s *Store) UpdateSettings(ctx context.Context, in models.UpdateSettings) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Theme != nil {
		s.settings.Theme = *in.Theme
	}
	if in.AutoSave != nil {
		s.settings.AutoSave = *in.AutoSave
	}
	if in.SyncEnabled != nil {
		s.settings.SyncEnabled = *in.SyncEnabled
	}
	if in.SyncProvider != nil {
		s.settings.SyncProvider = in.SyncProvider
	}
	if in.ExportFormat != nil {
		s.settings.ExportFormat = *in.ExportFormat
	}
	if in.ParticleEffects != nil {
		s.settings.ParticleEffects = *in.ParticleEffects
	}
	if in.SoundEffects != nil {
		s.settings.SoundEffects = *in.SoundEffects
	}
	s.settings.UpdatedAt = time.Now()

	settings := s.settings
	return &settings, nil
}
