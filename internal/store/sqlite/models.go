package sqlite

import (
	"database/sql"
	"time"

	"github.com/promptstitch/promptstitch/pkg/models"
)

// promptRecord is the prompts table row.
type promptRecord struct {
	ID          string `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"not null"`
	Description sql.NullString
	CategoryID  sql.NullString         `gorm:"index"`
	Tags        models.JSONStringArray `gorm:"type:text"`
	IsFavorite  bool                   `gorm:"default:false;index"`
	IsArchived  bool                   `gorm:"default:false;index"`
	UsageCount  int                    `gorm:"default:0"`
	CreatedAt   time.Time              `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time              `gorm:"autoUpdateTime:false;index:idx_prompts_updated,sort:desc;not null"`
	LastUsedAt  sql.NullTime
}

func (promptRecord) TableName() string { return "prompts" }

// categoryRecord is the categories table row. Name intentionally carries no
// unique index: duplicate names are accepted.
type categoryRecord struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"index;not null"`
	Description sql.NullString
	Icon        string
	Color       string
	ParentID    sql.NullString
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null"`
}

func (categoryRecord) TableName() string { return "categories" }

// usageRecord is the usage_history table row. Rows are append-only.
type usageRecord struct {
	ID        string `gorm:"primaryKey"`
	PromptID  string `gorm:"index;not null"`
	Target    sql.NullString
	Timestamp time.Time      `gorm:"index:idx_usage_timestamp,sort:desc;not null"`
	Metadata  models.JSONMap `gorm:"type:text"`
}

func (usageRecord) TableName() string { return "usage_history" }

// settingsRecord is the single-row settings table.
type settingsRecord struct {
	ID              string `gorm:"primaryKey"`
	Theme           string
	AutoSave        bool
	SyncEnabled     bool
	SyncProvider    sql.NullString
	ExportFormat    string
	ParticleEffects bool
	SoundEffects    bool
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (settingsRecord) TableName() string { return "settings" }

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func (r *promptRecord) toModel() models.Prompt {
	return models.Prompt{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		Description: fromNullString(r.Description),
		CategoryID:  fromNullString(r.CategoryID),
		Tags:        append([]string{}, r.Tags...),
		IsFavorite:  r.IsFavorite,
		IsArchived:  r.IsArchived,
		UsageCount:  r.UsageCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		LastUsedAt:  fromNullTime(r.LastUsedAt),
	}
}

func (r *categoryRecord) toModel() models.Category {
	return models.Category{
		ID:          r.ID,
		Name:        r.Name,
		Description: fromNullString(r.Description),
		Icon:        r.Icon,
		Color:       r.Color,
		ParentID:    fromNullString(r.ParentID),
		CreatedAt:   r.CreatedAt,
	}
}

func (r *usageRecord) toModel() models.UsageHistory {
	meta := map[string]any(r.Metadata)
	if meta == nil {
		meta = map[string]any{}
	}
	return models.UsageHistory{
		ID:        r.ID,
		PromptID:  r.PromptID,
		Target:    fromNullString(r.Target),
		Timestamp: r.Timestamp,
		Metadata:  meta,
	}
}

func (r *settingsRecord) toModel() models.Settings {
	return models.Settings{
		ID:              r.ID,
		Theme:           r.Theme,
		AutoSave:        r.AutoSave,
		SyncEnabled:     r.SyncEnabled,
		SyncProvider:    fromNullString(r.SyncProvider),
		ExportFormat:    r.ExportFormat,
		ParticleEffects: r.ParticleEffects,
		SoundEffects:    r.SoundEffects,
		UpdatedAt:       r.UpdatedAt,
	}
}

func settingsFromModel(m models.Settings) settingsRecord {
	return settingsRecord{
		ID:              m.ID,
		Theme:           m.Theme,
		AutoSave:        m.AutoSave,
		SyncEnabled:     m.SyncEnabled,
		SyncProvider:    nullString(m.SyncProvider),
		ExportFormat:    m.ExportFormat,
		ParticleEffects: m.ParticleEffects,
		SoundEffects:    m.SoundEffects,
		UpdatedAt:       m.UpdatedAt,
	}
}

func categoryFromModel(m models.Category) categoryRecord {
	return categoryRecord{
		ID:          m.ID,
		Name:        m.Name,
		Description: nullString(m.Description),
		Icon:        m.Icon,
		Color:       m.Color,
		ParentID:    nullString(m.ParentID),
		CreatedAt:   m.CreatedAt,
	}
}
