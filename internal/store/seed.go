package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/promptstitch/promptstitch/pkg/models"
)

func strPtr(s string) *string { return &s }

// DefaultCategories returns the seed categories installed into an empty store.
// IDs are freshly generated on every call.
func DefaultCategories(now time.Time) []models.Category {
	return []models.Category{
		{
			ID:          uuid.NewString(),
			Name:        "Coding & Development",
			Description: strPtr("Spells for software creation and debugging"),
			Icon:        "fas fa-code",
			Color:       "#00FFFF",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Creative Writing",
			Description: strPtr("Incantations for literary creation"),
			Icon:        "fas fa-feather-alt",
			Color:       "#FF6B9D",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Research & Analysis",
			Description: strPtr("Divination tools for knowledge gathering"),
			Icon:        "fas fa-search",
			Color:       "#8B5CF6",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Business & Marketing",
			Description: strPtr("Commercial alchemy and persuasion magic"),
			Icon:        "fas fa-chart-line",
			Color:       "#22C55E",
			CreatedAt:   now,
		},
		{
			ID:          uuid.NewString(),
			Name:        "Education & Learning",
			Description: strPtr("Wisdom transmission and knowledge spells"),
			Icon:        "fas fa-graduation-cap",
			Color:       "#FFB347",
			CreatedAt:   now,
		},
	}
}

// DefaultSettings returns the settings singleton as initialized at process start.
func DefaultSettings(now time.Time) models.Settings {
	return models.Settings{
		ID:              models.SettingsID,
		Theme:           models.ThemeDark,
		AutoSave:        true,
		SyncEnabled:     false,
		SyncProvider:    nil,
		ExportFormat:    models.ExportFormatJSON,
		ParticleEffects: true,
		SoundEffects:    false,
		UpdatedAt:       now,
	}
}
