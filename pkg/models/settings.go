package models

import "time"

// SettingsID is the fixed identifier of the process-wide settings singleton.
const SettingsID = "settings"

// Theme values accepted by the settings update operation.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Export formats accepted by the settings update operation and the export endpoint.
const (
	ExportFormatJSON     = "json"
	ExportFormatYAML     = "yaml"
	ExportFormatMarkdown = "markdown"
)

// Settings is the singleton configuration record. Exactly one instance exists
// for the lifetime of the process; it is never created or deleted through the
// public contract, only read and partially updated.
type Settings struct {
	ID              string    `json:"id"`
	Theme           string    `json:"theme"`
	AutoSave        bool      `json:"autoSave"`
	SyncEnabled     bool      `json:"syncEnabled"`
	SyncProvider    *string   `json:"syncProvider"`
	ExportFormat    string    `json:"exportFormat"`
	ParticleEffects bool      `json:"particleEffects"`
	SoundEffects    bool      `json:"soundEffects"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpdateSettings is a partial update: nil fields are left untouched.
type UpdateSettings struct {
	Theme           *string `json:"theme"`
	AutoSave        *bool   `json:"autoSave"`
	SyncEnabled     *bool   `json:"syncEnabled"`
	SyncProvider    *string `json:"syncProvider"`
	ExportFormat    *string `json:"exportFormat"`
	ParticleEffects *bool   `json:"particleEffects"`
	SoundEffects    *bool   `json:"soundEffects"`
}
