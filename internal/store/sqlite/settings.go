package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/promptstitch/promptstitch/internal/store"
	"github.com/promptstitch/promptstitch/pkg/models"
)

// GetSettings returns the settings singleton. The row is seeded by the
// migrations, but a missing row is recreated from defaults rather than failing.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	var rec settingsRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = settingsFromModel(store.DefaultSettings(time.Now()))
		if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	m := rec.toModel()
	return &m, nil
}

// UpdateSettings merges the provided fields over the singleton and refreshes
// its updated timestamp.
func (s *Store) UpdateSettings(ctx context.Context, in models.UpdateSettings) (*models.Settings, error) {
	var rec settingsRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", models.SettingsID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				rec = settingsFromModel(store.DefaultSettings(time.Now()))
			} else {
				return err
			}
		}
		if in.Theme != nil {
			rec.Theme = *in.Theme
		}
		if in.AutoSave != nil {
			rec.AutoSave = *in.AutoSave
		}
		if in.SyncEnabled != nil {
			rec.SyncEnabled = *in.SyncEnabled
		}
		if in.SyncProvider != nil {
			rec.SyncProvider = nullString(in.SyncProvider)
		}
		if in.ExportFormat != nil {
			rec.ExportFormat = *in.ExportFormat
		}
		if in.ParticleEffects != nil {
			rec.ParticleEffects = *in.ParticleEffects
		}
		if in.SoundEffects != nil {
			rec.SoundEffects = *in.SoundEffects
		}
		rec.UpdatedAt = time.Now()
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, err
	}
	m := rec.toModel()
	return &m, nil
}
