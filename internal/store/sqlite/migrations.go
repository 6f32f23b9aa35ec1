package sqlite

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/promptstitch/promptstitch/internal/store"
)

// runMigrations applies all pending schema migrations in order.
func runMigrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			// Initial schema: prompts, categories, usage history and the
			// settings singleton.
			ID: "001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&promptRecord{},
					&categoryRecord{},
					&usageRecord{},
					&settingsRecord{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"prompts", "categories", "usage_history", "settings",
				)
			},
		},
		{
			// Seed the starter categories and the settings row. Categories
			// are only seeded into an empty table so user-created ones are
			// never duplicated on upgrade.
			ID: "002_seed_defaults",
			Migrate: func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&categoryRecord{}).Count(&count).Error; err != nil {
					return err
				}
				now := tx.NowFunc()
				if count == 0 {
					for _, c := range store.DefaultCategories(now) {
						rec := categoryFromModel(c)
						if err := tx.Create(&rec).Error; err != nil {
							return err
						}
					}
				}
				if err := tx.Model(&settingsRecord{}).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					rec := settingsFromModel(store.DefaultSettings(now))
					if err := tx.Create(&rec).Error; err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return nil
			},
		},
	})
	return m.Migrate()
}
