package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptstitch/promptstitch/pkg/models"
)

// ListUsageHistory returns all usage events, most recent first.
func (s *Store) ListUsageHistory(ctx context.Context) ([]models.UsageHistory, error) {
	var recs []usageRecord
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.UsageHistory, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toModel())
	}
	return out, nil
}

// RecordUsage appends a usage event and bumps the referenced prompt's usage
// counter and last-used timestamp in one transaction. The event is recorded
// even when the prompt does not exist; only the counter update is skipped.
func (s *Store) RecordUsage(ctx context.Context, in models.InsertUsageHistory) (*models.UsageHistory, error) {
	now := time.Now()
	rec := usageRecord{
		ID:        uuid.NewString(),
		PromptID:  in.PromptID,
		Target:    nullString(in.Target),
		Timestamp: now,
		Metadata:  models.JSONMap(in.Metadata),
	}
	if rec.Metadata == nil {
		rec.Metadata = models.JSONMap{}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		var p promptRecord
		if err := tx.First(&p, "id = ?", in.PromptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		p.UsageCount++
		p.LastUsedAt = nullTime(&now)
		p.UpdatedAt = now
		return tx.Save(&p).Error
	})
	if err != nil {
		return nil, err
	}
	u := rec.toModel()
	return &u, nil
}
