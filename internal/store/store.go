// Package store defines the storage contract for promptstitch entities.
//
// The interface is the abstract capability set the HTTP layer is written
// against; implementations live in the memory and sqlite subpackages and are
// selected at process start. Field-level validation happens before any of
// these methods are called.
package store

import (
	"context"
	"errors"

	"github.com/promptstitch/promptstitch/pkg/models"
)

// ErrNotFound signals that a referenced id is absent. It is distinct from
// validation failure and is mapped to 404 at the HTTP boundary.
var ErrNotFound = errors.New("record not found")

// Store is the authoritative holder of all four entity collections. It is the
// sole writer of identifiers and timestamps.
//
// Delete operations are idempotent: they report (false, nil) for an unknown
// id rather than an error. RecordUsage is a compound write: the history insert
// always succeeds, the counter bump on the referenced prompt is skipped when
// the prompt does not exist.
type Store interface {
	ListPrompts(ctx context.Context) ([]models.Prompt, error)
	GetPrompt(ctx context.Context, id string) (*models.Prompt, error)
	CreatePrompt(ctx context.Context, in models.InsertPrompt) (*models.Prompt, error)
	UpdatePrompt(ctx context.Context, id string, in models.UpdatePrompt) (*models.Prompt, error)
	DeletePrompt(ctx context.Context, id string) (bool, error)
	SearchPrompts(ctx context.Context, query string) ([]models.Prompt, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.InsertCategory) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in models.UpdateCategory) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)

	ListUsageHistory(ctx context.Context) ([]models.UsageHistory, error)
	RecordUsage(ctx context.Context, in models.InsertUsageHistory) (*models.UsageHistory, error)

	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, in models.UpdateSettings) (*models.Settings, error)

	Close() error
}
