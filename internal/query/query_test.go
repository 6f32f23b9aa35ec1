package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/promptstitch/promptstitch/pkg/models"
)

func strPtr(s string) *string { return &s }

func prompt(id, title string, usage int, updated time.Time) models.Prompt {
	return models.Prompt{ID: id, Title: title, UsageCount: usage, UpdatedAt: updated}
}

func TestPowerScore(t *testing.T) {
	now := time.Now()
	history := []models.UsageHistory{
		{PromptID: "a", Timestamp: now.Add(-time.Hour)},
		{PromptID: "a", Timestamp: now.Add(-2 * 24 * time.Hour)},
		{PromptID: "a", Timestamp: now.Add(-10 * 24 * time.Hour)}, // outside the window
		{PromptID: "b", Timestamp: now.Add(-time.Minute)},
	}

	recent := RecentUsageCounts(history, now)
	assert.Equal(t, 2, recent["a"])
	assert.Equal(t, 1, recent["b"])

	// Lifetime count 3 plus 2x the two recent events.
	p := models.Prompt{ID: "a", UsageCount: 3}
	assert.Equal(t, 7, PowerScore(p, recent))

	// No usage at all scores zero.
	assert.Equal(t, 0, PowerScore(models.Prompt{ID: "zzz"}, recent))
}

func TestSort_Usage(t *testing.T) {
	now := time.Now()
	prompts := []models.Prompt{
		prompt("low", "Low", 1, now),
		prompt("high", "High", 9, now),
		prompt("mid", "Mid", 4, now),
	}

	Sort(prompts, nil, SortUsage, now)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{prompts[0].ID, prompts[1].ID, prompts[2].ID})
}

func TestSort_Power(t *testing.T) {
	now := time.Now()
	// "b" has fewer lifetime uses but all of them recent, so it outranks "a".
	prompts := []models.Prompt{
		{ID: "a", UsageCount: 4},
		{ID: "b", UsageCount: 3},
	}
	history := []models.UsageHistory{
		{PromptID: "b", Timestamp: now.Add(-time.Hour)},
		{PromptID: "b", Timestamp: now.Add(-2 * time.Hour)},
		{PromptID: "b", Timestamp: now.Add(-3 * time.Hour)},
	}

	Sort(prompts, history, SortPower, now)
	assert.Equal(t, "b", prompts[0].ID)
}

func TestSort_TitleAndRecent(t *testing.T) {
	now := time.Now()
	prompts := []models.Prompt{
		prompt("2", "Banana", 0, now.Add(-time.Hour)),
		prompt("1", "Apple", 0, now),
	}

	Sort(prompts, nil, SortTitle, now)
	assert.Equal(t, "Apple", prompts[0].Title)

	Sort(prompts, nil, SortRecent, now)
	assert.Equal(t, "1", prompts[0].ID)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortUsage, ParseSortMode("usage"))
	assert.Equal(t, SortPower, ParseSortMode("POWER"))
	assert.Equal(t, SortTitle, ParseSortMode("title"))
	assert.Equal(t, SortRecent, ParseSortMode(""))
	assert.Equal(t, SortRecent, ParseSortMode("bogus"))
}

func TestFavoritesExcludesArchived(t *testing.T) {
	prompts := []models.Prompt{
		{ID: "fav", IsFavorite: true},
		{ID: "fav-archived", IsFavorite: true, IsArchived: true},
		{ID: "plain"},
	}

	favs := Favorites(prompts)
	assert.Len(t, favs, 1)
	assert.Equal(t, "fav", favs[0].ID)
}

func TestCountByCategory(t *testing.T) {
	catID := "cat-1"
	prompts := []models.Prompt{
		{ID: "in", CategoryID: strPtr(catID)},
		{ID: "in-archived", CategoryID: strPtr(catID), IsArchived: true},
		{ID: "other", CategoryID: strPtr("cat-2")},
		{ID: "none"},
	}

	assert.Equal(t, 1, CountByCategory(prompts, catID))
	// Archiving the only member drops the count to zero.
	prompts[0].IsArchived = true
	assert.Equal(t, 0, CountByCategory(prompts, catID))
	// Dangling references never match anything.
	assert.Equal(t, 0, CountByCategory(prompts, "deleted-cat"))
}
