// Package query derives read-only views over prompt collection snapshots.
//
// Every function here is a pure function of its inputs; callers pass the
// current store snapshot so results are always linearizable with respect to
// the store.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/promptstitch/promptstitch/pkg/models"
)

// PowerWindow is the trailing window over which recent usage events are
// double-weighted in the power score.
const PowerWindow = 7 * 24 * time.Hour

// SortMode selects one of the available prompt orderings. Modes are not
// combinable.
type SortMode string

const (
	SortRecent SortMode = "recent" // last-updated descending (default)
	SortUsage  SortMode = "usage"  // lifetime usage count descending
	SortPower  SortMode = "power"  // power score descending
	SortTitle  SortMode = "title"  // lexicographic by title
)

// ParseSortMode maps a query-parameter value to a SortMode, defaulting to
// SortRecent for empty or unknown values.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(s)) {
	case SortUsage:
		return SortUsage
	case SortPower:
		return SortPower
	case SortTitle:
		return SortTitle
	default:
		return SortRecent
	}
}

// RecentUsageCounts counts usage events per prompt within the trailing power
// window ending at now.
func RecentUsageCounts(history []models.UsageHistory, now time.Time) map[string]int {
	cutoff := now.Add(-PowerWindow)
	counts := make(map[string]int)
	for _, u := range history {
		if u.Timestamp.After(cutoff) {
			counts[u.PromptID]++
		}
	}
	return counts
}

// PowerScore ranks a prompt by lifetime usage plus double-weighted recent
// usage. The score is derived for sorting and display, never persisted.
func PowerScore(p models.Prompt, recentCounts map[string]int) int {
	return p.UsageCount + 2*recentCounts[p.ID]
}

// Sort orders prompts in place according to mode. Power sorting needs the
// usage history snapshot; the other modes ignore it.
func Sort(prompts []models.Prompt, history []models.UsageHistory, mode SortMode, now time.Time) {
	switch mode {
	case SortUsage:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].UsageCount > prompts[j].UsageCount
		})
	case SortPower:
		recent := RecentUsageCounts(history, now)
		sort.SliceStable(prompts, func(i, j int) bool {
			return PowerScore(prompts[i], recent) > PowerScore(prompts[j], recent)
		})
	case SortTitle:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].Title < prompts[j].Title
		})
	default:
		sort.SliceStable(prompts, func(i, j int) bool {
			return prompts[i].UpdatedAt.After(prompts[j].UpdatedAt)
		})
	}
}

// Matches reports whether the prompt's title, content, description or any tag
// contains q as a case-insensitive substring. q must already be lowercased.
func Matches(p models.Prompt, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	if p.Description != nil && strings.Contains(strings.ToLower(*p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Favorites returns prompts flagged favorite and not archived.
func Favorites(prompts []models.Prompt) []models.Prompt {
	var out []models.Prompt
	for _, p := range prompts {
		if p.IsFavorite && !p.IsArchived {
			out = append(out, p)
		}
	}
	return out
}

// Active returns prompts not archived, the default listing view.
func Active(prompts []models.Prompt) []models.Prompt {
	var out []models.Prompt
	for _, p := range prompts {
		if !p.IsArchived {
			out = append(out, p)
		}
	}
	return out
}

// CountByCategory counts non-archived prompts referencing the category.
// Prompts with no or a different category reference are excluded, so dangling
// references simply never match.
func CountByCategory(prompts []models.Prompt, categoryID string) int {
	count := 0
	for _, p := range prompts {
		if p.IsArchived {
			continue
		}
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			count++
		}
	}
	return count
}
