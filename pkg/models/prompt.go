// Package models contains domain models for promptstitch.
package models

import "time"

// Prompt is a reusable text template ("spell") managed by the library.
type Prompt struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Description *string    `json:"description"`
	CategoryID  *string    `json:"categoryId"`
	Tags        []string   `json:"tags"`
	IsFavorite  bool       `json:"isFavorite"`
	IsArchived  bool       `json:"isArchived"`
	UsageCount  int        `json:"usageCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt"`
}

// InsertPrompt is the validated create payload for a prompt.
// The store assigns id, timestamps and the usage counter.
type InsertPrompt struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId"`
	Tags        []string `json:"tags"`
	IsFavorite  *bool    `json:"isFavorite"`
	IsArchived  *bool    `json:"isArchived"`
}

// UpdatePrompt is a partial update: nil fields are left untouched.
type UpdatePrompt struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Description *string   `json:"description"`
	CategoryID  *string   `json:"categoryId"`
	Tags        *[]string `json:"tags"`
	IsFavorite  *bool     `json:"isFavorite"`
	IsArchived  *bool     `json:"isArchived"`
}
