package models

import "time"

// Default presentation values applied when a category is created without them.
const (
	DefaultCategoryIcon  = "fas fa-folder"
	DefaultCategoryColor = "#8B5CF6"
)

// Category is a named grouping for prompts. ParentID allows one level of
// nesting in the data model; the reference UI renders a flat list.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	ParentID    *string   `json:"parentId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InsertCategory is the validated create payload for a category.
type InsertCategory struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	ParentID    *string `json:"parentId"`
}

// UpdateCategory is a partial update: nil fields are left untouched.
type UpdateCategory struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	ParentID    *string `json:"parentId"`
}
