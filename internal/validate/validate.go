// Package validate is the validation boundary for create/update payloads.
//
// Validators are pure: they perform no I/O and have no side effects. On
// violation they return a *ValidationError enumerating every offending field,
// so an invalid record never reaches storage.
package validate

import (
	"fmt"
	"strings"

	"github.com/promptstitch/promptstitch/pkg/models"
)

// FieldError describes a single offending field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError aggregates all field-level violations of one payload.
type ValidationError struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

type collector struct {
	fields []FieldError
}

func (c *collector) add(field, reason string) {
	c.fields = append(c.fields, FieldError{Field: field, Reason: reason})
}

func (c *collector) result(message string) *ValidationError {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Message: message, Fields: c.fields}
}

// InsertPrompt checks a prompt create payload.
func InsertPrompt(in models.InsertPrompt) *ValidationError {
	var c collector
	if strings.TrimSpace(in.Title) == "" {
		c.add("title", "title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		c.add("content", "content is required")
	}
	return c.result("Invalid prompt data")
}

// UpdatePrompt checks a partial prompt update. Present fields must still hold
// valid values; absent fields are fine.
func UpdatePrompt(in models.UpdatePrompt) *ValidationError {
	var c collector
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		c.add("title", "title must not be empty")
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		c.add("content", "content must not be empty")
	}
	return c.result("Invalid prompt data")
}

// InsertCategory checks a category create payload.
func InsertCategory(in models.InsertCategory) *ValidationError {
	var c collector
	if strings.TrimSpace(in.Name) == "" {
		c.add("name", "name is required")
	}
	return c.result("Invalid category data")
}

// UpdateCategory checks a partial category update.
func UpdateCategory(in models.UpdateCategory) *ValidationError {
	var c collector
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		c.add("name", "name must not be empty")
	}
	return c.result("Invalid category data")
}

// InsertUsageHistory checks a usage event create payload. The prompt id is
// required as a value but is deliberately not checked against live prompts.
func InsertUsageHistory(in models.InsertUsageHistory) *ValidationError {
	var c collector
	if strings.TrimSpace(in.PromptID) == "" {
		c.add("promptId", "promptId is required")
	}
	return c.result("Invalid usage data")
}

// UpdateSettings checks a partial settings update, including the enumerated
// theme and export-format fields.
func UpdateSettings(in models.UpdateSettings) *ValidationError {
	var c collector
	if in.Theme != nil {
		switch *in.Theme {
		case models.ThemeDark, models.ThemeLight:
		default:
			c.add("theme", fmt.Sprintf("theme must be one of %q, %q", models.ThemeDark, models.ThemeLight))
		}
	}
	if in.ExportFormat != nil {
		switch *in.ExportFormat {
		case models.ExportFormatJSON, models.ExportFormatYAML, models.ExportFormatMarkdown:
		default:
			c.add("exportFormat", fmt.Sprintf("exportFormat must be one of %q, %q, %q",
				models.ExportFormatJSON, models.ExportFormatYAML, models.ExportFormatMarkdown))
		}
	}
	return c.result("Invalid settings data")
}

// ExportFormat checks a standalone export format value from a query parameter.
func ExportFormat(format string) *ValidationError {
	var c collector
	switch format {
	case models.ExportFormatJSON, models.ExportFormatYAML, models.ExportFormatMarkdown:
	default:
		c.add("format", fmt.Sprintf("format must be one of %q, %q, %q",
			models.ExportFormatJSON, models.ExportFormatYAML, models.ExportFormatMarkdown))
	}
	return c.result("Invalid export format")
}
