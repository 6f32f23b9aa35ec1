// Package export renders the prompt library in the formats declared by the
// settings record: json, yaml or markdown.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/promptstitch/promptstitch/pkg/models"
)

// Library is the exported document shape shared by all formats.
type Library struct {
	ExportedAt time.Time         `json:"exportedAt" yaml:"exportedAt"`
	Categories []models.Category `json:"categories" yaml:"categories"`
	Prompts    []models.Prompt   `json:"prompts" yaml:"prompts"`
}

// Render serializes the library in the given format and returns the payload
// together with its content type. The format must already be validated.
func Render(lib Library, format string) ([]byte, string, error) {
	switch format {
	case models.ExportFormatJSON:
		b, err := json.MarshalIndent(lib, "", "  ")
		if err != nil {
			return nil, "", fmt.Errorf("marshal json: %w", err)
		}
		return b, "application/json", nil
	case models.ExportFormatYAML:
		b, err := yaml.Marshal(lib)
		if err != nil {
			return nil, "", fmt.Errorf("marshal yaml: %w", err)
		}
		return b, "application/yaml", nil
	case models.ExportFormatMarkdown:
		return renderMarkdown(lib), "text/markdown; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

// renderMarkdown groups prompts under their category heading; prompts with a
// dangling or absent category reference land in an Uncategorized section.
func renderMarkdown(lib Library) []byte {
	names := make(map[string]string, len(lib.Categories))
	for _, c := range lib.Categories {
		names[c.ID] = c.Name
	}

	grouped := make(map[string][]models.Prompt)
	var order []string
	appendGroup := func(name string, p models.Prompt) {
		if _, seen := grouped[name]; !seen {
			order = append(order, name)
		}
		grouped[name] = append(grouped[name], p)
	}
	for _, p := range lib.Prompts {
		name := "Uncategorized"
		if p.CategoryID != nil {
			if n, ok := names[*p.CategoryID]; ok {
				name = n
			}
		}
		appendGroup(name, p)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Prompt Library\n\nExported %s\n", lib.ExportedAt.Format(time.RFC3339))
	for _, name := range order {
		fmt.Fprintf(&b, "\n## %s\n", name)
		for _, p := range grouped[name] {
			fmt.Fprintf(&b, "\n### %s\n\n", p.Title)
			if p.Description != nil && *p.Description != "" {
				fmt.Fprintf(&b, "_%s_\n\n", *p.Description)
			}
			fmt.Fprintf(&b, "```\n%s\n```\n", p.Content)
			if len(p.Tags) > 0 {
				fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(p.Tags, ", "))
			}
		}
	}
	return []byte(b.String())
}
