// Package server provides the HTTP service for promptstitch.
package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstitch/promptstitch/internal/config"
	"github.com/promptstitch/promptstitch/internal/generate"
	"github.com/promptstitch/promptstitch/internal/store/memory"
	"github.com/promptstitch/promptstitch/pkg/models"
)

// testService creates a Service backed by a fresh in-memory store and an
// unconfigured generator.
func testService(t *testing.T) *Service {
	t.Helper()
	return New("test-version", config.Default(), memory.NewStore(), generate.New(generate.Config{}))
}

func doJSON(t *testing.T, svc *Service, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	svc.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createTestPrompt(t *testing.T, svc *Service, body map[string]any) models.Prompt {
	t.Helper()

	rec := doJSON(t, svc, http.MethodPost, "/api/prompts", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[models.Prompt](t, rec)
}

func TestHealth(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test-version", body["version"])
}

func TestCreatePrompt_Lifecycle(t *testing.T) {
	svc := testService(t)

	created := createTestPrompt(t, svc, map[string]any{
		"title":   "Code Review",
		"content": "Review the following diff",
		"tags":    []string{"a", "b"},
	})
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.UsageCount)
	assert.Nil(t, created.LastUsedAt)

	// Fetch by id round-trips the tag order.
	rec := doJSON(t, svc, http.MethodGet, "/api/prompts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[models.Prompt](t, rec)
	assert.Equal(t, []string{"a", "b"}, fetched.Tags)

	// Partial update keeps untouched fields.
	rec = doJSON(t, svc, http.MethodPatch, "/api/prompts/"+created.ID, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[models.Prompt](t, rec)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Review the following diff", updated.Content)
	assert.Equal(t, []string{"a", "b"}, updated.Tags)

	// Delete, then the id is gone.
	rec = doJSON(t, svc, http.MethodDelete, "/api/prompts/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, svc, http.MethodDelete, "/api/prompts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, svc, http.MethodGet, "/api/prompts/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePrompt_ValidationErrors(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/prompts", map[string]any{"title": "No content"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Invalid prompt data", body["message"])
	errs, ok := body["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	first, ok := errs[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "content", first["field"])
}

func TestUpdatePrompt_NotFound(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPatch, "/api/prompts/no-such-id", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchPrompts(t *testing.T) {
	svc := testService(t)

	createTestPrompt(t, svc, map[string]any{"title": "Code Review", "content": "diff"})
	createTestPrompt(t, svc, map[string]any{"title": "Other", "content": "text", "tags": []string{"code-review"}})
	createTestPrompt(t, svc, map[string]any{"title": "Unrelated", "content": "nothing"})

	rec := doJSON(t, svc, http.MethodGet, "/api/prompts/search?q=code", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decodeBody[[]models.Prompt](t, rec)
	assert.Len(t, results, 2)

	// Missing q is a client error.
	rec = doJSON(t, svc, http.MethodGet, "/api/prompts/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPrompts_SortAndFavorites(t *testing.T) {
	svc := testService(t)

	createTestPrompt(t, svc, map[string]any{"title": "Plain", "content": "c"})
	fav := createTestPrompt(t, svc, map[string]any{"title": "Starred", "content": "c", "isFavorite": true})

	rec := doJSON(t, svc, http.MethodGet, "/api/prompts?favorites=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	favs := decodeBody[[]models.Prompt](t, rec)
	require.Len(t, favs, 1)
	assert.Equal(t, fav.ID, favs[0].ID)

	rec = doJSON(t, svc, http.MethodGet, "/api/prompts?sort=title", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byTitle := decodeBody[[]models.Prompt](t, rec)
	require.Len(t, byTitle, 2)
	assert.Equal(t, "Plain", byTitle[0].Title)
}

func TestRecordUsage_BumpsCounter(t *testing.T) {
	svc := testService(t)

	p := createTestPrompt(t, svc, map[string]any{"title": "T", "content": "C"})

	rec := doJSON(t, svc, http.MethodPost, "/api/usage-history", map[string]any{
		"promptId": p.ID,
		"target":   "ChatGPT",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	usage := decodeBody[models.UsageHistory](t, rec)
	assert.Equal(t, p.ID, usage.PromptID)

	rec = doJSON(t, svc, http.MethodGet, "/api/prompts/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeBody[models.Prompt](t, rec)
	assert.Equal(t, 1, fetched.UsageCount)
	assert.NotNil(t, fetched.LastUsedAt)
}

func TestRecordUsage_UnknownPromptStillRecorded(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/usage-history", map[string]any{"promptId": "ghost"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, svc, http.MethodGet, "/api/usage-history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeBody[[]models.UsageHistory](t, rec)
	assert.Len(t, history, 1)
}

func TestRecordUsage_MissingPromptID(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/usage-history", map[string]any{"target": "clipboard"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategories_CRUDAndCount(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/categories", map[string]any{"name": "Test"})
	require.Equal(t, http.StatusCreated, rec.Code)
	cat := decodeBody[models.Category](t, rec)
	assert.Equal(t, models.DefaultCategoryIcon, cat.Icon)

	p := createTestPrompt(t, svc, map[string]any{"title": "T", "content": "C", "categoryId": cat.ID})

	rec = doJSON(t, svc, http.MethodGet, "/api/categories/"+cat.ID+"/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	count := decodeBody[map[string]int](t, rec)
	assert.Equal(t, 1, count["count"])

	// Archiving the prompt drops the count but keeps the prompt fetchable.
	rec = doJSON(t, svc, http.MethodPatch, "/api/prompts/"+p.ID, map[string]any{"isArchived": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, svc, http.MethodGet, "/api/categories/"+cat.ID+"/count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	count = decodeBody[map[string]int](t, rec)
	assert.Equal(t, 0, count["count"])

	rec = doJSON(t, svc, http.MethodGet, "/api/prompts/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Category update and delete round out the lifecycle.
	rec = doJSON(t, svc, http.MethodPatch, "/api/categories/"+cat.ID, map[string]any{"name": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decodeBody[models.Category](t, rec).Name)

	rec = doJSON(t, svc, http.MethodDelete, "/api/categories/"+cat.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, svc, http.MethodGet, "/api/categories/"+cat.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCategory_MissingName(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/categories", map[string]any{"description": "nameless"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Invalid category data", body["message"])
}

func TestSettings_GetAndPatch(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decodeBody[models.Settings](t, rec)
	assert.Equal(t, models.ThemeDark, settings.Theme)

	rec = doJSON(t, svc, http.MethodPatch, "/api/settings", map[string]any{"theme": models.ThemeLight})
	require.Equal(t, http.StatusOK, rec.Code)
	settings = decodeBody[models.Settings](t, rec)
	assert.Equal(t, models.ThemeLight, settings.Theme)
	assert.True(t, settings.AutoSave)

	rec = doJSON(t, svc, http.MethodPatch, "/api/settings", map[string]any{"exportFormat": "xml"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePrompt_EmptyInput(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/generate-prompt", map[string]any{"userInput": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, svc, http.MethodPost, "/api/generate-prompt", map[string]any{"userInput": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePrompt_NotConfigured(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodPost, "/api/generate-prompt", map[string]any{"userInput": "write a haiku"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.Contains(t, body["message"], "not configured")
}

func TestExport_Formats(t *testing.T) {
	svc := testService(t)

	createTestPrompt(t, svc, map[string]any{"title": "T", "content": "C"})

	// Default format comes from settings (json).
	rec := doJSON(t, svc, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = doJSON(t, svc, http.MethodGet, "/api/export?format=markdown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# Prompt Library")

	rec = doJSON(t, svc, http.MethodGet, "/api/export?format=csv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCategories_Seeded(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decodeBody[[]models.Category](t, rec)
	assert.Len(t, categories, 5)
}

func TestIndexPage(t *testing.T) {
	svc := testService(t)

	rec := doJSON(t, svc, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "PromptStitch")
}
