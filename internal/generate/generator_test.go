package generate

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Unconfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no credentials", cfg: Config{}},
		{name: "base URL only", cfg: Config{BaseURL: "https://example.test/v1"}},
		{name: "API key only", cfg: Config{APIKey: "sk-test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.cfg)
			assert.False(t, g.Configured())

			_, err := g.Generate(context.Background(), "write a haiku")
			assert.ErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestNew_Configured(t *testing.T) {
	g := New(Config{
		BaseURL: "https://example.test/v1",
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
	})
	require.True(t, g.Configured())
}

func TestUpstreamStatus_TransportError(t *testing.T) {
	err := errors.New("connection refused")
	assert.Equal(t, http.StatusInternalServerError, UpstreamStatus(err))
}
