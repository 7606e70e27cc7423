package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaptureRecord(t *testing.T) {
	r := NewCaptureRecord("https://example.com", "Example", "u1")

	assert.Equal(t, "https://example.com", r.URL)
	assert.Equal(t, "Example", r.Title)
	assert.Equal(t, "Simulated page content for: Example", r.Content)
	assert.Equal(t, "u1", r.UserID)
}

func TestCaptureRecord_WireNames(t *testing.T) {
	b, err := json.Marshal(NewCaptureRecord("https://example.com", "Example", "u1"))
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(b, &m))
	assert.ElementsMatch(t, []string{"url", "title", "content", "userId"}, keys(m))
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
