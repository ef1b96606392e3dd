package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	data := WelcomeData{AppName: "Lift Log", Email: "a@x.com", JoinedAt: "2025-01-01"}.ToMap()

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Lift Log", subject)
	assert.Contains(t, text, "Hi a@x.com")
	assert.Contains(t, text, "joined 2025-01-01")
	assert.Contains(t, html, "<h2>Welcome to Lift Log</h2>")
}

func TestRenderWelcomeDefaults(t *testing.T) {
	subject, _, _, err := Render(Welcome, map[string]any{"Email": "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Fitness Tracker", subject)
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render(Welcome, map[string]any{"Email": "<script>x</script>@x.com"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
