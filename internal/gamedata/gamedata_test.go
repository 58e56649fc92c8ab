package gamedata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	bundle := Load()

	require.NotEmpty(t, bundle.Categories)
	for category, characters := range bundle.Categories {
		assert.NotEmpty(t, characters, "category %q has no characters", category)
	}

	require.NotEmpty(t, bundle.StoryTemplates)
	for _, tpl := range bundle.StoryTemplates {
		assert.NotEmpty(t, tpl.Title)
		assert.True(t, strings.Contains(tpl.Template, "___"),
			"template %q has no blanks to fill", tpl.Title)
	}

	require.NotEmpty(t, bundle.DrawingThemes)
}

func TestTemplateIDsUnique(t *testing.T) {
	seen := make(map[int]bool)
	for _, tpl := range StoryTemplates {
		assert.False(t, seen[tpl.ID], "duplicate template id %d", tpl.ID)
		seen[tpl.ID] = true
	}
}
