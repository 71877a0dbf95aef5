package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/branchmate/internal/models"
)

func TestPanel_Transitions(t *testing.T) {
	t.Run("should start collapsed on home", func(t *testing.T) {
		p := New()

		assert.True(t, p.Collapsed())
		assert.Equal(t, ViewHome, p.View())
		assert.False(t, p.Showing(ViewHome))
	})

	t.Run("should expand when a view is selected", func(t *testing.T) {
		p := New()

		p.ShowSettings()
		assert.True(t, p.Showing(ViewSettings))
		assert.False(t, p.Showing(ViewHome))

		p.ShowHome()
		assert.True(t, p.Showing(ViewHome))
	})

	t.Run("should keep the view across toggles", func(t *testing.T) {
		p := New()
		p.ShowSettings()

		p.Toggle()
		assert.True(t, p.Collapsed())
		assert.Equal(t, ViewSettings, p.View())

		p.Toggle()
		assert.True(t, p.Showing(ViewSettings))
	})

	t.Run("should name views", func(t *testing.T) {
		assert.Equal(t, "home", ViewHome.String())
		assert.Equal(t, "settings", ViewSettings.String())
		assert.Equal(t, "View(7)", View(7).String())
	})
}

func TestPanel_Draft(t *testing.T) {
	t.Run("should pad loaded pairs to the table size", func(t *testing.T) {
		p := New()

		p.LoadDraft([]models.ExtraTagPair{{Branch: "be", PR: "Backend"}})

		rows := p.Draft()
		require.Len(t, rows, models.MaxExtraTagPairs)
		assert.Equal(t, models.ExtraTagPair{Branch: "be", PR: "Backend"}, rows[0])
		assert.True(t, rows[3].Empty())
		assert.False(t, p.Dirty())
	})

	t.Run("should track edits", func(t *testing.T) {
		p := New()

		require.NoError(t, p.SetRow(2, models.ExtraTagPair{Branch: "fe"}))

		assert.True(t, p.Dirty())
		assert.Equal(t, "fe", p.Draft()[1].Branch)
	})

	t.Run("should not mark unchanged rows dirty", func(t *testing.T) {
		p := New()
		p.LoadDraft([]models.ExtraTagPair{{Branch: "be"}})

		require.NoError(t, p.SetRow(1, models.ExtraTagPair{Branch: "be"}))

		assert.False(t, p.Dirty())
	})

	t.Run("should reject rows out of range", func(t *testing.T) {
		p := New()

		assert.Error(t, p.SetRow(0, models.ExtraTagPair{}))
		assert.Error(t, p.SetRow(5, models.ExtraTagPair{}))
	})

	t.Run("should not expose its internal array", func(t *testing.T) {
		p := New()
		rows := p.Draft()
		rows[0].Branch = "mutated"

		assert.Empty(t, p.Draft()[0].Branch)
	})
}
