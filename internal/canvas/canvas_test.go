package canvas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLayerToggling(t *testing.T) {
	cs := NewStore(DefaultConfig(), "lines")
	before := cs.State()

	cs.AddLayer("bounds")
	cs.AddLayer("bounds")
	assert.Equal(t, []string{"lines", "bounds"}, cs.State().ActiveLayers)
	assert.Equal(t, []string{"lines"}, before.ActiveLayers, "earlier snapshot unchanged")

	cs.ToggleLayer("lines")
	assert.Equal(t, []string{"bounds"}, cs.State().ActiveLayers)
	cs.ToggleLayer("lines")
	assert.True(t, cs.State().IsActive("lines"))

	cs.RemoveLayer("nope")
	cs.ClearLayers()
	assert.Empty(t, cs.State().ActiveLayers)
}

func TestSetConfigPartial(t *testing.T) {
	cs := NewStore(DefaultConfig())
	w := 1024.0
	cs.SetConfig(PartialConfig{Width: &w})
	assert.Equal(t, Config{Width: 1024, Height: 600, Background: "#000000"}, cs.State().Config)

	bg := ""
	cs.SetConfig(PartialConfig{Background: &bg})
	assert.Equal(t, "", cs.State().Config.Background)
}

func TestRenderingFlags(t *testing.T) {
	cs := NewStore(DefaultConfig())
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cs.SetRendering(true, now)
	assert.True(t, cs.State().Rendering)
	assert.True(t, cs.State().LastRender.IsZero())

	cs.SetRendering(false, now)
	assert.False(t, cs.State().Rendering)
	assert.Equal(t, now, cs.State().LastRender)

	later := now.Add(time.Second)
	cs.MarkRendered(later)
	assert.Equal(t, later, cs.State().LastRender)
}
