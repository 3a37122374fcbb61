package theme

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskmode/duskmode/app/enum"
)

func TestPage_Render(t *testing.T) {
	page := NewPage(WithToggleControl())
	assert.Equal(t, template.HTMLAttr(""), page.RootAttr())
	assert.Equal(t, template.CSS(""), page.ControlStyle())

	page.SetTheme(enum.ThemeLight)
	ctl, ok := page.ToggleControl()
	assert.True(t, ok)
	ctl.SetBackgroundPosition(enum.ThemeLight.IndicatorPosition())

	assert.Equal(t, template.HTMLAttr(`data-theme="light"`), page.RootAttr())
	assert.Equal(t, template.CSS("background-position: left center"), page.ControlStyle())
}

func TestPage_NoControl(t *testing.T) {
	page := NewPage()
	_, ok := page.ToggleControl()
	assert.False(t, ok)
	assert.Empty(t, page.Indicator())
}

func TestPage_ChangeHook(t *testing.T) {
	var changes []string
	page := NewPage(WithChangeHook(func(prev, next enum.Theme) {
		changes = append(changes, prev.String()+">"+next.String())
	}))

	page.SetTheme(enum.ThemeDark)
	page.SetTheme(enum.ThemeDark)
	page.SetTheme(enum.ThemeLight)

	assert.Equal(t, []string{">dark", "dark>light"}, changes)
}
