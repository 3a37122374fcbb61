package enum

// Indicator positions of the toggle control, one per theme.
const (
	IndicatorDark  = "right center"
	IndicatorLight = "left center"
)

// Toggle returns the opposite theme (dark↔light). Anything that isn't dark toggles to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IndicatorPosition returns the background-position of the toggle control for the theme.
func (t Theme) IndicatorPosition() string {
	if t == ThemeLight {
		return IndicatorLight
	}
	return IndicatorDark
}

// FromDark maps a "prefers dark" flag to a theme.
func FromDark(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}
