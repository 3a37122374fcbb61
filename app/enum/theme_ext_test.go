package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme_Toggle(t *testing.T) {
	tests := []struct {
		current  Theme
		expected Theme
	}{
		{Theme{}, ThemeDark},
		{ThemeLight, ThemeDark},
		{ThemeDark, ThemeLight},
	}

	for _, tc := range tests {
		t.Run(tc.current.String()+"->"+tc.expected.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.current.Toggle())
		})
	}
}

func TestTheme_IndicatorPosition(t *testing.T) {
	assert.Equal(t, "right center", ThemeDark.IndicatorPosition())
	assert.Equal(t, "left center", ThemeLight.IndicatorPosition())
	assert.Equal(t, "right center", Theme{}.IndicatorPosition(), "unset theme shows dark position")
}

func TestFromDark(t *testing.T) {
	assert.Equal(t, ThemeDark, FromDark(true))
	assert.Equal(t, ThemeLight, FromDark(false))
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"dark", ThemeDark, false},
		{"light", ThemeLight, false},
		{"", Theme{}, true},
		{"Dark", Theme{}, true},
		{"system", Theme{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTheme(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
