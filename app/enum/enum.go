// Package enum defines the enumerated values used across duskmode.
package enum

//go:generate go run github.com/go-pkgz/enum@latest -type theme -lower
type theme int

const (
	themeDark theme = iota
	themeLight
)
