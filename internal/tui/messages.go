package tui

import (
	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Profile"
	case SceneResults:
		return "Comparison"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ProfileLoadedMsg carries the profile used to prefill the form
type ProfileLoadedMsg struct {
	Profile *config.Profile
}

// ComparisonCompleteMsg carries the result of an old vs new comparison
type ComparisonCompleteMsg struct {
	Comparison *compare.RegimeComparison
	Err        error
}
