package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/rgehrsitz/itax/internal/tui"
)

func main() {
	profile := pflag.StringP("profile", "p", "", "profile to load when the file has more than one")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: itax-tui [profile-file] [--profile name]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	// Without a file the form starts empty
	configPath := ""
	if pflag.NArg() > 1 {
		pflag.Usage()
		os.Exit(1)
	}
	if pflag.NArg() == 1 {
		configPath = pflag.Arg(0)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: profile file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(configPath, *profile, nil),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
