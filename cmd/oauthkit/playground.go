package main

import (
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/oauthkit/oauthkit/internal/tui"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Browse providers and inspect their flow wiring interactively",
	Run:   runPlayground,
}

func runPlayground(cmd *cobra.Command, args []string) {
	defer func() {
		if r := recover(); r != nil {
			pterm.Error.Printf("\nCaught panic: %v\n", r)
			pterm.Error.Printf("%s\n", debug.Stack())
			os.Exit(2)
		}
	}()

	p := tea.NewProgram(tui.NewAppModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		pterm.Error.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
