package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sant0-9/sharpen/internal/config"
	"github.com/sant0-9/sharpen/internal/refine"
	"github.com/sant0-9/sharpen/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
}

func runTUI(cmd *cobra.Command) error {
	e, err := loadEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.close()

	app := tui.NewApp(tui.Options{
		Config:     e.cfg,
		NeedsSetup: e.needsSetup,
		Counter:    e.counter,
		Styles:     e.styles,
		Logger:     e.logger,
		NewRefiner: func(cfg *config.Config) (*refine.Refiner, error) {
			return refinerFor(cfg, e.styles, e.logger)
		},
	})

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	e.logger.Info("tui started")
	_, err = p.Run()
	return err
}
