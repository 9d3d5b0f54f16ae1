// Package cli provides the command-line interface for checkreg.
package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"checkreg/checkreg/internal/config"
	"checkreg/checkreg/internal/grid"
	"checkreg/checkreg/internal/logging"
	"checkreg/checkreg/internal/ui"
)

// Version information (set at build time).
var Version = "0.1.0"

// app carries what PersistentPreRunE prepares for the subcommands.
type app struct {
	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "checkreg [file]",
		Short: "Browse a comma-delimited file as a sortable, filterable grid",
		Long: `checkreg loads a comma-delimited file whose first column is an integer id
into a grid. Left click a header to filter that column, right click it to
toggle sorting.

Without a file argument the grid starts empty; Load Data opens the configured
default path or a file chooser.`,
		Args:    cobra.MaximumNArgs(1),
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.closeLog()
			return a.runGrid(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newPrintCommand(a))
	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(config.DefaultFile())
	if err != nil {
		return err
	}
	closer, err := logging.Setup(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", cfg.Log.File, err)
	}
	a.cfg = cfg
	a.logCloser = closer
	return nil
}

// closeLog is deferred by each RunE. Cobra skips post-run hooks when RunE
// fails.
func (a *app) closeLog() {
	if a.logCloser == nil {
		return
	}
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log: %v\n", err)
	}
	a.logCloser = nil
}

func (a *app) newSession() (*grid.Session, error) {
	return grid.NewSession(grid.SessionOptions{
		Locale:     a.cfg.Locale,
		IgnoreCase: a.cfg.IgnoreCase,
	})
}

func (a *app) runGrid(cmd *cobra.Command, args []string) error {
	session, err := a.newSession()
	if err != nil {
		return err
	}

	opts := ui.Options{
		DefaultPath: a.cfg.DefaultPath,
		Colors:      a.cfg.Colors,
		Hotkeys:     a.cfg.Hotkeys,
	}
	if len(args) == 1 {
		opts.DefaultPath = args[0]
		opts.LoadOnStart = true
	}

	m := ui.New(session, lipgloss.NewRenderer(os.Stdout), opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		return err
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
