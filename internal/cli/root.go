// Package cli implements the tmi-report command-line interface.
//
// The CLI loads a TMI threat-model JSON export, applies rendering
// preferences and branding from an optional TOML file, and writes the
// generated PDF report. All commands support --verbose (-v) for
// debug-level logging; loggers travel through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version,
// typically injected by the main package via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the tmi-report CLI and returns an error if any command
// fails. The logger is attached to the context and accessible to all
// commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "tmi-report",
		Short:        "tmi-report renders TMI threat models as PDF reports",
		Long:         `tmi-report turns a TMI threat-model export (assets, diagrams, threats, notes, documents, repositories) into a paginated, styled PDF report.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tmi-report %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())

	return root.ExecuteContext(ctx)
}
