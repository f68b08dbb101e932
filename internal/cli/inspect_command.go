package cli

import (
	"github.com/spf13/cobra"

	"tasktrack/internal/config"
	"tasktrack/internal/inspect"
)

// NewInspectCommand creates the command that dumps the task database
func NewInspectCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Dump the task database in tabular form",
		Long: `Connects directly to the SQLite database file and prints all tasks
ordered by ID. Read-only; the service is bypassed entirely.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return inspect.Dump(cfg.GetDatabasePath(), cmd.OutOrStdout())
		},
	}
}
