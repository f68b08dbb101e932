package cli

import (
	"github.com/spf13/cobra"

	"tasktrack/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
}

// NewRootCommand creates the root cobra command with all subcommands
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "tasktrack",
		Short: "A task tracking service with a Telegram front-end",
		Long: `Tasktrack is a small task-tracking system: an HTTP service that persists
tasks (name + deadline) in an embedded SQLite store, and a Telegram bot
that collects tasks through a short dialogue and relays them to the service.

COMMANDS:
  tasktrack serve       # Run the task store HTTP service
  tasktrack bot         # Run the Telegram bot
  tasktrack inspect     # Dump the task database in tabular form

CONFIGURATION:
  Configuration is read from environment variables with built-in defaults.

  Database:
    TB_DB_DIR                   Database directory (default: ~/.tasktrack)
    TB_DB_FILENAME              Database filename (default: tasks.db)
    TB_DB_QUERY_TIMEOUT         Query timeout (default: 10s)
    TB_DB_WRITE_TIMEOUT         Write timeout (default: 5s)

  HTTP service:
    TB_HTTP_HOST                Listen host (default: 0.0.0.0)
    TB_HTTP_PORT                Listen port (default: 8000)

  Bot:
    TB_BOT_TOKEN                Telegram bot token (required for 'bot')
    TB_API_URL                  Task service base URL (default: http://localhost:8000)
    TB_API_TIMEOUT              Per-request timeout (default: 10s)

  Validation:
    TB_TASK_NAME_MAX            Max task name length (default: 100)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addSubcommands registers all subcommands with the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(NewServeCommand(r.config))
	r.cmd.AddCommand(NewBotCommand(r.config))
	r.cmd.AddCommand(NewInspectCommand(r.config))
}
