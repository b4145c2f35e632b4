package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/optrack/internal/logging"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, checking OPTRACK_SERVER env var first.
func defaultServer() string {
	if s := os.Getenv("OPTRACK_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the optrack CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "optrack",
		Short: "optrack: operator workflow tracking",
		Long:  "optrack lists, filters and updates operator report submissions on an optrack server.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(flagLogLevel), flagLogFormat, cmd.ErrOrStderr())
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "optrack server URL (or OPTRACK_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newListCmd(),
		newArchivedCmd(),
		newStatsCmd(),
		newShowCmd(),
		newSetStatusCmd(),
		newCommentCmd(),
		newTasksCmd(),
		newRemindersCmd(),
		newActivityCmd(),
		newExportCmd(),
	)

	return root
}
