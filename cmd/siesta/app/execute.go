package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/entalpic/siesta/cmd/siesta/cmd/deps"
	"github.com/entalpic/siesta/cmd/siesta/cmd/docs"
	"github.com/entalpic/siesta/cmd/siesta/cmd/pat"
	"github.com/entalpic/siesta/cmd/siesta/cmd/project"
	"github.com/entalpic/siesta/cmd/siesta/cmd/version"
	"github.com/entalpic/siesta/pkg/logging"
)

// Execute runs the siesta CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "siesta",
		Short:   "Python documentation scaffolding",
		Version: a.version,
		Long: `siesta sets up and maintains the Sphinx documentation of Python projects.

Boilerplate is fetched from the siesta repository on GitHub (a Personal Access
Token is required, see "siesta set-github-pat --help") or from the copy bundled
in this binary with --local.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "docs", Title: "Documentation Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "setup", Title: "Setup Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $XDG_CONFIG_HOME/siesta/config.yaml or ./.siesta.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolP("yes", "y", false, "answer yes to every confirmation")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.SetVersionTemplate("siesta {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetBool(cmd, "yes"),
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(docs.NewCommand(a))
	rootCmd.AddCommand(project.NewCommand(a))

	rootCmd.AddCommand(pat.NewCommand(a))
	rootCmd.AddCommand(deps.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
