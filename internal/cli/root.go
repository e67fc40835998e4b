package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "yusra",
		Short: "Yusra - kanban boards in your terminal",
		Long: `Yusra is a terminal client for the Yusra kanban service.

Run it without arguments to open the board browser. Workspaces hold boards,
boards hold columns, and columns hold cards you can rearrange with the keyboard.`,
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/yusra/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log API requests at debug level")
}

// Execute runs the root command
func Execute(version, commit, date string) error {
	addCommands(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func addCommands(version, commit, date string) {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(devServerCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yusra %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
