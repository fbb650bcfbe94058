package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/shot/pkg/config"
	"github.com/kamal-hamza/shot/pkg/ui"
)

var configPathOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the shot configuration file",
	Long: `Open the configuration file in $VISUAL or $EDITOR.

A default config file is written first if none exists yet.
With --path the file location is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "Print the config file path and exit")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := appPaths.ConfigPath

	if configPathOnly {
		fmt.Fprintln(out, path)
		return nil
	}

	// Ensure it exists
	if !appPaths.ConfigExists() {
		if dryRun {
			fmt.Fprintln(out, ui.FormatInfo("No config file at "+path))
			fmt.Fprintln(out, ui.FormatInfo(dryRunMessage))
			return nil
		}
		// appConfig carries env overrides, which must not be persisted
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.FormatSuccess("Created default config: "+path))
	}

	if dryRun {
		fmt.Fprintln(out, ui.FormatInfo(dryRunMessage))
		return nil
	}

	fmt.Fprintln(out, ui.FormatInfo("Opening config: "+path))
	return OpenInEditor(path)
}
