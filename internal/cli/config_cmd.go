package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hubcard/hubcard/internal/config"
	"github.com/hubcard/hubcard/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage hubcard configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("config at %s", path))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
