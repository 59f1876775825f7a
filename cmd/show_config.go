package cmd

import (
	"fmt"

	"github.com/ethpandaops/nso-version-check/internal/config"
	"github.com/spf13/cobra"
)

var showConfigPath string

var showConfigCmd = &cobra.Command{
	Use:   "show-config",
	Short: "Display current configuration",
	Long:  `Shows the current configuration loaded from the config file, environment variables and .env file.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(showConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		fmt.Println(cfg.String())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)

	showConfigCmd.Flags().StringVar(&showConfigPath, "config", "", "Path to a YAML config file")
}
