// Package cmd contains CLI command definitions
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ethpandaops/nso-version-check/internal/config"
	"github.com/ethpandaops/nso-version-check/internal/suite"
	"github.com/ethpandaops/nso-version-check/internal/versioncheck"
	"github.com/ethpandaops/nso-version-check/pkg/interactive"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch interactive TUI mode",
	Long:  `Launches the interactive Terminal User Interface for nso-version-check.`,
	Run: func(_ *cobra.Command, _ []string) {
		RunInteractive()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// RunInteractive shows the main menu until the user exits.
func RunInteractive() {
	fmt.Println("NSO Version Check - Interactive Mode")
	fmt.Println("====================================")
	fmt.Println()

	var (
		lastVersion string
		lastPath    string
	)

	for {
		options := []interactive.MenuOption{
			{
				Name:        "🧪 Run Check",
				Description: "Check device firmware versions against a target version",
				Action: func() error {
					if err := interactiveCheck(&lastVersion, &lastPath); err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					}
					interactive.PauseForEnter()
					return nil
				},
			},
			{
				Name:        "📋 Show Config",
				Description: "Display current configuration",
				Action: func() error {
					cfg, err := config.Load("")
					if err != nil {
						fmt.Printf("\n❌ Error: %v\n", err)
					} else {
						fmt.Println(cfg.String())
					}
					interactive.PauseForEnter()
					return nil
				},
			},
		}

		if err := interactive.ShowMainMenu(options); err != nil {
			if errors.Is(err, interactive.ErrExit) {
				fmt.Println("Leaving nso-version-check.")
				return
			}
			log.Fatal(err)
		}

		fmt.Println()
	}
}

func interactiveCheck(lastVersion, lastPath *string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	targetVersion, err := interactive.Input("Target version:", *lastVersion)
	if err != nil {
		return err
	}

	devicesPath, err := interactive.Input("Devices list path:", *lastPath)
	if err != nil {
		return err
	}

	*lastVersion, *lastPath = targetVersion, devicesPath

	fmt.Println()
	fmt.Println(cfg.String())
	fmt.Println()

	if !interactive.Confirm(fmt.Sprintf("Check devices in %s against %s?", devicesPath, targetVersion)) {
		fmt.Println("Check canceled.")
		return nil
	}

	parser := suite.NewParser(nil)
	versioncheck.AddOptions(parser)

	if err := parser.Set(versioncheck.OptionTargetVersion, targetVersion); err != nil {
		return err
	}

	if err := parser.Set(versioncheck.OptionDevicesListPath, devicesPath); err != nil {
		return err
	}

	result, err := runVersionCheck(context.Background(), Logger, cfg, parser, os.Stdout)
	if err != nil {
		return err
	}

	if !result.OK() {
		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, result.Failed, len(result.Reports))
	}

	fmt.Printf("\n✅ All %d devices run %s\n", len(result.Reports), targetVersion)

	return nil
}
