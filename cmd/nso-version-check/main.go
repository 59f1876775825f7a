// Package main is the entry point for the nso-version-check application
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethpandaops/nso-version-check/cmd"
	"github.com/joho/godotenv"
)

const (
	envFlag      = "--env"
	envFlagEqual = "--env="
	defaultEnv   = ".env"
)

func main() {
	envFile, runTUI, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !runTUI {
		cmd.Execute()
		return
	}

	if err := loadEnvFile(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading env file: %v\n", err)
		os.Exit(1)
	}

	// Pick up LOG_LEVEL from the env file
	cmd.InitLogger()
	cmd.RunInteractive()
}

// parseArgs extracts the --env file and reports whether the arguments hold nothing but it,
// in which case interactive mode runs.
func parseArgs(args []string) (envFile string, runTUI bool, err error) {
	rest := 0

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == envFlag:
			if i+1 >= len(args) {
				return "", false, fmt.Errorf("%s flag requires a value", envFlag) //nolint:err113 // cli usage error
			}
			envFile = args[i+1]
			i++
		case strings.HasPrefix(arg, envFlagEqual):
			envFile = strings.TrimPrefix(arg, envFlagEqual)
		default:
			rest++
		}
	}

	return envFile, rest == 0, nil
}

// loadEnvFile loads the specified environment file
func loadEnvFile(file string) error {
	if file == "" {
		file = defaultEnv
	}

	if err := godotenv.Load(file); err != nil {
		// If it's the default .env file and it doesn't exist, that's okay
		if file == defaultEnv && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}
