package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/config"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/errors"
)

var (
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "bpmn2dcr",
		Short: "Compile BPMN process models into DCR graphs",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newCompileCommand())
	root.AddCommand(newServeCommand())

	if err := root.Execute(); err != nil {
		if cliErr, ok := errors.IsCLIError(err); ok {
			fmt.Fprintln(os.Stderr, cliErr.Error())
			if cliErr.Type == errors.ErrorTypeInternal {
				if stack := errors.StackTrace(cliErr.Err); stack != "" {
					fmt.Fprintln(os.Stderr, stack)
				}
			}
			os.Exit(cliErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}
