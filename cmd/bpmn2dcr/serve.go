package main

import (
	"github.com/spf13/cobra"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/errors"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/httpapi"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/logging"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the translation service over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			logger := logging.New(cfg.LogLevel)
			server := httpapi.NewServer(logger)

			logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting bpmn2dcr http service")
			if err := server.Start(cfg.HTTPAddr); err != nil {
				return errors.NewInternalError("http server stopped", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default from config, e.g. :8080)")
	return cmd
}
