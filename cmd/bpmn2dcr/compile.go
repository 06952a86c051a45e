package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/cliutil"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/emit"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/errors"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/ingest"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/logging"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/translate"
)

func newCompileCommand() *cobra.Command {
	var outputPath string
	var debugFlows bool

	cmd := &cobra.Command{
		Use:   "compile [file.bpmn]",
		Short: "Translate a BPMN process into a DCR graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := logging.New(cfg.LogLevel)

			inputPath := ""
			if len(args) == 1 {
				inputPath = args[0]
			} else {
				inputPath, err = pickBPMNFile(".")
				if err != nil {
					return errors.NewUsageError(err.Error())
				}
			}

			chain := cliutil.NewValidationChain().
				ValidateFilePath(inputPath, "input file").
				ValidateFileExtension(inputPath, []string{".bpmn"}, "input file")
			if !chain.Valid() {
				return chain.Error()
			}

			if outputPath == "" {
				base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
				outputPath = base + ".dcr.xml"
			}

			ctx := context.Background()
			logger.Info().Str("input", inputPath).Msg("parsing and validating BPMN model")

			proc, err := ingest.ReadFile(ctx, inputPath)
			if err != nil {
				return errors.NewIOError("failed to read BPMN file", err)
			}

			if debugFlows {
				printFlows(cmd, proc)
			}

			validated, err := bpmn.Validate(proc)
			if err != nil {
				printValidationErrors(cmd, err)
				return errors.NewCompileError(err)
			}
			logger.Info().Msg("BPMN model is valid")

			logger.Info().Msg("translating BPMN objects to DCR graph")
			graph := translate.Translate(validated)

			logger.Info().Str("output", outputPath).Msg("generating DCR XML file")
			if err := emit.WriteFile(ctx, outputPath, graph); err != nil {
				return errors.NewIOError("failed to write DCR file", err)
			}

			printSuccess(cmd, inputPath, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path for the generated DCR XML (default: <input>.dcr.xml)")
	cmd.Flags().BoolVar(&debugFlows, "debug-flows", false, "print every sequence flow as a source -> target label pair before validating")
	return cmd
}

func printFlows(cmd *cobra.Command, proc *bpmn.Process) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Sequence flows:")
	for _, fv := range proc.RelationCentricView() {
		fmt.Fprintf(out, "  %s -> %s\n", fv.SourceLabel, fv.TargetLabel)
	}
}

func printValidationErrors(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, "BPMN model validation failed. Please fix the following issue(s):")
	if merr, ok := err.(*multierror.Error); ok {
		for i, e := range merr.Errors {
			fmt.Fprintf(out, "  %d. %s\n", i+1, e.Error())
		}
		return
	}
	fmt.Fprintf(out, "  1. %s\n", err.Error())
}

func printSuccess(cmd *cobra.Command, inputPath, outputPath string) {
	out := cmd.OutOrStdout()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		md := fmt.Sprintf("# Translation complete\n\n- **Input:** `%s`\n- **Output:** `%s`\n", inputPath, outputPath)
		rendered, err := glamour.Render(md, "dark")
		if err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprintf(out, "Translation finished. Output file is available at: %s\n", outputPath)
}
