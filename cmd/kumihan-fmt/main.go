package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/kumihan-go/formatter/diag"
	"github.com/kumihan-go/formatter/kumihan"
	"github.com/kumihan-go/formatter/logging"
	"github.com/kumihan-go/formatter/stream"
)

var (
	flagOutput     string
	flagTemplate   string
	flagErrorLevel string
	flagSourceView bool
	flagChunkBytes int
	flagLogLevel   string
	flagLogFormat  string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(int(kumihan.ExitInternalError))
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "kumihan-fmt <input>",
		Short:        "Convert Kumihan notation to HTML",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runConvert,
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output HTML file (default: input path with .html appended)")
	cmd.Flags().StringVar(&flagTemplate, "template", "", "named template to render with")
	cmd.Flags().StringVar(&flagErrorLevel, "error-level", "normal", "strict|normal|lenient|ignore")
	cmd.Flags().BoolVar(&flagSourceView, "source-view", false, "include the original source in the rendered context")
	cmd.Flags().IntVar(&flagChunkBytes, "chunk-threshold-bytes", 0, "enable the streaming driver above this input size (0 disables it)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "debug|info|warn|error")
	cmd.Flags().StringVar(&flagLogFormat, "log-format", "console", "console|logfmt|json")
	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	handler, err := logging.NewHandler(os.Stderr, flagLogLevel, flagLogFormat)
	if err != nil {
		return fmt.Errorf("kumihan-fmt: %w", err)
	}
	logger := slog.New(handler)

	inputPath := args[0]
	outputPath := flagOutput
	if outputPath == "" {
		outputPath = inputPath + ".html"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	opts := kumihan.Options{
		TemplateName:        flagTemplate,
		IncludeSourceView:   flagSourceView,
		ErrorLevel:          diag.ErrorLevel(flagErrorLevel),
		ChunkThresholdBytes: flagChunkBytes,
		CancellationContext: ctx,
		ProgressCallback: func(p stream.Progress) {
			logger.Info("progress", "percent", p.ProgressPercent, "rate", p.ProcessingRate, "eta_seconds", p.ETASeconds)
		},
	}

	code, err := kumihan.Convert(inputPath, outputPath, opts)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		os.Exit(int(code))
	}
	logger.Info("conversion complete", "output", outputPath)
	return nil
}
