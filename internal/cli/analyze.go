package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/pipeline"
)

// analyzeFlags holds the flags of the analyze command.
type analyzeFlags struct {
	url         string
	format      string
	order       string
	directions  string
	output      string
	margin      int
	save        bool
	noCache     bool
	refresh     bool
	interactive bool
}

// analyzeCommand creates the analyze command.
func (c *CLI) analyzeCommand() *cobra.Command {
	var flags analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Report the entities a bug can reach from outside the walls",
		Long: `Analyze decodes a blueprint exchange string and flood-fills it from outside
its bounding extent. Walls stop the fill; every other entity it touches is
reported as unsafe.

The exchange string is read from the file argument, from stdin when the
argument is "-" or missing, or downloaded with --url.`,
		Example: `  wallcheck analyze base.txt
  wallcheck analyze --format map < base.txt
  wallcheck analyze --url https://example.com/base.txt --format svg -o base.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "download the exchange string from this URL")
	cmd.Flags().StringVarP(&flags.format, "format", "f", pipeline.FormatText, "output format: "+strings.Join(pipeline.ValidFormats, ", "))
	cmd.Flags().StringVar(&flags.order, "order", "", "traversal order: lifo or fifo (default from config)")
	cmd.Flags().StringVar(&flags.directions, "direction-encoding", "", "direction encoding: eight-way or four-way (default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the output to a file instead of stdout")
	cmd.Flags().IntVar(&flags.margin, "margin", 1, "empty cells drawn around map output")
	cmd.Flags().BoolVar(&flags.save, "save", false, "save the report to the configured store")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the cache for this run")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached reports and downloads")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse unsafe entities interactively")

	cmd.MarkFlagsMutuallyExclusive("interactive", "output")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, stdin io.Reader, stdout io.Writer, args []string, flags analyzeFlags) error {
	if flags.output != "" {
		if err := wcerrors.ValidatePath(flags.output); err != nil {
			return err
		}
	}
	if flags.interactive && !isTerminal(stdout) {
		return errors.New("--interactive requires a terminal")
	}

	opts, err := c.analyzeOptions(stdin, args, flags)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := startSpinner(ctx, os.Stderr, "Analyzing blueprint...")
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d entities", result.Stats.EntityCount),
		"unsafe", result.Stats.UnsafeCount,
		"cached", result.CacheInfo.ReportHit)

	if flags.save {
		c.Logger.Info("Saved report", "id", result.Report.ID)
	}

	if flags.interactive {
		gridMap, err := pipeline.Render(ctx, result, pipeline.FormatMap, opts)
		if err != nil {
			return err
		}
		return browseUnsafe(result.Report, string(gridMap))
	}

	data := result.Artifacts[flags.format]
	if flags.output != "" {
		if err := os.WriteFile(flags.output, data, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if result.Report.Safe() {
			printSuccess("%s", safeMessage)
		} else {
			printWarning("%d unsafe entities", len(result.Report.Unsafe))
		}
		printFile(flags.output)
		return nil
	}

	if flags.format == pipeline.FormatText && isTerminal(stdout) {
		writeReport(stdout, result)
		if !result.Report.Safe() && !flags.save {
			printNextStep("Inspect the breach", "wallcheck analyze --format map")
		}
		return nil
	}
	_, err = stdout.Write(data)
	return err
}

// analyzeOptions builds pipeline options from flags and configuration.
// Flags override the configured analysis defaults.
func (c *CLI) analyzeOptions(stdin io.Reader, args []string, flags analyzeFlags) (pipeline.Options, error) {
	cfg, err := c.config()
	if err != nil {
		return pipeline.Options{}, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		URL:        flags.url,
		Order:      cfg.Analysis.Order,
		Directions: cfg.Analysis.DirectionEncoding,
		MaxArea:    cfg.Analysis.MaxArea,
		Formats:    []string{flags.format},
		Margin:     flags.margin,
		Save:       flags.save,
		Refresh:    flags.refresh,
		Catalog:    catalog,
		Logger:     c.Logger,
	}
	if flags.order != "" {
		opts.Order = flags.order
	}
	if flags.directions != "" {
		opts.Directions = flags.directions
	}

	if flags.url != "" {
		if len(args) > 0 {
			return pipeline.Options{}, errors.New("a file argument and --url are mutually exclusive")
		}
		return opts, nil
	}

	raw, err := readInput(stdin, args)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts.Blueprint = raw
	return opts, nil
}

// readInput reads args[0], or stdin when args is empty or "-".
func readInput(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(io.LimitReader(stdin, wcerrors.MaxBlueprintLength+1))
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
