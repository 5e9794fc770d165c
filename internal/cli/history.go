package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wallcheck/pkg/config"
	wcerrors "github.com/matzehuels/wallcheck/pkg/errors"
	"github.com/matzehuels/wallcheck/pkg/report"
	"github.com/matzehuels/wallcheck/pkg/store"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		limit  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "history [id]",
		Short: "List saved reports, or show one",
		Long: `History lists the reports saved with "analyze --save", newest first. Pass
a report ID to print that report.

Reports are kept in the store configured under [store] in the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if cfg.Store.Backend == "" || cfg.Store.Backend == store.BackendNone {
				printInfo("The report store is disabled")
				printDetail("Set [store] backend to %q or %q in %s", store.BackendSQLite, store.BackendMongo, config.DefaultPath())
				return nil
			}

			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if len(args) == 1 {
				return showReport(cmd.Context(), cmd.OutOrStdout(), st, args[0], format)
			}
			return listReports(cmd.Context(), cmd.OutOrStdout(), st, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of reports to list")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "report format when showing one report: text, json or yaml")

	return cmd
}

func listReports(ctx context.Context, w io.Writer, st store.Store, limit int) error {
	reports, err := st.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		printInfo("No saved reports")
		printNextStep("Save one with", "wallcheck analyze --save")
		return nil
	}
	if isTerminal(w) {
		writeHistory(w, reports)
		return nil
	}
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), r.EntityCount, len(r.Unsafe), r.Label)
	}
	return nil
}

func showReport(ctx context.Context, w io.Writer, st store.Store, id, format string) error {
	if err := wcerrors.ValidateReportID(id); err != nil {
		return err
	}
	r, err := st.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return wcerrors.New(wcerrors.ErrCodeNotFound, "report %s not found", id)
	}
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return report.EncodeJSON(w, r)
	case "yaml":
		return report.EncodeYAML(w, r)
	case "text":
		if isTerminal(w) {
			printKeyValue("ID", r.ID)
			printKeyValue("Created", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return report.EncodeText(w, r)
	}
	return wcerrors.New(wcerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, json, yaml)", format)
}
