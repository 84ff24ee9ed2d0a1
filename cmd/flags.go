package cmd

import (
	"context"
	"io"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/db"
	"github.com/biomed-study/biodb/pkg/report"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	dbPath       string
	reportFormat string
)

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"SQLite database file (default from config)")
	cmd.PersistentFlags().StringVar(&reportFormat, "format", "",
		"report format: tuple, json or pretty")
}

// flagOptions converts persistent flags set by the user to options.
// Flags override values from the config file and environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	if f := cmd.Flag("db"); f != nil && f.Changed {
		res = append(res, config.OptDatabasePath(dbPath))
	}
	if f := cmd.Flag("format"); f != nil && f.Changed {
		res = append(res, config.OptReportFormat(reportFormat))
	}
	return res
}

// connect opens the configured database. The caller closes the
// returned operator.
func connect(ctx context.Context, cfg *config.Config) (db.Operator, error) {
	op := iodb.NewSQLiteOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	return op, nil
}

func newWriter(w io.Writer, cfg *config.Config) *report.Writer {
	return report.New(w, cfg.Report.Format)
}

// fail prints the user message of err and returns err.
func fail(err error) error {
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}
