/*
Copyright © 2026 biodb authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/biomed-study/biodb/internal/iofs"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show database file and row counts",
		Long: `Show the database file, its size and the number of rows of every
study table. A missing database file is not created.

Examples:
  biodb status
  biodb --db /tmp/study.db status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fail(runStatus(context.Background(), cfg, cmd.OutOrStdout()))
		},
	}

	return statusCmd
}

func runStatus(ctx context.Context, cfg *config.Config, w io.Writer) error {
	path := cfg.Database.Path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		gn.Info("Database <em>%s</em> does not exist", path)
		gn.Info("Run 'biodb run' or 'biodb seed' to create it")
		return nil
	}

	size, err := iofs.FileSize(path)
	if err != nil {
		return err
	}

	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	out := newWriter(w, cfg)
	out.Linef("Database: %s", path)
	out.Linef("Size:     %s", humanize.Bytes(uint64(size)))

	for _, table := range schema.TableNames() {
		exists, err := op.TableExists(ctx, table)
		if err != nil {
			return err
		}
		if !exists {
			out.Linef("%-16s missing", table+":")
			continue
		}

		count, err := op.RowCount(ctx, table)
		if err != nil {
			return err
		}
		out.Linef("%-16s %s rows", table+":", humanize.Comma(int64(count)))
	}
	return nil
}
