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

	"github.com/biomed-study/biodb/internal/iooptimize"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Check and compact the database file",
		Long: `Check and compact the study database.

This command:
  1. Checks the database file for damage
  2. Finds rows that refer to missing patients
  3. Updates query planner statistics (ANALYZE)
  4. Rebuilds the file to reclaim unused space (VACUUM)

Data is never changed. Problems found in steps 1-2 stop the command.

Examples:
  biodb optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fail(runOptimize(context.Background(), cfg, cmd.OutOrStdout()))
		},
	}

	return optimizeCmd
}

func runOptimize(ctx context.Context, cfg *config.Config, w io.Writer) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	stats, err := iooptimize.NewOptimizer(op).Optimize(ctx)
	if err != nil {
		return err
	}

	out := newWriter(w, cfg)
	out.Linef("Size before: %s", humanize.Bytes(uint64(stats.SizeBefore)))
	out.Linef("Size after:  %s", humanize.Bytes(uint64(stats.SizeAfter)))
	out.Linef("Free pages reclaimed: %s", humanize.Comma(int64(stats.FreePages)))
	return nil
}
