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

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/internal/iorun"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/spf13/cobra"
)

// getRunCmd returns the run command.
func getRunCmd() *cobra.Command {
	var seedFile string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the complete study walkthrough",
		Long: `Run every study operation in one sequence.

This command:
  1. Opens the database file (creates it if needed)
  2. Drops old tables and creates new ones
  3. Inserts seed patients, clinical visits and samples
  4. Lists all patients
  5. Lists visits of one patient
  6. Lists readings above the systolic threshold
  7. Moves one sample to a new storage location
  8. Deletes one patient (visits and samples are deleted too)
  9. Lists remaining patients
 10. Closes the database

All existing study data in the file is lost.
Parameters of steps 5-8 come from the 'study' section of config.yaml.

Examples:
  biodb run
  biodb run --file my-seed.yaml
  biodb --format pretty run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("file") {
				cfg.Update([]config.Option{config.OptSeedFile(seedFile)})
			}
			return fail(runRun(context.Background(), cfg, cmd.OutOrStdout()))
		},
	}

	runCmd.Flags().StringVar(&seedFile, "file", "",
		"YAML file with seed rows (default: built-in seed)")

	return runCmd
}

func runRun(ctx context.Context, cfg *config.Config, w io.Writer) error {
	return iorun.New(cfg, iodb.NewSQLiteOperator(), w).Run(ctx)
}
