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
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biomed-study/biodb/internal/ioschema"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getResetCmd returns the reset command.
func getResetCmd() *cobra.Command {
	var force bool

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate study tables",
		Long: `Drop Samples, Clinical_Visits and Patients tables and create them
again with all constraints and indexes.

If the database already has tables, you are asked for confirmation.
Use --force to skip it.

Examples:
  biodb reset
  biodb reset --force
  biodb reset -f`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReset(context.Background(), cfg, os.Stdin, force)
			return fail(err)
		},
	}

	resetCmd.Flags().BoolVarP(&force, "force", "f",
		false, "drop existing tables without confirmation")

	return resetCmd
}

func runReset(
	ctx context.Context,
	cfg *config.Config,
	in io.Reader,
	force bool,
) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", op.Path())

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	if hasTables && !force {
		gn.Warn("\nWarning: Database contains existing tables.")
		gn.Warn("Reset will drop ALL study tables and data.")
		fmt.Print("\nDo you want to continue? (yes/no): ")

		reader := bufio.NewReader(in)
		response, err := reader.ReadString('\n')
		if err != nil && response == "" {
			gn.Warn("Failed to read user input")
			return err
		}

		response = strings.TrimSpace(strings.ToLower(response))
		if response != "yes" && response != "y" {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	if err = ioschema.NewManager(op).Reset(ctx); err != nil {
		return err
	}

	gn.Info("Study tables created")
	gn.Info("Run 'biodb seed' to insert seed data")
	return nil
}
