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
	"fmt"

	"github.com/biomed-study/biodb/internal/iodb"
	"github.com/biomed-study/biodb/internal/ioschema"
	"github.com/biomed-study/biodb/internal/ioseed"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/schema"
	"github.com/biomed-study/biodb/pkg/seed"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSeedCmd returns the seed command.
func getSeedCmd() *cobra.Command {
	var (
		seedFile     string
		showProgress bool
	)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert seed rows into empty study tables",
		Long: `Insert patients, clinical visits and samples into the study tables.

Tables are created when they do not exist. Seeding stops if the tables
already contain patients; run 'biodb reset' first in that case.
Patient names are hashed before they are stored.

Seed files are YAML documents with 'patients', 'clinical_visits' and
'samples' lists. Visits and samples refer to patients by their position
in the patients list, starting from 1.

Examples:
  biodb seed
  biodb seed --file my-seed.yaml --progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("file") {
				cfg.Update([]config.Option{config.OptSeedFile(seedFile)})
			}
			return fail(runSeed(context.Background(), cfg, showProgress))
		},
	}

	seedCmd.Flags().StringVar(&seedFile, "file", "",
		"YAML file with seed rows (default: built-in seed)")
	seedCmd.Flags().BoolVar(&showProgress, "progress", false,
		"show progress bar")

	return seedCmd
}

func runSeed(
	ctx context.Context,
	cfg *config.Config,
	showProgress bool,
) error {
	var data *seed.Data
	var err error
	if cfg.SeedFile != "" {
		data, err = ioseed.LoadFile(cfg.SeedFile)
	} else {
		data, err = seed.Default()
	}
	if err != nil {
		return err
	}

	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	exists, err := op.TableExists(ctx, schema.PatientsTable)
	if err != nil {
		return err
	}
	if !exists {
		gn.Info("Creating study tables...")
		if err = ioschema.NewManager(op).Create(ctx); err != nil {
			return err
		}
	}

	count, err := op.RowCount(ctx, schema.PatientsTable)
	if err != nil {
		return err
	}
	if count > 0 {
		gn.Warn("<warn>Database already has %d patients</warn>", count)
		gn.Warn("<warn>Run 'biodb reset' before seeding</warn>")
		return fmt.Errorf("database %s is not empty", op.Path())
	}

	// Seed rows refer to patients by position, so ids must start at 1.
	lastID, err := iodb.LastID(ctx, op.DB(), schema.PatientsTable)
	if err != nil {
		return err
	}
	if lastID > 0 {
		gn.Warn("<warn>Patient ids up to %d were already used</warn>", lastID)
		gn.Warn("<warn>Run 'biodb reset' before seeding</warn>")
		return fmt.Errorf("database %s has used patient ids", op.Path())
	}

	summary, err := ioseed.New(op, showProgress).Seed(ctx, data)
	if err != nil {
		return err
	}

	gn.Info("Inserted %s", summary.String())
	return nil
}
