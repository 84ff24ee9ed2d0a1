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

	"github.com/biomed-study/biodb/internal/iostudy"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/report"
	"github.com/spf13/cobra"
)

// getPatientsCmd returns the patients command.
func getPatientsCmd() *cobra.Command {
	var all bool

	patientsCmd := &cobra.Command{
		Use:   "patients",
		Short: "List patients",
		Long: `List patients ordered by id.

By default prints patient id, name hash, age and enrollment date.
Use --all to print every column.

Examples:
  biodb patients
  biodb patients --all --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPatients(context.Background(), cfg, cmd.OutOrStdout(), all)
			return fail(err)
		},
	}

	patientsCmd.Flags().BoolVarP(&all, "all", "a", false,
		"print all columns")

	return patientsCmd
}

func runPatients(
	ctx context.Context,
	cfg *config.Config,
	w io.Writer,
	all bool,
) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	st := iostudy.New(op)
	out := newWriter(w, cfg)

	if all {
		rows, err := st.Patients(ctx)
		if err != nil {
			return err
		}
		return report.Rows(out, rows)
	}

	rows, err := st.AllPatients(ctx)
	if err != nil {
		return err
	}
	return report.Rows(out, rows)
}

// getVisitsCmd returns the visits command.
func getVisitsCmd() *cobra.Command {
	var patientID int

	visitsCmd := &cobra.Command{
		Use:   "visits",
		Short: "List clinical visits of a patient",
		Long: `List visit date and systolic pressure of every visit of a patient,
ordered by visit date.

Examples:
  biodb visits
  biodb visits --patient 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("patient") {
				cfg.Update([]config.Option{config.OptStudyPatientID(patientID)})
			}
			return fail(runVisits(context.Background(), cfg, cmd.OutOrStdout()))
		},
	}

	visitsCmd.Flags().IntVarP(&patientID, "patient", "p", 0,
		"patient id (default from config)")

	return visitsCmd
}

func runVisits(ctx context.Context, cfg *config.Config, w io.Writer) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	rows, err := iostudy.New(op).VisitsForPatient(ctx, int64(cfg.Study.PatientID))
	if err != nil {
		return err
	}
	return report.Rows(newWriter(w, cfg), rows)
}

// getHypertensiveCmd returns the hypertensive command.
func getHypertensiveCmd() *cobra.Command {
	var threshold int

	hypertensiveCmd := &cobra.Command{
		Use:   "hypertensive",
		Short: "List systolic readings above a threshold",
		Long: `List distinct patient id, name hash and systolic pressure of every
visit with systolic pressure strictly above the threshold.

Examples:
  biodb hypertensive
  biodb hypertensive --threshold 150`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("threshold") {
				cfg.Update([]config.Option{config.OptStudySystolicThreshold(threshold)})
			}
			err := runHypertensive(context.Background(), cfg, cmd.OutOrStdout())
			return fail(err)
		},
	}

	hypertensiveCmd.Flags().IntVarP(&threshold, "threshold", "t", 0,
		"systolic pressure threshold in mmHg (default from config)")

	return hypertensiveCmd
}

func runHypertensive(ctx context.Context, cfg *config.Config, w io.Writer) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	rows, err := iostudy.New(op).HypertensivePatients(ctx, cfg.Study.SystolicThreshold)
	if err != nil {
		return err
	}
	return report.Rows(newWriter(w, cfg), rows)
}
