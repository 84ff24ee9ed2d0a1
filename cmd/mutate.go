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

	"github.com/biomed-study/biodb/internal/iostudy"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getRelocateSampleCmd returns the relocate-sample command.
func getRelocateSampleCmd() *cobra.Command {
	var (
		sampleID int
		location string
	)

	relocateCmd := &cobra.Command{
		Use:   "relocate-sample",
		Short: "Change storage location of a sample",
		Long: `Set a new storage location of a sample.

Examples:
  biodb relocate-sample
  biodb relocate-sample --sample 4 --location "Freezer 2, shelf 3"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("sample") {
				opts = append(opts, config.OptStudySampleID(sampleID))
			}
			if cmd.Flags().Changed("location") {
				opts = append(opts, config.OptStudySampleLocation(location))
			}
			cfg.Update(opts)
			return fail(runRelocateSample(context.Background(), cfg))
		},
	}

	relocateCmd.Flags().IntVarP(&sampleID, "sample", "s", 0,
		"sample id (default from config)")
	relocateCmd.Flags().StringVarP(&location, "location", "l", "",
		"new storage location (default from config)")

	return relocateCmd
}

func runRelocateSample(ctx context.Context, cfg *config.Config) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	id := int64(cfg.Study.SampleID)
	loc := cfg.Study.SampleLocation
	if err = iostudy.New(op).UpdateSampleLocation(ctx, id, loc); err != nil {
		return err
	}

	gn.Info("Sample %d moved to <em>%s</em>", id, loc)
	return nil
}

// getDeletePatientCmd returns the delete-patient command.
func getDeletePatientCmd() *cobra.Command {
	var patientID int

	deleteCmd := &cobra.Command{
		Use:   "delete-patient",
		Short: "Delete a patient with visits and samples",
		Long: `Delete a patient. Clinical visits and samples of the patient are
deleted by the database together with the patient.

Examples:
  biodb delete-patient
  biodb delete-patient --patient 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("patient") {
				cfg.Update([]config.Option{config.OptStudyDeletePatientID(patientID)})
			}
			return fail(runDeletePatient(context.Background(), cfg))
		},
	}

	deleteCmd.Flags().IntVarP(&patientID, "patient", "p", 0,
		"patient id (default from config)")

	return deleteCmd
}

func runDeletePatient(ctx context.Context, cfg *config.Config) error {
	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	id := int64(cfg.Study.DeletePatientID)
	if err = iostudy.New(op).DeletePatient(ctx, id); err != nil {
		return err
	}

	gn.Info("Patient %d deleted (cascade applied)", id)
	return nil
}
