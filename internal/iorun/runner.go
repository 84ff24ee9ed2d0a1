// Package iorun implements the Runner interface: the full study
// walkthrough from connecting to the database to closing it.
package iorun

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/biomed-study/biodb/internal/ioschema"
	"github.com/biomed-study/biodb/internal/ioseed"
	"github.com/biomed-study/biodb/internal/iostudy"
	"github.com/biomed-study/biodb/pkg/config"
	"github.com/biomed-study/biodb/pkg/db"
	"github.com/biomed-study/biodb/pkg/lifecycle"
	"github.com/biomed-study/biodb/pkg/report"
	"github.com/biomed-study/biodb/pkg/seed"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

type runner struct {
	cfg      *config.Config
	operator db.Operator
	out      *report.Writer
	log      *slog.Logger
}

// New creates a Runner that prints its report to w.
func New(cfg *config.Config, op db.Operator, w io.Writer) lifecycle.Runner {
	return &runner{
		cfg:      cfg,
		operator: op,
		out:      report.New(w, cfg.Report.Format),
	}
}

// Run executes the walkthrough. The connection is closed when Run
// returns, also after a failed step.
func (r *runner) Run(ctx context.Context) (err error) {
	start := time.Now()
	r.log = slog.With("run_id", uuid.New().String())
	r.log.Info("Starting study run", "database", r.cfg.Database.Path)

	if err = r.operator.Connect(ctx, &r.cfg.Database); err != nil {
		return err
	}
	defer func() {
		closeErr := r.operator.Close()
		if err != nil {
			r.log.Error("Study run failed", "error", err)
			if closeErr != nil {
				r.log.Error("Failed to close database", "error", closeErr)
			}
			return
		}
		if closeErr != nil {
			err = closeErr
			return
		}
		r.out.Line("\nDatabase closed successfully")
		r.log.Info("Study run complete",
			"duration", gnfmt.TimeString(time.Since(start).Seconds()))
	}()
	r.out.Line("Database connected")

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"reset schema", r.resetSchema},
		{"seed", r.seed},
		{"all patients", r.allPatients},
		{"patient visits", r.patientVisits},
		{"hypertensive patients", r.hypertensive},
		{"relocate sample", r.relocateSample},
		{"delete patient", r.deletePatient},
		{"remaining patients", r.remainingPatients},
	}

	for _, step := range steps {
		stepStart := time.Now()
		if err = step.fn(ctx); err != nil {
			return err
		}
		r.log.Debug("Step finished",
			"step", step.name,
			"duration", gnfmt.TimeString(time.Since(stepStart).Seconds()),
		)
	}
	return nil
}

func (r *runner) resetSchema(ctx context.Context) error {
	sm := ioschema.NewManager(r.operator)
	if err := sm.Drop(ctx); err != nil {
		return err
	}
	r.out.Line("Old tables dropped (if existed)")

	if err := sm.Create(ctx); err != nil {
		return err
	}
	r.out.Line("Tables created successfully\n")
	return nil
}

func (r *runner) seed(ctx context.Context) error {
	data, err := r.seedData()
	if err != nil {
		return err
	}

	summary, err := ioseed.New(r.operator, false).Seed(ctx, data)
	if err != nil {
		return err
	}
	r.log.Info("Seed finished", "rows", summary.String())
	r.out.Line("Data inserted successfully\n")
	return nil
}

func (r *runner) seedData() (*seed.Data, error) {
	if r.cfg.SeedFile != "" {
		return ioseed.LoadFile(r.cfg.SeedFile)
	}
	return seed.Default()
}

func (r *runner) allPatients(ctx context.Context) error {
	rows, err := iostudy.New(r.operator).AllPatients(ctx)
	if err != nil {
		return err
	}

	r.out.Line("All Patients:")
	if err = report.Rows(r.out, rows); err != nil {
		return err
	}
	r.out.Separator()
	return nil
}

func (r *runner) patientVisits(ctx context.Context) error {
	id := r.cfg.Study.PatientID
	rows, err := iostudy.New(r.operator).VisitsForPatient(ctx, int64(id))
	if err != nil {
		return err
	}

	r.out.Linef("Visits for Patient ID = %d:", id)
	if err = report.Rows(r.out, rows); err != nil {
		return err
	}
	r.out.Separator()
	return nil
}

func (r *runner) hypertensive(ctx context.Context) error {
	threshold := r.cfg.Study.SystolicThreshold
	rows, err := iostudy.New(r.operator).HypertensivePatients(ctx, threshold)
	if err != nil {
		return err
	}

	r.out.Linef("Patients with Systolic BP > %d:", threshold)
	if err = report.Rows(r.out, rows); err != nil {
		return err
	}
	r.out.Separator()
	return nil
}

func (r *runner) relocateSample(ctx context.Context) error {
	st := iostudy.New(r.operator)
	id := int64(r.cfg.Study.SampleID)
	err := st.UpdateSampleLocation(ctx, id, r.cfg.Study.SampleLocation)
	if err != nil {
		return err
	}
	r.out.Line("Sample storage location updated\n")
	return nil
}

func (r *runner) deletePatient(ctx context.Context) error {
	st := iostudy.New(r.operator)
	id := int64(r.cfg.Study.DeletePatientID)
	if err := st.DeletePatient(ctx, id); err != nil {
		return err
	}
	r.out.Line("Patient deleted (cascade applied)\n")
	return nil
}

func (r *runner) remainingPatients(ctx context.Context) error {
	rows, err := iostudy.New(r.operator).Patients(ctx)
	if err != nil {
		return err
	}

	r.out.Line("Remaining Patients:")
	return report.Rows(r.out, rows)
}
