package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/MikeSquared-Agency/sieve/internal/dialogue"
	"github.com/MikeSquared-Agency/sieve/internal/plan"
	"github.com/MikeSquared-Agency/sieve/internal/report"
	"github.com/MikeSquared-Agency/sieve/internal/screen"
)

// Config holds the runner configuration.
type Config struct {
	DryRun bool // classify and report, but write no output files
}

// Finding is a suspect dialogue and the keyword that flagged it.
type Finding struct {
	DialogueID    string
	DoctorKeyword string
}

// Runner executes filter passes over dataset files.
type Runner struct {
	cfg        Config
	classifier *screen.Classifier
	out        io.Writer
	logger     *slog.Logger
}

// New creates a runner. Console lines for the operator go to out.
func New(cfg Config, c *screen.Classifier, out io.Writer, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:        cfg,
		classifier: c,
		out:        out,
		logger:     logger,
	}
}

// Run executes a single pass: load the input, drop suspect dialogues, write
// the rest to the output.
func (r *Runner) Run(ctx context.Context, p plan.Pass) (report.PassReport, error) {
	return r.run(ctx, p, nil)
}

// run executes a pass. In dry-run mode, staged maps the output path of
// each earlier pass to the records it would have written, so a later pass can
// read them in place of a file that was never created.
func (r *Runner) run(ctx context.Context, p plan.Pass, staged map[string][]dialogue.Record) (report.PassReport, error) {
	pr := report.PassReport{Name: p.Name, Input: p.Input, Output: p.Output}

	if err := ctx.Err(); err != nil {
		return pr, err
	}

	records, ok := staged[filepath.Clean(p.Input)]
	if ok {
		r.logger.Info("dataset staged by earlier dry-run pass", "pass", p.Name, "input", p.Input, "records", len(records))
	} else {
		var err error
		records, err = dialogue.LoadFile(p.Input)
		if err != nil {
			return pr, fmt.Errorf("load input: %w", err)
		}
		r.logger.Info("dataset loaded", "pass", p.Name, "input", p.Input, "records", len(records))
	}

	res := r.classifier.Filter(records)
	pr.Total = len(records)
	pr.Kept = len(res.Kept)
	pr.SuspectIDs = res.SuspectIDs

	for _, id := range res.SuspectIDs {
		r.logger.Debug("suspect dialogue", "pass", p.Name, "dialogue_id", id)
	}

	fmt.Fprintf(r.out, "suspect dialogue_ids (doctor references media the patient never sent): %v\n", res.SuspectIDs)

	if r.cfg.DryRun {
		if staged != nil {
			staged[filepath.Clean(p.Output)] = res.Kept
		}
		fmt.Fprintf(r.out, "dry run: %d records would be kept\n", len(res.Kept))
	} else {
		if err := dialogue.WriteFile(p.Output, res.Kept); err != nil {
			return pr, fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(r.out, "saved cleaned data to %s: %d records\n", p.Output, len(res.Kept))
	}

	r.logger.Info("pass complete",
		"pass", p.Name,
		"output", p.Output,
		"total", pr.Total,
		"kept", pr.Kept,
		"suspect", pr.Suspect(),
		"dry_run", r.cfg.DryRun,
	)
	return pr, nil
}

// RunAll executes passes in order and stops at the first failure. The reports
// of the passes that completed are returned either way. In dry-run mode a pass
// whose input is an earlier pass's output reads those records from memory.
func (r *Runner) RunAll(ctx context.Context, passes []plan.Pass) ([]report.PassReport, error) {
	var done []report.PassReport
	var staged map[string][]dialogue.Record
	if r.cfg.DryRun {
		staged = make(map[string][]dialogue.Record, len(passes))
	}
	for _, p := range passes {
		select {
		case <-ctx.Done():
			r.logger.Info("run interrupted", "completed_passes", len(done))
			return done, ctx.Err()
		default:
		}

		pr, err := r.run(ctx, p, staged)
		if err != nil {
			return done, fmt.Errorf("pass %s: %w", p.Name, err)
		}
		done = append(done, pr)
	}
	return done, nil
}

// Check classifies the records of a dataset file without writing anything.
// It returns the suspect findings in input order and the record count.
func (r *Runner) Check(ctx context.Context, input string) ([]Finding, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	records, err := dialogue.LoadFile(input)
	if err != nil {
		return nil, 0, fmt.Errorf("load input: %w", err)
	}

	var findings []Finding
	for _, rec := range records {
		v := r.classifier.Explain(rec.Messages())
		if !v.Suspect {
			continue
		}
		findings = append(findings, Finding{DialogueID: rec.ID(), DoctorKeyword: v.DoctorKeyword})
	}

	r.logger.Info("dataset checked", "input", input, "records", len(records), "suspect", len(findings))
	return findings, len(records), nil
}
