package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PassReport is the outcome of one filter pass.
type PassReport struct {
	Name       string   `json:"name"`
	Input      string   `json:"input"`
	Output     string   `json:"output"`
	Total      int      `json:"total"`
	Kept       int      `json:"kept"`
	SuspectIDs []string `json:"suspect_ids"`
}

// Suspect returns the number of records dropped by the pass.
func (p PassReport) Suspect() int {
	return len(p.SuspectIDs)
}

// Report records a sieve run so a cleaning session can be audited later.
type Report struct {
	RunID      uuid.UUID    `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	DryRun     bool         `json:"dry_run"`
	Passes     []PassReport `json:"passes"`
}

// New starts a report for a run.
func New(dryRun bool) *Report {
	return &Report{
		RunID:     uuid.New(),
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
		Passes:    []PassReport{},
	}
}

// Add appends a pass outcome.
func (r *Report) Add(p PassReport) {
	if p.SuspectIDs == nil {
		p.SuspectIDs = []string{}
	}
	r.Passes = append(r.Passes, p)
}

// Finish stamps the end time.
func (r *Report) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Save writes the report as indented JSON, creating parent directories.
func (r *Report) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
