package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hairizuanbinnoorazman/flashprobe/probe"
	"github.com/hairizuanbinnoorazman/flashprobe/storage"
)

// Report is the exported JSON artifact of one probe run.
type Report struct {
	Target      string             `json:"target"`
	Suite       string             `json:"suite"`
	Status      probe.Status       `json:"status"`
	Passed      int                `json:"passed"`
	Failed      int                `json:"failed"`
	Skipped     int                `json:"skipped"`
	Total       int                `json:"total"`
	GeneratedAt time.Time          `json:"generated_at"`
	Steps       []probe.StepResult `json:"steps"`
}

// NewReport assembles an exportable report from a finished run.
func NewReport(target, suite string, sum probe.Summary, results []probe.StepResult) *Report {
	return &Report{
		Target:      target,
		Suite:       suite,
		Status:      sum.Status(),
		Passed:      sum.Passed,
		Failed:      sum.Failed,
		Skipped:     sum.Skipped,
		Total:       sum.Total(),
		GeneratedAt: time.Now().UTC(),
		Steps:       results,
	}
}

// Export serializes the report and uploads it under the given name,
// returning the location of the stored artifact.
func (r *Report) Export(ctx context.Context, store storage.BlobStorage, name string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := store.Upload(ctx, name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return store.GetURL(ctx, name)
}
