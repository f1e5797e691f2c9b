package plan

import (
	"context"
	"fmt"
	"log/slog"

	"scantidy/internal/xnat"
)

// Outcome is the result of applying one plan item.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// ItemResult pairs one plan item with its execution outcome.
type ItemResult struct {
	Item    Item    `json:"item"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
}

// Report collects the per-item outcomes of one plan execution.
type Report struct {
	Subject string       `json:"subject"`
	Results []ItemResult `json:"results"`
}

// Count returns the number of results with the given outcome.
func (r Report) Count(outcome Outcome) int {
	total := 0
	for _, result := range r.Results {
		if result.Outcome == outcome {
			total++
		}
	}
	return total
}

// Failed reports whether any item failed.
func (r Report) Failed() bool {
	return r.Count(OutcomeFailed) > 0
}

// Executor applies update plans through the repository client.
type Executor struct {
	writer xnat.FieldWriter
	logger *slog.Logger
}

// NewExecutor builds an Executor. The logger may be nil.
func NewExecutor(writer xnat.FieldWriter, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{writer: writer, logger: logger}
}

// Execute applies every item in the plan, unusable bucket first, and returns
// the per-item report. With overwrite false, an item whose target field no
// longer holds its default value is skipped rather than clobbered. Remote
// failures are recorded and the remaining items still run.
func (e *Executor) Execute(ctx context.Context, p Plan, overwrite bool) Report {
	report := Report{Subject: p.Subject}
	ref := xnat.ScanRef{Project: p.Project, Subject: p.Subject, Experiment: p.SessionID}

	for _, item := range append(append([]Item{}, p.Unusable...), p.Rename...) {
		ref.Scan = item.ScanID
		result := e.apply(ctx, ref, item, overwrite)
		report.Results = append(report.Results, result)
		e.logger.Info("applied plan item",
			"subject", p.Subject,
			"scan", item.ScanID,
			"field", item.Field,
			"new_value", item.NewValue,
			"outcome", string(result.Outcome),
			"reason", result.Reason,
		)
	}
	return report
}

func (e *Executor) apply(ctx context.Context, ref xnat.ScanRef, item Item, overwrite bool) ItemResult {
	if !overwrite {
		current, err := e.writer.GetScanField(ctx, ref, item.Field)
		if err != nil {
			return ItemResult{Item: item, Outcome: OutcomeFailed, Reason: fmt.Sprintf("read current value: %v", err)}
		}
		if current == item.NewValue {
			return ItemResult{Item: item, Outcome: OutcomeSkipped, Reason: "already set"}
		}
		if !isDefaultValue(item.Field, current, item.CurrentValue) {
			return ItemResult{
				Item:    item,
				Outcome: OutcomeSkipped,
				Reason:  fmt.Sprintf("field holds %q, not the snapshot value; re-run with overwrite to replace", current),
			}
		}
	}

	if err := e.writer.SetScanField(ctx, ref, item.Field, item.NewValue); err != nil {
		return ItemResult{Item: item, Outcome: OutcomeFailed, Reason: err.Error()}
	}
	return ItemResult{Item: item, Outcome: OutcomeSuccess}
}
