package batch

import (
	"errors"
	"fmt"
	"time"
)

// Outcome is what happened to one material.
type Outcome uint8

const (
	// Skipped means the material name did not match the allow-list.
	Skipped Outcome = iota

	// Generated means a normal map was written.
	Generated

	// Failed means the material was eligible but processing failed.
	Failed

	// Planned means a dry run would have generated the material.
	Planned
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Generated:
		return "generated"
	case Failed:
		return "failed"
	case Planned:
		return "planned"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Result is the outcome for one material.
type Result struct {
	Material string
	Outcome  Outcome
	Output   string // written (or planned) file, empty when skipped or failed
	Err      error
}

// Failure records a material that could not be processed.
type Failure struct {
	Material string
	Err      error
}

// Error implements error.
func (f Failure) Error() string {
	return f.Material + ": " + f.Err.Error()
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }

// Progress is reported after each material.
type Progress struct {
	Done     int
	Total    int
	Material string
	Outcome  Outcome
}

// Report summarizes a batch run. Results are in manifest order and only
// cover materials reached before cancellation.
type Report struct {
	RunID   string
	Total   int
	Results []Result
	Failed  []Failure
	Elapsed time.Duration
}

// Count returns how many results have outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Outputs returns the files written (or planned) by the run.
func (r *Report) Outputs() []string {
	var out []string
	for _, res := range r.Results {
		if res.Output != "" {
			out = append(out, res.Output)
		}
	}
	return out
}

// Err joins all failures, or returns nil when every material succeeded.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}
