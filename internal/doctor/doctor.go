package doctor

import "time"

// Check is one diagnostic. Checks run in the order they were added, and a
// later check may use what an earlier one loaded: FallbackCheck reads the
// model from SchemaCheck and the document from StoreCheck.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "config", "store").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// NewRunner creates a diagnostic runner with no checks.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddCheck appends a check. Checks run in insertion order.
func (r *Runner) AddCheck(c Check) {
	r.checks = append(r.checks, c)
}

// Run executes every check and returns the report.
func (r *Runner) Run() *DoctorReport {
	start := r.now()
	report := &DoctorReport{
		Timestamp: start.UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}
	for _, check := range r.checks {
		report.add(check.Run())
	}
	report.Duration = r.now().Sub(start)
	return report
}

// Fix runs every check that implements Fixer and has something to fix.
// Call it after Run.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		fixer, ok := check.(Fixer)
		if !ok || !fixer.CanFix() {
			continue
		}
		results = append(results, fixer.Fix()...)
	}
	return results
}

// Repair runs the checks, applies every available fix, and runs the checks
// again when a fix was attempted so the report describes the repaired
// state.
func (r *Runner) Repair() ([]FixResult, *DoctorReport) {
	report := r.Run()
	fixes := r.Fix()
	if len(fixes) > 0 {
		report = r.Run()
	}
	return fixes, report
}

// DoctorReport aggregates all check results with timing and summary.
type DoctorReport struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Duration is how long the checks took.
	Duration time.Duration `json:"duration_ns"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

func (r *DoctorReport) add(result *CheckResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case SeverityPass:
		r.Summary.Passed++
	case SeverityInfo:
		r.Summary.Info++
	case SeverityWarning:
		r.Summary.Warnings++
	case SeverityError:
		r.Summary.Errors++
	}
}

// Worst returns the most severe status in the report, SeverityPass for an
// empty one.
func (r *DoctorReport) Worst() Severity {
	worst := SeverityPass
	for _, res := range r.Results {
		worst = max(worst, res.Status)
	}
	return worst
}

// HasErrors returns true if any check has SeverityError.
func (r *DoctorReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *DoctorReport) HasWarnings() bool {
	return r.Summary.Warnings > 0
}
