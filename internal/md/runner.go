package md

import "context"

// Runner drives one batch simulation over a Stepper, collecting the
// energy series, metrics and the final drift report.
type Runner struct {
	stepper   *Stepper
	metrics   []Metric
	observers []Observer
}

// NewRunner validates params and allocates run state.
func NewRunner(p Params) (*Runner, error) {
	stepper, err := NewStepper(p)
	if err != nil {
		return nil, err
	}
	return &Runner{stepper: stepper}, nil
}

// AddMetric registers a metric observed at every step.
func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

// AddObserver registers a per-step observer.
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run executes Steps+1 iterations: step 0 initializes and evaluates,
// fixing the baseline; every later step integrates with the previous
// step's forces and re-evaluates. Cancelling ctx returns the partial
// result with the context's error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	for _, m := range r.metrics {
		m.Reset()
	}

	p := r.stepper.Params()
	result := &Result{
		Samples: make([]Sample, 0, p.Steps+1),
		Metrics: make(map[string]float64),
	}

	e, err := r.stepper.Start()
	if err != nil {
		return nil, err
	}
	result.Baseline = r.stepper.Baseline()
	r.record(result)

	for !r.stepper.Done() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e = r.stepper.Step()

		if p.ValidateState && !r.stepper.System().Valid() {
			return result, &RunError{
				Step:    r.stepper.StepIndex(),
				Time:    r.stepper.Time(),
				Wrapped: ErrInvalidState,
			}
		}

		r.record(result)
		result.StepsTaken++
	}

	result.Potential = e.Potential
	result.Kinetic = e.Kinetic
	result.Drift = r.stepper.Drift()

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Runner) record(result *Result) {
	e := r.stepper.Energies()
	t := r.stepper.Time()
	result.Samples = append(result.Samples, Sample{
		Step:      r.stepper.StepIndex(),
		Time:      t,
		Potential: e.Potential,
		Kinetic:   e.Kinetic,
	})
	for _, m := range r.metrics {
		m.Observe(r.stepper.System(), e, t)
	}
	for _, o := range r.observers {
		o.OnStep(r.stepper.StepIndex(), t, e)
	}
}
