package properties

import (
	"errors"
	"fmt"
	"time"
)

// Batch configures the scheduled-task runner.
type Batch struct {
	Enabled bool  `mapstructure:"enabled"`
	Jobs    []Job `mapstructure:"jobs"`
}

// Job describes a single scheduled task. Exactly one of FixedRate and
// FixedDelay must be set: fixed rate fires on a steady interval regardless of
// run duration, fixed delay waits for the previous run to finish first.
type Job struct {
	// Name must match a task registered with the scheduler.
	Name         string        `mapstructure:"name"`
	FixedRate    time.Duration `mapstructure:"fixed-rate"`
	FixedDelay   time.Duration `mapstructure:"fixed-delay"`
	InitialDelay time.Duration `mapstructure:"initial-delay"`
	// Jitter adds up to this much random delay to every firing.
	Jitter time.Duration `mapstructure:"jitter"`
	// MaxRuns stops the job after this many runs. Zero means unbounded.
	MaxRuns int `mapstructure:"max-runs"`
}

// Interval returns whichever of the two trigger durations is set.
func (j *Job) Interval() time.Duration {
	if j.FixedRate > 0 {
		return j.FixedRate
	}
	return j.FixedDelay
}

// Validate checks every configured job.
func (b *Batch) Validate() error {
	var errs []error
	for i, job := range b.Jobs {
		prefix := fmt.Sprintf("batch.jobs[%d]", i)
		if job.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name: required", prefix))
		}
		if job.FixedRate > 0 && job.FixedDelay > 0 {
			errs = append(errs, &MutuallyExclusiveError{Keys: []string{
				prefix + ".fixed-rate",
				prefix + ".fixed-delay",
			}})
		}
		if job.FixedRate <= 0 && job.FixedDelay <= 0 {
			errs = append(errs, fmt.Errorf("%s: one of fixed-rate or fixed-delay is required", prefix))
		}
		if job.InitialDelay < 0 {
			errs = append(errs, fmt.Errorf("%s.initial-delay: cannot be negative", prefix))
		}
		if job.Jitter < 0 {
			errs = append(errs, fmt.Errorf("%s.jitter: cannot be negative", prefix))
		}
		if job.MaxRuns < 0 {
			errs = append(errs, fmt.Errorf("%s.max-runs: cannot be negative", prefix))
		}
	}
	return errors.Join(errs...)
}
