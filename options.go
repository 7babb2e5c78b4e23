package agepool

import (
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	// DefaultAgingInterval is how often the aging monitor wakes up.
	DefaultAgingInterval = 1000 * time.Millisecond

	// DefaultBoostInterval is the wait time a task must accumulate
	// to earn one boost.
	DefaultBoostInterval = 2 * time.Second

	// DefaultBoostAmount is the priority gained per full boost interval.
	DefaultBoostAmount = 20

	defaultAttempts     = 3
	defaultInitialRetry = 200 * time.Millisecond
	defaultMaxRetry     = 5 * time.Second
)

// Options configure a Pool.
//
// All zero values are replaced with sensible defaults in FillDefaults.
// A negative Workers value is rejected by New.
type Options struct {
	// Workers is the number of persistent worker goroutines.
	// Zero means one per available CPU.
	Workers int `env:"AGEPOOL_WORKERS"`

	// AgingInterval is the period of the background aging pass.
	AgingInterval time.Duration `env:"AGEPOOL_AGING_INTERVAL"`

	// BoostInterval and BoostAmount define the aging formula:
	// a resident task gains BoostAmount priority points for every
	// full BoostInterval it has been waiting.
	BoostInterval time.Duration `env:"AGEPOOL_BOOST_INTERVAL"`
	BoostAmount   int           `env:"AGEPOOL_BOOST_AMOUNT"`

	// Retry is the default retry policy applied to tasks that do
	// not carry their own.
	Retry RetryPolicy `env:"-"`

	// Metrics receives queueing and execution events.
	// Nil means no metrics are collected.
	Metrics MetricsPolicy `env:"-"`

	// PinWorkers locks each worker to an OS thread and, on Linux,
	// pins it to a CPU core.
	PinWorkers bool `env:"AGEPOOL_PIN_WORKERS"`
}

func (o *Options) FillDefaults() {
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.AgingInterval <= 0 {
		o.AgingInterval = DefaultAgingInterval
	}
	if o.BoostInterval <= 0 {
		o.BoostInterval = DefaultBoostInterval
	}
	if o.BoostAmount <= 0 {
		o.BoostAmount = DefaultBoostAmount
	}
	if o.Retry.Attempts <= 0 {
		o.Retry.Attempts = defaultAttempts
	}
	if o.Retry.Initial <= 0 {
		o.Retry.Initial = defaultInitialRetry
	}
	if o.Retry.Max <= 0 {
		o.Retry.Max = defaultMaxRetry
	}
	if o.Metrics == nil {
		o.Metrics = &NoopMetrics{}
	}
}

// OptionsFromEnv builds Options from AGEPOOL_* environment variables.
// Unset variables keep their zero value and fall back to defaults at
// construction time.
func OptionsFromEnv() (Options, error) {
	var o Options
	if err := env.Parse(&o); err != nil {
		return Options{}, err
	}
	return o, nil
}
