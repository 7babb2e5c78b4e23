package agepool_test

import (
	"runtime"
	"testing"
	"time"

	ap "github.com/Andrej220/go-utils/agepool"
)

func TestFillDefaults(t *testing.T) {
	var o ap.Options
	o.FillDefaults()

	if o.Workers != runtime.GOMAXPROCS(0) {
		t.Fatalf("Workers = %d; want GOMAXPROCS (%d)", o.Workers, runtime.GOMAXPROCS(0))
	}
	if o.AgingInterval != ap.DefaultAgingInterval {
		t.Fatalf("AgingInterval = %v; want %v", o.AgingInterval, ap.DefaultAgingInterval)
	}
	if o.BoostInterval != ap.DefaultBoostInterval {
		t.Fatalf("BoostInterval = %v; want %v", o.BoostInterval, ap.DefaultBoostInterval)
	}
	if o.BoostAmount != ap.DefaultBoostAmount {
		t.Fatalf("BoostAmount = %d; want %d", o.BoostAmount, ap.DefaultBoostAmount)
	}
	if o.Metrics == nil {
		t.Fatal("Metrics not defaulted")
	}
	if o.Retry.Attempts <= 0 || o.Retry.Initial <= 0 || o.Retry.Max <= 0 {
		t.Fatalf("retry policy not defaulted: %+v", o.Retry)
	}
}

func TestFillDefaultsKeepsExplicit(t *testing.T) {
	o := ap.Options{
		Workers:       3,
		AgingInterval: 20 * time.Millisecond,
		BoostInterval: 40 * time.Millisecond,
		BoostAmount:   7,
	}
	o.FillDefaults()

	if o.Workers != 3 || o.AgingInterval != 20*time.Millisecond ||
		o.BoostInterval != 40*time.Millisecond || o.BoostAmount != 7 {
		t.Fatalf("explicit values overwritten: %+v", o)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("AGEPOOL_WORKERS", "5")
	t.Setenv("AGEPOOL_AGING_INTERVAL", "250ms")
	t.Setenv("AGEPOOL_BOOST_INTERVAL", "1s")
	t.Setenv("AGEPOOL_BOOST_AMOUNT", "30")
	t.Setenv("AGEPOOL_PIN_WORKERS", "true")

	o, err := ap.OptionsFromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if o.Workers != 5 {
		t.Fatalf("Workers = %d; want 5", o.Workers)
	}
	if o.AgingInterval != 250*time.Millisecond {
		t.Fatalf("AgingInterval = %v; want 250ms", o.AgingInterval)
	}
	if o.BoostInterval != time.Second {
		t.Fatalf("BoostInterval = %v; want 1s", o.BoostInterval)
	}
	if o.BoostAmount != 30 {
		t.Fatalf("BoostAmount = %d; want 30", o.BoostAmount)
	}
	if !o.PinWorkers {
		t.Fatal("PinWorkers not parsed")
	}
}

func TestOptionsFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("AGEPOOL_WORKERS", "many")

	if _, err := ap.OptionsFromEnv(); err == nil {
		t.Fatal("expected parse error for non-numeric worker count")
	}
}
