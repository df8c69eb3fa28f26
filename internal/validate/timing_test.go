// internal/validate/timing_test.go
package validate

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tamzrod/modbus-preflight/internal/config"
)

// ---- helpers ----

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

func sensor(name string, addr int) config.Entity {
	return config.Entity{Name: name, Address: addr, InputType: "holding"}
}

func hubWith(name string, sensors ...config.Entity) config.Hub {
	return config.Hub{
		Name:    name,
		Type:    config.KindTCP,
		Host:    "10.0.0.8",
		Port:    "502",
		Timeout: config.DefaultTimeout,
		Sensors: sensors,
	}
}

// ---- tests ----

func TestTiming_TimeoutClampedBelowMinInterval(t *testing.T) {
	log, logs := observed()

	disabled := sensor("disabled", 1)
	disabled.ScanInterval = intp(0)
	fast := sensor("fast", 2)
	fast.ScanInterval = intp(3)
	slow := sensor("slow", 3)
	slow.ScanInterval = intp(30)

	hub := hubWith("plant", disabled, fast, slow)
	hub.Timeout = 10

	out := Timing([]config.Hub{hub}, log)

	// the disabled entity is excluded, min interval is 3
	if out[0].Timeout != 2 {
		t.Fatalf("timeout = %d, want 2", out[0].Timeout)
	}

	// one warning for the low interval, one for the adjustment
	if n := logs.Len(); n != 2 {
		t.Fatalf("warnings = %d, want 2: %v", n, logs.All())
	}
}

func TestTiming_DefaultAppliedAndWrittenBack(t *testing.T) {
	log, _ := observed()

	hub := hubWith("plant", sensor("bare", 1))
	out := Timing([]config.Hub{hub}, log)

	e := out[0].Sensors[0]
	if e.ScanInterval == nil || *e.ScanInterval != DefaultScanInterval {
		t.Fatalf("interval not resolved onto entity: %v", e.ScanInterval)
	}
	if out[0].Timeout != config.DefaultTimeout {
		t.Fatalf("timeout changed without cause: %d", out[0].Timeout)
	}
}

func TestTiming_ZeroIntervalStaysDisabled(t *testing.T) {
	log, logs := observed()

	off := sensor("off", 1)
	off.ScanInterval = intp(0)

	out := Timing([]config.Hub{hubWith("plant", off)}, log)

	if got := *out[0].Sensors[0].ScanInterval; got != 0 {
		t.Fatalf("disabled interval rewritten: %d", got)
	}
	if logs.Len() != 0 {
		t.Fatalf("disabled entity must not warn: %v", logs.All())
	}
}

func TestTiming_LowIntervalAppliedWithWarning(t *testing.T) {
	log, logs := observed()

	fast := sensor("fast", 1)
	fast.ScanInterval = intp(2)

	out := Timing([]config.Hub{hubWith("plant", fast)}, log)

	if got := *out[0].Sensors[0].ScanInterval; got != 2 {
		t.Fatalf("low interval not applied: %d", got)
	}
	// timeout 3 > min-1 == 1, clamped to 1
	if out[0].Timeout != 1 {
		t.Fatalf("timeout = %d, want 1", out[0].Timeout)
	}
	if logs.Len() != 2 {
		t.Fatalf("warnings = %d, want 2: %v", logs.Len(), logs.All())
	}
}

func TestTiming_MinIntervalOneNeverClamps(t *testing.T) {
	log, _ := observed()

	e := sensor("every-second", 1)
	e.ScanInterval = intp(1)

	hub := hubWith("plant", e)
	hub.Timeout = 10

	out := Timing([]config.Hub{hub}, log)
	if out[0].Timeout != 10 {
		t.Fatalf("timeout clamped at min interval 1: %d", out[0].Timeout)
	}
}

func TestTiming_SecondRunLeavesTimeoutAlone(t *testing.T) {
	log, _ := observed()

	fast := sensor("fast", 1)
	fast.ScanInterval = intp(3)
	hub := hubWith("plant", fast)
	hub.Timeout = 10

	out := Timing([]config.Hub{hub}, log)
	if out[0].Timeout != 2 {
		t.Fatalf("timeout = %d, want 2", out[0].Timeout)
	}

	log2, logs2 := observed()
	out = Timing(out, log2)
	if out[0].Timeout != 2 {
		t.Fatalf("second run moved timeout: %d", out[0].Timeout)
	}
	// the low-interval warning repeats, the adjustment does not
	for _, entry := range logs2.All() {
		if entry.Message == "timeout adjusted to stay below the minimum scan interval" {
			t.Fatalf("second run re-adjusted timeout")
		}
	}
}
