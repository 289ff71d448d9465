package health_test

import (
	"errors"
	"testing"
	"time"

	"github.com/clustermap/blobcore/health"
)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func TestTripsDownAfterThirdFailureWithinWindow(t *testing.T) {
	clock := health.NewManualClock(time.Unix(0, 0))
	p := health.NewPolicy("node-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     3,
		RetryBackoff:  ms(500),
	}, health.WithClock(clock))

	clock.Set(time.Unix(0, 0).Add(ms(0)))
	p.OnError(nil)
	clock.Set(time.Unix(0, 0).Add(ms(100)))
	p.OnError(nil)
	clock.Set(time.Unix(0, 0).Add(ms(200)))
	p.OnError(nil)

	if !p.IsDown() {
		t.Fatal("after third error within threshold, IsDown should be true")
	}

	clock.Set(time.Unix(0, 0).Add(ms(400)))
	if !p.IsDown() {
		t.Fatal("at t=400, still within backoff, IsDown should be true")
	}
}

func TestReopensAfterBackoffExpires(t *testing.T) {
	clock := health.NewManualClock(time.Unix(0, 0))
	p := health.NewPolicy("node-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     3,
		RetryBackoff:  ms(500),
	}, health.WithClock(clock))

	clock.Set(time.Unix(0, 0).Add(ms(0)))
	p.OnError(nil)
	clock.Set(time.Unix(0, 0).Add(ms(100)))
	p.OnError(nil)
	clock.Set(time.Unix(0, 0).Add(ms(200)))
	p.OnError(nil)

	if !p.IsDown() {
		t.Fatal("after third error within threshold, IsDown should be true")
	}

	clock.Set(time.Unix(0, 0).Add(ms(701)))
	if p.IsDown() {
		t.Fatal("at t=701, past backoff, IsDown should be false")
	}
}

func TestDownWithAllThreeFailuresInsideWindow(t *testing.T) {
	base := time.Unix(0, 0)
	clock := health.NewManualClock(base)
	p := health.NewPolicy("node-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     3,
		RetryBackoff:  ms(500),
	}, health.WithClock(clock))

	clock.Set(base.Add(ms(0)))
	p.OnError(nil)
	clock.Set(base.Add(ms(500)))
	p.OnError(nil)
	clock.Set(base.Add(ms(999)))
	p.OnError(nil)

	if !p.IsDown() {
		t.Fatal("three errors all within the 1000ms window should trip down")
	}
}

func TestOnErrorAbsorbedWhileDown(t *testing.T) {
	clock := health.NewManualClock(time.Unix(0, 0))
	p := health.NewPolicy("node-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     1,
		RetryBackoff:  ms(500),
	}, health.WithClock(clock))

	p.OnError(nil)
	if !p.IsDown() {
		t.Fatal("single error at threshold=1 should trip down")
	}

	// Further errors while down must not extend or otherwise mutate state.
	clock.Set(time.Unix(0, 0).Add(ms(100)))
	p.OnError(errors.New("still failing"))

	clock.Set(time.Unix(0, 0).Add(ms(501)))
	if p.IsDown() {
		t.Fatal("backoff should have expired on schedule, unaffected by absorbed errors")
	}
}

func TestHardDownIsTerminal(t *testing.T) {
	p := health.NewPolicy("node-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     3,
		RetryBackoff:  ms(500),
		HardDown:      true,
	})

	if !p.IsHardDown() {
		t.Fatal("IsHardDown should be true")
	}
	if !p.IsDown() {
		t.Fatal("hard down resource should always report down")
	}
	p.OnError(nil)
	if !p.IsDown() {
		t.Fatal("hard down must remain down regardless of OnError")
	}
}

func TestDataNodeAndDiskHealthComposeAPolicy(t *testing.T) {
	clock := health.NewManualClock(time.Unix(0, 0))
	policy := health.NewPolicy("disk-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     1,
		RetryBackoff:  ms(500),
	}, health.WithClock(clock))

	disk := health.NewDiskHealth(policy)
	node := health.NewDataNodeHealth(policy)
	if disk.State() != health.Available {
		t.Fatal("fresh disk should be available")
	}
	if node.State() != health.Available {
		t.Fatal("fresh data node should be available")
	}
	disk.OnError(nil)
	if disk.State() != health.Unavailable {
		t.Fatal("disk should be unavailable after tripping threshold")
	}
	if node.State() != health.Unavailable {
		t.Fatal("data node sharing the tripped policy should be unavailable")
	}
}

func TestWindowEvictsOldFailures(t *testing.T) {
	base := time.Unix(0, 0)
	clock := health.NewManualClock(base)
	p := health.NewPolicy("node-1", health.Config{
		FailureWindow: ms(1000),
		Threshold:     3,
		RetryBackoff:  ms(500),
	}, health.WithClock(clock))

	clock.Set(base.Add(ms(0)))
	p.OnError(nil)
	clock.Set(base.Add(ms(1100)))
	p.OnError(nil)
	clock.Set(base.Add(ms(1200)))
	p.OnError(nil)

	if p.IsDown() {
		t.Fatal("first failure should have fallen outside the window by the third call")
	}
}
