package device_test

import (
	"errors"
	"runtime"
	"slices"
	"testing"

	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/device/sim"
	"github.com/MrWong99/sotabridge/internal/fault"
)

func TestOpen_ProbesOptionalCapabilities(t *testing.T) {
	tests := []struct {
		name string
		opts sim.Options
		want []string
	}{
		{name: "all", opts: sim.Options{}, want: []string{"set_lang", "set_localize"}},
		{name: "no set_lang", opts: sim.Options{WithoutSetLang: true}, want: []string{"set_localize"}},
		{name: "none", opts: sim.Options{WithoutSetLang: true, WithoutLocalize: true}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			robot := sim.New(tt.opts)
			dc, err := device.Open(robot.Driver())
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer dc.Close()

			if got := dc.Capabilities(); !slices.Equal(got, tt.want) {
				t.Errorf("Capabilities = %v, want %v", got, tt.want)
			}
			if (dc.SetLang != nil) != slices.Contains(tt.want, "set_lang") {
				t.Errorf("SetLang presence mismatch")
			}
			if !dc.Connected() {
				t.Error("Connected = false after Open")
			}
		})
	}
}

func TestOpen_Failures(t *testing.T) {
	boom := errors.New("vsmd not reachable")
	tests := []struct {
		name string
		opts sim.Options
	}{
		{name: "connect", opts: sim.Options{ConnectErr: boom}},
		{name: "init robot", opts: sim.Options{InitErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			_, err := device.Open(sim.New(tt.opts).Driver())
			if err == nil {
				t.Fatal("Open succeeded, want error")
			}
			if !errors.Is(err, boom) {
				t.Errorf("error %v does not wrap cause", err)
			}
			if k := fault.KindOf(err); k != fault.Unavailable {
				t.Errorf("kind = %v, want unavailable", k)
			}
		})
	}
}

func TestOpen_ClosesConnectionOnInitFailure(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	robot := sim.New(sim.Options{InitErr: errors.New("servo fault")})
	if _, err := device.Open(robot.Driver()); err == nil {
		t.Fatal("Open succeeded, want error")
	}
	calls := robot.Calls()
	if len(calls) == 0 || calls[len(calls)-1] != "Close" {
		t.Errorf("last call = %v, want Close", calls)
	}
}

func TestAffinity_DetectsForeignThread(t *testing.T) {
	if !device.Enforced() {
		t.Skip("thread identity not observable on this platform")
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	a := device.Bind()
	if err := a.Check(); err != nil {
		t.Fatalf("Check on owner thread: %v", err)
	}

	errc := make(chan error, 1)
	go func() {
		// The owner thread is locked to this test goroutine, so any other
		// goroutine necessarily runs on another thread.
		errc <- a.Check()
	}()
	err := <-errc
	if !errors.Is(err, device.ErrWrongThread) {
		t.Errorf("Check from other goroutine = %v, want ErrWrongThread", err)
	}
}
