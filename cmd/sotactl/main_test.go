package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/MrWong99/sotabridge/internal/app"
	"github.com/MrWong99/sotabridge/internal/config"
	"github.com/MrWong99/sotabridge/internal/device/sim"
	"github.com/MrWong99/sotabridge/internal/observe"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		host    string
		port    int
		want    string
		wantErr bool
	}{
		{host: "192.168.1.10", want: "192.168.1.10:8080"},
		{host: "192.168.1.10:9000", want: "192.168.1.10:9000"},
		{host: "192.168.1.10:9000", port: 7000, want: "192.168.1.10:7000"},
		{host: "sota.local", port: 50051, want: "sota.local:50051"},
		{host: "sota.local:http", wantErr: true},
		{host: ":8080", wantErr: true},
		{host: "sota.local", port: 70000, wantErr: true},
	}
	for _, tc := range tests {
		got, err := target(tc.host, tc.port)
		if tc.wantErr {
			if err == nil {
				t.Errorf("target(%q, %d) = %q, want error", tc.host, tc.port, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("target(%q, %d) = %q, %v; want %q", tc.host, tc.port, got, err, tc.want)
		}
	}
}

func TestRun_MissingHost(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(context.Background(), nil, &out, &errOut); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if !strings.Contains(errOut.String(), "usage") {
		t.Errorf("stderr = %q, want usage", errOut.String())
	}
}

func TestRun_AgainstSimulatedBridge(t *testing.T) {
	robot := sim.New(sim.Options{SpeechRate: time.Millisecond})
	m, err := observe.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	cfg := config.Default()
	cfg.Server.ListenAddr = "127.0.0.1:0"
	cfg.Server.AdminAddr = ""
	dir := t.TempDir()
	cfg.Audio.PlaybackFile = filepath.Join(dir, "play.wav")
	cfg.Audio.RecordingFile = filepath.Join(dir, "rec.wav")

	a, err := app.New(context.Background(), cfg, app.WithDriver(robot.Driver()), app.WithMetrics(m))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = a.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = a.Shutdown(sctx)
	})

	robot.Hear("hello robot")

	var out, errOut bytes.Buffer
	args := []string{"-pause", "0s", "-recognize", "2s", "-text", "hi", a.Addr().String()}
	if code := run(context.Background(), args, &out, &errOut); code != 0 {
		t.Fatalf("exit code = %d\nstdout:\n%s\nstderr:\n%s", code, out.String(), errOut.String())
	}
	for _, want := range []string{
		"ServoOn successful.",
		"ServoOff successful.",
		"Synthesize successful.",
		"PlayAudio successful: true",
		`basic_result="hello robot"`,
		"All tests finished",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
	if robot.ServoPowered() {
		t.Error("servos still powered after the run")
	}
	if n := robot.Violations(); n != 0 {
		t.Errorf("thread violations = %d, want 0", n)
	}
}
