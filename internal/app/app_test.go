package app_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MrWong99/sotabridge/internal/app"
	"github.com/MrWong99/sotabridge/internal/config"
	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/device/sim"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/internal/observe"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

// testConfig returns a config bound to ephemeral local ports with scratch
// files in a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.ListenAddr = "127.0.0.1:0"
	cfg.Server.AdminAddr = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = 5 * time.Second
	dir := t.TempDir()
	cfg.Audio.PlaybackFile = filepath.Join(dir, "play.wav")
	cfg.Audio.RecordingFile = filepath.Join(dir, "rec.wav")
	return cfg
}

func testMetrics(t *testing.T) *observe.Metrics {
	t.Helper()
	m, err := observe.NewMetrics(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m
}

func shutdown(t *testing.T, a *app.App) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestApp_RunAndShutdown(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{})
	a, err := app.New(context.Background(), testConfig(t),
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- a.Run(ctx) }()

	conn, err := grpc.NewClient(a.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer conn.Close()

	rpcCtx, rpcCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer rpcCancel()

	if _, err := sotapb.NewMotionServiceClient(conn).ServoOn(rpcCtx, &sotapb.ServoOnRequest{}); err != nil {
		t.Fatalf("ServoOn: %v", err)
	}
	if !robot.ServoPowered() {
		t.Error("servos not powered after ServoOn")
	}

	hc := healthpb.NewHealthClient(conn)
	waitFor(t, func() bool {
		res, err := hc.Check(rpcCtx, &healthpb.HealthCheckRequest{Service: sotapb.MotionServiceName})
		return err == nil && res.GetStatus() == healthpb.HealthCheckResponse_SERVING
	})

	base := "http://" + a.AdminAddr().String()
	if code, _ := get(t, base+"/readyz"); code != http.StatusOK {
		t.Errorf("/readyz = %d, want 200", code)
	}
	if code, _ := get(t, base+"/healthz"); code != http.StatusOK {
		t.Errorf("/healthz = %d, want 200", code)
	}
	if code, _ := get(t, base+"/metrics"); code != http.StatusOK {
		t.Errorf("/metrics = %d, want 200", code)
	}

	cancel()
	if err := <-runErr; !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
	shutdown(t, a)

	if got := a.Worker().State(); got != kernel.Stopped {
		t.Errorf("worker state = %v, want stopped", got)
	}
	if n := robot.Violations(); n != 0 {
		t.Errorf("thread violations = %d, want 0", n)
	}
	// Idempotent.
	shutdown(t, a)
}

func TestApp_ReadyzFailsWhenDisconnected(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{})
	a, err := app.New(context.Background(), testConfig(t),
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer shutdown(t, a)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.Run(ctx) }()

	robot.Disconnect()
	// The link state is observed after the next work item.
	_ = kernel.Do(ctx, a.Worker(), "probe", func(dc *device.Context) error { return nil })

	base := "http://" + a.AdminAddr().String()
	waitFor(t, func() bool {
		code, body := get(t, base+"/readyz")
		return code == http.StatusServiceUnavailable && strings.Contains(body, "robot disconnected")
	})
}

func TestNew_ConnectFailure(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{ConnectErr: errors.New("no robot on the bus")})
	_, err := app.New(context.Background(), testConfig(t),
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err == nil {
		t.Fatal("New succeeded without a robot")
	}
	if !strings.Contains(err.Error(), "no robot on the bus") {
		t.Errorf("err = %v, want the connect cause", err)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Device.Driver = "serial"
	_, err := app.New(context.Background(), cfg,
		app.WithRegistry(config.NewRegistry()),
		app.WithMetrics(testMetrics(t)),
	)
	if !errors.Is(err, config.ErrDriverNotRegistered) {
		t.Fatalf("err = %v, want ErrDriverNotRegistered", err)
	}
}

func TestNew_RegistryDriver(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{})
	reg := config.NewRegistry()
	reg.RegisterDevice("sim", func(config.DeviceConfig) (device.Driver, error) {
		return robot.Driver(), nil
	})

	cfg := testConfig(t)
	cfg.Server.AdminAddr = ""
	a, err := app.New(context.Background(), cfg,
		app.WithRegistry(reg),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer shutdown(t, a)

	if a.AdminAddr() != nil {
		t.Errorf("admin addr = %v, want disabled", a.AdminAddr())
	}
	if got := a.Worker().State(); got != kernel.Ready {
		t.Errorf("worker state = %v, want ready", got)
	}
}

func TestNew_AppliesLanguage(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{})
	cfg := testConfig(t)
	cfg.Speech.Language = "en"
	a, err := app.New(context.Background(), cfg,
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer shutdown(t, a)

	lang, localize := robot.Language()
	if lang != "en" || localize != "en" {
		t.Errorf("language = (%q, %q), want (en, en)", lang, localize)
	}
}

func TestNew_LanguageWithoutCapability(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{WithoutSetLang: true, WithoutLocalize: true})
	cfg := testConfig(t)
	cfg.Speech.Language = "en"
	a, err := app.New(context.Background(), cfg,
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer shutdown(t, a)

	if lang, localize := robot.Language(); lang != "" || localize != "" {
		t.Errorf("language = (%q, %q), want device default", lang, localize)
	}
}

func TestNew_ListenConflict(t *testing.T) {
	t.Parallel()

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer taken.Close()

	robot := sim.New(sim.Options{})
	cfg := testConfig(t)
	cfg.Server.ListenAddr = taken.Addr().String()
	_, err = app.New(context.Background(), cfg,
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err == nil {
		t.Fatal("New succeeded on a taken port")
	}
}

func TestApp_Reload(t *testing.T) {
	t.Parallel()

	robot := sim.New(sim.Options{})
	cfg := testConfig(t)
	cfg.Server.AdminAddr = ""
	a, err := app.New(context.Background(), cfg,
		app.WithDriver(robot.Driver()),
		app.WithMetrics(testMetrics(t)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer shutdown(t, a)

	next := *cfg
	next.Motion.AwaitCompletion = false
	next.Server.ListenAddr = "127.0.0.1:1"
	a.Reload(config.Diff(cfg, &next))

	if a.Services().Motion.AwaitCompletion() {
		t.Error("await completion still enabled after reload")
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within 5s")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
