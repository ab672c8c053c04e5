// Package app wires the bridge subsystems into a running server.
//
// The App struct owns the full lifecycle: New opens the device on the worker
// and builds the gRPC and admin servers, Run serves until the context ends,
// and Shutdown tears everything down in order.
//
// For testing, inject a driver or listeners via functional options
// (WithDriver, WithListener). When an option is not provided, New creates
// real implementations from the config.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MrWong99/sotabridge/internal/config"
	"github.com/MrWong99/sotabridge/internal/device"
	"github.com/MrWong99/sotabridge/internal/health"
	"github.com/MrWong99/sotabridge/internal/kernel"
	"github.com/MrWong99/sotabridge/internal/observe"
	"github.com/MrWong99/sotabridge/internal/rpc"
	"github.com/MrWong99/sotabridge/pkg/sotapb"
)

// healthInterval is how often readiness is mirrored into the gRPC health
// service.
const healthInterval = 2 * time.Second

// App owns all subsystem lifetimes of the bridge.
type App struct {
	cfg      *config.Config
	registry *config.Registry
	metrics  *observe.Metrics
	log      *slog.Logger

	// Subsystems, initialised in New and torn down in Shutdown.
	driver   device.Driver
	recorder device.Recorder
	worker   *kernel.Worker
	services *rpc.Services
	grpcSrv  *grpc.Server
	grpcHC   *grpchealth.Server
	checks   *health.Handler
	admin    *http.Server

	lis      net.Listener
	adminLis net.Listener

	group       *errgroup.Group
	stopWatch   context.CancelFunc
	runningOnce sync.Once
	stopOnce    sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithDriver injects a device driver instead of creating one from config.
func WithDriver(d device.Driver) Option {
	return func(a *App) { a.driver = d }
}

// WithRegistry sets the driver registry used to resolve device.driver.
func WithRegistry(r *config.Registry) Option {
	return func(a *App) { a.registry = r }
}

// WithMetrics overrides the metrics sink. Defaults to
// [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithListener injects the gRPC listener instead of binding
// server.listen_addr.
func WithListener(l net.Listener) Option {
	return func(a *App) { a.lis = l }
}

// WithAdminListener injects the admin HTTP listener instead of binding
// server.admin_addr.
func WithAdminListener(l net.Listener) Option {
	return func(a *App) { a.adminLis = l }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App. It opens the device on the worker thread before
// anything is served; failing to open the device is fatal and returned as an
// error. Listeners are bound here so that address conflicts surface early.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{cfg: cfg, log: slog.Default().With("component", "app")}
	for _, o := range opts {
		o(a)
	}
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	// ── 1. Device driver and recorder ────────────────────────────────────
	if err := a.initDevice(); err != nil {
		return nil, fmt.Errorf("app: init device: %w", err)
	}

	// ── 2. Worker ────────────────────────────────────────────────────────
	a.worker = kernel.NewWorker(a.driver,
		kernel.WithMetrics(a.metrics),
		kernel.WithLogger(slog.Default().With("component", "worker")),
	)
	if err := a.worker.Start(ctx); err != nil {
		return nil, fmt.Errorf("app: start device worker: %w", err)
	}
	if err := a.applyLanguage(ctx); err != nil {
		a.abort()
		return nil, fmt.Errorf("app: set speech language: %w", err)
	}

	// ── 3. gRPC services ─────────────────────────────────────────────────
	a.services = rpc.New(rpc.Config{
		Queue:           a.worker,
		Recorder:        a.recorder,
		PlaybackFile:    cfg.Audio.PlaybackFile,
		RecordingFile:   cfg.Audio.RecordingFile,
		AwaitCompletion: cfg.Motion.AwaitCompletion,
		Metrics:         a.metrics,
	})
	a.grpcSrv = grpc.NewServer(
		grpc.MaxRecvMsgSize(cfg.Server.MaxRecvMsgSize),
		grpc.ForceServerCodec(sotapb.Codec{}),
		grpc.UnaryInterceptor(observe.UnaryServerInterceptor(a.metrics)),
	)
	a.services.Register(a.grpcSrv)
	a.grpcHC = grpchealth.NewServer()
	healthpb.RegisterHealthServer(a.grpcSrv, a.grpcHC)

	// ── 4. Health and admin HTTP ─────────────────────────────────────────
	a.checks = health.New(health.Checker{Name: "device_worker", Check: a.worker.Check})
	if cfg.Server.AdminAddr != "" || a.adminLis != nil {
		mux := http.NewServeMux()
		a.checks.Register(mux)
		mux.Handle("GET /metrics", promhttp.Handler())
		a.admin = &http.Server{
			Handler:           observe.Middleware(a.metrics)(mux),
			ReadHeaderTimeout: 10 * time.Second,
		}
	}

	// ── 5. Listeners ─────────────────────────────────────────────────────
	if err := a.listen(); err != nil {
		a.abort()
		return nil, fmt.Errorf("app: %w", err)
	}

	a.log.Info("bridge initialised",
		"driver", cfg.Device.Driver,
		"capabilities", a.worker.Capabilities(),
		"listen_addr", a.lis.Addr().String(),
		"await_completion", cfg.Motion.AwaitCompletion,
	)
	return a, nil
}

// ─── Init helpers ────────────────────────────────────────────────────────────

// initDevice resolves the driver from config unless one was injected and
// creates the recorder on the calling goroutine.
func (a *App) initDevice() error {
	if a.driver == nil {
		if a.registry == nil {
			return errors.New("no driver injected and no driver registry configured")
		}
		drv, err := a.registry.CreateDevice(a.cfg.Device)
		if err != nil {
			return err
		}
		a.driver = drv
	}
	rec, err := a.driver.NewRecorder()
	if err != nil {
		return fmt.Errorf("create recorder: %w", err)
	}
	if rec == nil {
		return errors.New("create recorder: driver returned no recorder")
	}
	a.recorder = rec
	return nil
}

// applyLanguage switches recognition and synthesis to speech.language when
// the device supports it.
func (a *App) applyLanguage(ctx context.Context) error {
	lang := a.cfg.Speech.Language
	if lang == "" {
		return nil
	}
	return kernel.Do(ctx, a.worker, "set_language", func(dc *device.Context) error {
		if dc.SetLang == nil && dc.SetLocalize == nil {
			a.log.Warn("device cannot switch language, keeping default", "language", lang)
			return nil
		}
		if dc.SetLang != nil {
			if err := dc.SetLang(lang); err != nil {
				return err
			}
		}
		if dc.SetLocalize != nil {
			return dc.SetLocalize(lang)
		}
		return nil
	})
}

func (a *App) listen() error {
	var err error
	if a.lis == nil {
		if a.lis, err = net.Listen("tcp", a.cfg.Server.ListenAddr); err != nil {
			return fmt.Errorf("listen %s: %w", a.cfg.Server.ListenAddr, err)
		}
	}
	if a.admin != nil && a.adminLis == nil {
		if a.adminLis, err = net.Listen("tcp", a.cfg.Server.AdminAddr); err != nil {
			_ = a.lis.Close()
			return fmt.Errorf("listen admin %s: %w", a.cfg.Server.AdminAddr, err)
		}
	}
	return nil
}

// abort releases what New acquired when a later step fails.
func (a *App) abort() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout(a.cfg))
	defer cancel()
	if err := a.worker.Stop(ctx); err != nil {
		a.log.Warn("device worker stop failed", "err", err)
	}
}

// ShutdownTimeout returns server.shutdown_timeout, or the default when unset.
func ShutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.Server.ShutdownTimeout <= 0 {
		return config.DefaultShutdownTimeout
	}
	return cfg.Server.ShutdownTimeout
}

// ─── Accessors ───────────────────────────────────────────────────────────────

// Addr returns the gRPC listen address.
func (a *App) Addr() net.Addr { return a.lis.Addr() }

// AdminAddr returns the admin HTTP address, or nil when the admin server is
// disabled.
func (a *App) AdminAddr() net.Addr {
	if a.adminLis == nil {
		return nil
	}
	return a.adminLis.Addr()
}

// Worker returns the device worker.
func (a *App) Worker() *kernel.Worker { return a.worker }

// Services returns the gRPC service implementations.
func (a *App) Services() *rpc.Services { return a.services }

// ─── Run ─────────────────────────────────────────────────────────────────────

// Run serves gRPC and admin HTTP until ctx is cancelled or a server fails.
// Call Shutdown afterwards in both cases.
func (a *App) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	started := false
	a.runningOnce.Do(func() {
		started = true
		watchCtx, cancel := context.WithCancel(context.Background())
		a.stopWatch = cancel

		g := new(errgroup.Group)
		a.group = g
		g.Go(func() error {
			if err := a.grpcSrv.Serve(a.lis); err != nil {
				return fmt.Errorf("grpc serve: %w", err)
			}
			return nil
		})
		if a.admin != nil {
			g.Go(func() error {
				if err := a.admin.Serve(a.adminLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("admin serve: %w", err)
				}
				return nil
			})
		}
		g.Go(func() error {
			a.checks.Watch(watchCtx, a.grpcHC, healthInterval, rpc.ServiceNames()...)
			return nil
		})
		go func() { errc <- g.Wait() }()

		a.log.Info("serving", "grpc", a.lis.Addr().String(), "admin", a.AdminAddr())
	})
	if !started {
		return errors.New("app: run called twice")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errc:
		if err == nil {
			err = errors.New("app: servers stopped unexpectedly")
		}
		return err
	}
}

// Reload applies the hot-reloadable parts of a configuration change.
func (a *App) Reload(d config.ConfigDiff) {
	if d.AwaitCompletionChanged {
		a.services.Motion.SetAwaitCompletion(d.NewAwaitCompletion)
		a.log.Info("motion.await_completion updated", "value", d.NewAwaitCompletion)
	}
	if len(d.RestartRequired) > 0 {
		a.log.Warn("configuration changes need a restart", "keys", d.RestartRequired)
	}
}

// ─── Shutdown ────────────────────────────────────────────────────────────────

// Shutdown stops accepting RPCs, waits for in-flight ones, stops playback and
// capture, drains the device worker and closes the admin server. When ctx
// expires first, in-flight RPCs are cut off and the remaining steps still
// run with the expired context.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	a.stopOnce.Do(func() {
		a.log.Info("shutting down", "pending_work", a.worker.Pending())
		a.grpcHC.Shutdown()
		if a.stopWatch != nil {
			a.stopWatch()
		}

		// Stop accepting RPCs; in-flight ones finish unless ctx ends first.
		stopped := make(chan struct{})
		go func() {
			a.grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopped:
		case <-ctx.Done():
			a.log.Warn("graceful stop deadline exceeded, closing connections")
			a.grpcSrv.Stop()
			<-stopped
		}

		if n, err := a.services.Playback.StopAll(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop playback: %w", err))
		} else if n > 0 {
			a.log.Info("stopped playback", "count", n)
		}
		if err := a.services.Recording.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop recording: %w", err))
		}

		if err := a.worker.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop device worker: %w", err))
		}

		if a.admin != nil {
			if err := a.admin.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("admin shutdown: %w", err))
			}
		}
		if a.group == nil {
			// Never served; release the listeners ourselves.
			_ = a.lis.Close()
			if a.adminLis != nil {
				_ = a.adminLis.Close()
			}
		}

		a.log.Info("shutdown complete", "worker_state", a.worker.State().String())
	})
	return errors.Join(errs...)
}
